package config

import (
	"os"
	"path/filepath"
	"testing"
)

// unsetenv clears a variable for the duration of the test, restoring any
// previous value afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	old, ok := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if ok {
			os.Setenv(key, old)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	unsetenv(t, "WATCHLIST_FILE")
	unsetenv(t, "HISTORY_MONTHS")
	unsetenv(t, "DIGEST_CRON")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.WatchlistFile != "data/watchlist.json" {
		t.Errorf("unexpected watchlist default: %s", cfg.Storage.WatchlistFile)
	}
	if cfg.Market.HistoryMonths != 6 {
		t.Errorf("unexpected history default: %d", cfg.Market.HistoryMonths)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config with token from env: %v", err)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
telegram:
  bot_token: "from-file"
storage:
  watchlist_file: "/var/lib/scout/watchlist.json"
market:
  history_months: 12
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	unsetenv(t, "WATCHLIST_FILE")
	unsetenv(t, "HISTORY_MONTHS")
	unsetenv(t, "DIGEST_CRON")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.BotToken != "from-env" {
		t.Errorf("env should override file, got %s", cfg.Telegram.BotToken)
	}
	if cfg.Storage.WatchlistFile != "/var/lib/scout/watchlist.json" {
		t.Errorf("file value lost: %s", cfg.Storage.WatchlistFile)
	}
	if cfg.Market.HistoryMonths != 12 {
		t.Errorf("file value lost: %d", cfg.Market.HistoryMonths)
	}
}

func TestValidate_MissingToken(t *testing.T) {
	cfg := &Config{}
	cfg.Market.HistoryMonths = 6
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without bot token")
	}
}
