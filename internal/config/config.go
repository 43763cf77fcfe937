package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
	} `yaml:"telegram"`
	Storage struct {
		WatchlistFile string `yaml:"watchlist_file" envconfig:"WATCHLIST_FILE"`
		SQLitePath    string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"storage"`
	Market struct {
		HistoryMonths int `yaml:"history_months" envconfig:"HISTORY_MONTHS"`
	} `yaml:"market"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron" envconfig:"DIGEST_CRON"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Load reads config from an optional .env file and a YAML file, then applies
// environment variable overrides and defaults. Credentials are never
// hard-coded; the bot token must come from the file or the environment.
func Load(path string) (*Config, error) {
	// Best effort: production deployments typically have no .env file.
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	// Defaults
	if cfg.Storage.WatchlistFile == "" {
		cfg.Storage.WatchlistFile = "data/watchlist.json"
	}
	if cfg.Market.HistoryMonths == 0 {
		cfg.Market.HistoryMonths = 6
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 14 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Market.HistoryMonths < 1 {
		return fmt.Errorf("market.history_months must be positive")
	}
	return nil
}
