package dispatcher

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"StockScout/internal/analyzer"
	"StockScout/internal/collector"
	"StockScout/internal/model"
	"StockScout/internal/notifier"
	"StockScout/internal/watchlist"
)

type sentMessage struct {
	ChatID  string
	Text    string
	Buttons [][]notifier.Button
}

type fakeTransport struct {
	Messages []sentMessage
	Edits    []sentMessage
	Photos   []string // chat ids that received a photo
	Answers  []string // callback answer texts
}

func (f *fakeTransport) SendMessage(chatID, text string, buttons [][]notifier.Button) (int, error) {
	f.Messages = append(f.Messages, sentMessage{chatID, text, buttons})
	return len(f.Messages), nil
}

func (f *fakeTransport) EditMessage(chatID string, _ int, text string, buttons [][]notifier.Button) error {
	f.Edits = append(f.Edits, sentMessage{chatID, text, buttons})
	return nil
}

func (f *fakeTransport) AnswerCallback(_ string, text string) error {
	f.Answers = append(f.Answers, text)
	return nil
}

func (f *fakeTransport) SendPhoto(chatID, _ string, png []byte) error {
	if len(png) == 0 {
		panic("empty photo")
	}
	f.Photos = append(f.Photos, chatID)
	return nil
}

func newTestDispatcher(t *testing.T, fetcher collector.Fetcher) (*Dispatcher, *fakeTransport, *watchlist.Store) {
	t.Helper()
	transport := &fakeTransport{}
	store := watchlist.NewStore(filepath.Join(t.TempDir(), "watchlist.json"))
	d := New(analyzer.New(fetcher, 6), store, transport, nil)
	return d, transport, store
}

func quoteFetcher() *collector.MockFetcher {
	price := 100.0
	target := 130.0
	return &collector.MockFetcher{
		Quote: &model.Quote{Symbol: "AAPL", Price: &price, TargetMeanPrice: &target},
		Bars:  collector.GenerateBars(100, 120),
	}
}

func message(chatID, text string) notifier.Update {
	return notifier.Update{Message: &notifier.Message{ChatID: chatID, Text: text}}
}

func callback(chatID, data string) notifier.Update {
	return notifier.Update{Callback: &notifier.Callback{ID: "cb1", ChatID: chatID, MessageID: 7, Data: data}}
}

func TestTickerText_RepliesWithReportAndButtons(t *testing.T) {
	d, transport, _ := newTestDispatcher(t, quoteFetcher())

	d.HandleUpdate(message("123", "aapl"))

	if len(transport.Messages) != 1 {
		t.Fatalf("expected one reply, got %d", len(transport.Messages))
	}
	reply := transport.Messages[0]
	if !strings.Contains(reply.Text, "AAPL Stock Summary") {
		t.Errorf("expected report text:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "🟢 BUY") {
		t.Errorf("price 100 target 130 should rate BUY:\n%s", reply.Text)
	}
	if len(reply.Buttons) != 2 {
		t.Fatalf("expected two button rows, got %d", len(reply.Buttons))
	}
	if reply.Buttons[0][0].Data != "chart:AAPL" {
		t.Errorf("unexpected chart payload %q", reply.Buttons[0][0].Data)
	}
}

func TestNonAlphabeticText_Ignored(t *testing.T) {
	d, transport, _ := newTestDispatcher(t, quoteFetcher())

	d.HandleUpdate(message("123", "hello world 42!"))
	d.HandleUpdate(message("123", "AAPL2"))

	if len(transport.Messages) != 0 {
		t.Errorf("non-alphabetic text must be ignored, got %d replies", len(transport.Messages))
	}
}

func TestUnknownSymbol_NotFoundReply(t *testing.T) {
	d, transport, _ := newTestDispatcher(t, &collector.MockFetcher{})

	d.HandleUpdate(message("123", "ZZZZ"))

	if len(transport.Messages) != 1 {
		t.Fatalf("expected one reply, got %d", len(transport.Messages))
	}
	if got := transport.Messages[0].Text; !strings.Contains(got, "No data found for ZZZZ") {
		t.Errorf("expected not-found message, got %q", got)
	}
}

func TestAddRemoveCommands(t *testing.T) {
	d, transport, store := newTestDispatcher(t, quoteFetcher())

	d.HandleUpdate(message("123", "/add"))
	if got := transport.Messages[0].Text; !strings.Contains(got, "Usage: /add") {
		t.Errorf("missing argument should produce a usage hint, got %q", got)
	}

	d.HandleUpdate(message("123", "/add aapl"))
	if got := store.List("123"); !reflect.DeepEqual(got, []string{"AAPL"}) {
		t.Errorf("expected [AAPL] after /add, got %v", got)
	}

	d.HandleUpdate(message("123", "/remove TSLA"))
	if got := transport.Messages[len(transport.Messages)-1].Text; !strings.Contains(got, "not found") {
		t.Errorf("expected not-found feedback, got %q", got)
	}

	d.HandleUpdate(message("123", "/remove AAPL"))
	if got := store.List("123"); len(got) != 0 {
		t.Errorf("expected empty list after /remove, got %v", got)
	}
}

func TestWatchlistCommand(t *testing.T) {
	d, transport, store := newTestDispatcher(t, quoteFetcher())

	d.HandleUpdate(message("123", "/watchlist"))
	if got := transport.Messages[0].Text; !strings.Contains(got, "empty") {
		t.Errorf("expected empty-watchlist notice, got %q", got)
	}

	if _, err := store.Add("123", "MSFT"); err != nil {
		t.Fatal(err)
	}
	d.HandleUpdate(message("123", "/watchlist"))
	if got := transport.Messages[1].Text; !strings.Contains(got, "• MSFT") {
		t.Errorf("expected MSFT in watchlist, got %q", got)
	}
}

func TestHelpCommand(t *testing.T) {
	d, transport, _ := newTestDispatcher(t, quoteFetcher())
	d.HandleUpdate(message("123", "/start"))
	if got := transport.Messages[0].Text; !strings.Contains(got, "Welcome") {
		t.Errorf("expected welcome text, got %q", got)
	}
}

func TestCallback_AddToWatchlist(t *testing.T) {
	d, transport, store := newTestDispatcher(t, quoteFetcher())

	d.HandleUpdate(callback("123", "add:AAPL"))
	if got := store.List("123"); !reflect.DeepEqual(got, []string{"AAPL"}) {
		t.Errorf("expected [AAPL], got %v", got)
	}
	if len(transport.Answers) != 1 || !strings.Contains(transport.Answers[0], "Added") {
		t.Errorf("expected added acknowledgement, got %v", transport.Answers)
	}

	d.HandleUpdate(callback("123", "add:AAPL"))
	if got := transport.Answers[1]; !strings.Contains(got, "Already") {
		t.Errorf("re-add should acknowledge as already present, got %q", got)
	}
}

func TestCallback_Chart(t *testing.T) {
	d, transport, _ := newTestDispatcher(t, quoteFetcher())

	d.HandleUpdate(callback("123", "chart:AAPL"))
	if len(transport.Photos) != 1 || transport.Photos[0] != "123" {
		t.Errorf("expected one photo to chat 123, got %v", transport.Photos)
	}
}

func TestCallback_Analyze_EditsMessage(t *testing.T) {
	d, transport, _ := newTestDispatcher(t, quoteFetcher())

	d.HandleUpdate(callback("123", "analyze:AAPL"))
	if len(transport.Edits) != 1 {
		t.Fatalf("expected one edit, got %d", len(transport.Edits))
	}
	if !strings.Contains(transport.Edits[0].Text, "AAPL Stock Summary") {
		t.Errorf("expected report in edited message:\n%s", transport.Edits[0].Text)
	}
}

func TestCallback_MalformedPayload(t *testing.T) {
	d, transport, _ := newTestDispatcher(t, quoteFetcher())

	d.HandleUpdate(callback("123", "selfdestruct:AAPL"))
	if len(transport.Messages) != 0 || len(transport.Photos) != 0 {
		t.Error("unknown action must not trigger any handler")
	}
	if len(transport.Answers) != 1 {
		t.Errorf("malformed payload should still be acknowledged, got %v", transport.Answers)
	}
}
