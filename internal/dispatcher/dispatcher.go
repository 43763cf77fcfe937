package dispatcher

import (
	"errors"
	"log"
	"strings"

	"StockScout/internal/analyzer"
	"StockScout/internal/chart"
	"StockScout/internal/collector"
	"StockScout/internal/model"
	"StockScout/internal/notifier"
	"StockScout/internal/recorder"
	"StockScout/internal/watchlist"
)

// Transport is the outbound side of the chat boundary. Satisfied by
// *notifier.TelegramNotifier; faked in tests.
type Transport interface {
	SendMessage(chatID, text string, buttons [][]notifier.Button) (int, error)
	EditMessage(chatID string, messageID int, text string, buttons [][]notifier.Button) error
	AnswerCallback(callbackID, text string) error
	SendPhoto(chatID, caption string, png []byte) error
}

// Dispatcher routes inbound chat events to the analyzer and watchlist store.
// Each event is handled independently; there is no cross-event session state.
type Dispatcher struct {
	Analyzer  *analyzer.Analyzer
	Store     *watchlist.Store
	Transport Transport
	Recorder  recorder.Recorder
}

// New creates a Dispatcher.
func New(an *analyzer.Analyzer, store *watchlist.Store, transport Transport, rec recorder.Recorder) *Dispatcher {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Dispatcher{Analyzer: an, Store: store, Transport: transport, Recorder: rec}
}

// HandleUpdate processes one inbound event.
func (d *Dispatcher) HandleUpdate(u notifier.Update) {
	switch {
	case u.Callback != nil:
		d.handleCallback(u.Callback)
	case u.Message != nil:
		d.handleMessage(u.Message)
	}
}

func (d *Dispatcher) handleMessage(msg *notifier.Message) {
	if strings.HasPrefix(msg.Text, "/") {
		d.handleCommand(msg)
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(msg.Text))
	if !isTicker(symbol) {
		return // not a command, not a ticker
	}
	d.analyzeAndReply(msg.ChatID, symbol)
}

func (d *Dispatcher) handleCommand(msg *notifier.Message) {
	fields := strings.Fields(msg.Text)
	cmd := strings.ToLower(fields[0])
	// Strip the @botname suffix used in group chats.
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case "/start", "/help":
		d.send(msg.ChatID, notifier.FormatHelp())

	case "/watchlist":
		d.send(msg.ChatID, notifier.FormatWatchlist(d.Store.List(msg.ChatID)))

	case "/add":
		if len(fields) < 2 {
			d.send(msg.ChatID, "Usage: /add SYMBOL")
			return
		}
		d.addToWatchlist(msg.ChatID, fields[1])

	case "/remove":
		if len(fields) < 2 {
			d.send(msg.ChatID, "Usage: /remove SYMBOL")
			return
		}
		symbol := strings.ToUpper(fields[1])
		found, err := d.Store.Remove(msg.ChatID, symbol)
		if err != nil {
			log.Printf("[ERROR] persist watchlist: %v", err)
		}
		if found {
			d.send(msg.ChatID, "❌ "+symbol+" removed from watchlist")
		} else {
			d.send(msg.ChatID, symbol+" not found in watchlist")
		}

	default:
		d.send(msg.ChatID, "Unknown command. Try /help")
	}
}

func (d *Dispatcher) handleCallback(cb *notifier.Callback) {
	action, err := model.ParseAction(cb.Data)
	if err != nil {
		log.Printf("[WARN] callback from chat %s: %v", cb.ChatID, err)
		d.answer(cb.ID, "")
		return
	}

	switch action.Kind {
	case model.ActionChart:
		d.answer(cb.ID, "")
		d.sendChart(cb.ChatID, action.Symbol)

	case model.ActionAnalyze:
		d.answer(cb.ID, "")
		an, err := d.Analyzer.Analyze(action.Symbol)
		if err != nil {
			d.send(cb.ChatID, userFacing(err, action.Symbol))
			return
		}
		d.record(cb.ChatID, an, "BUTTON")
		if err := d.Transport.EditMessage(cb.ChatID, cb.MessageID, notifier.FormatReport(an), actionButtons(action.Symbol)); err != nil {
			log.Printf("[ERROR] edit message: %v", err)
		}

	case model.ActionAddWatch:
		added, err := d.Store.Add(cb.ChatID, action.Symbol)
		if err != nil {
			log.Printf("[ERROR] persist watchlist: %v", err)
		}
		if added {
			d.answer(cb.ID, "✅ Added to watchlist")
		} else {
			d.answer(cb.ID, "Already in your watchlist")
		}
	}
}

func (d *Dispatcher) analyzeAndReply(chatID, symbol string) {
	an, err := d.Analyzer.Analyze(symbol)
	if err != nil {
		d.send(chatID, userFacing(err, symbol))
		return
	}
	d.record(chatID, an, "TEXT")
	if _, err := d.Transport.SendMessage(chatID, notifier.FormatReport(an), actionButtons(symbol)); err != nil {
		log.Printf("[ERROR] send report: %v", err)
	}
}

func (d *Dispatcher) sendChart(chatID, symbol string) {
	series, err := d.Analyzer.Fetcher.FetchHistory(symbol, d.Analyzer.HistoryMonths)
	if err != nil {
		d.send(chatID, userFacing(err, symbol))
		return
	}
	png, err := chart.RenderLine(series)
	if err != nil {
		log.Printf("[ERROR] render chart for %s: %v", symbol, err)
		d.send(chatID, "⚠️ Could not render a chart for "+symbol)
		return
	}
	if err := d.Transport.SendPhoto(chatID, notifier.FormatChartCaption(series), png); err != nil {
		log.Printf("[ERROR] send chart: %v", err)
	}
}

func (d *Dispatcher) addToWatchlist(chatID, symbol string) {
	symbol = strings.ToUpper(symbol)
	if _, err := d.Store.Add(chatID, symbol); err != nil {
		log.Printf("[ERROR] persist watchlist: %v", err)
	}
	d.send(chatID, "✅ "+symbol+" added to your watchlist")
}

func (d *Dispatcher) record(chatID string, an *model.Analysis, trigger string) {
	closes := an.Series.Closes()
	rsi, ok := an.LatestRSI()
	err := d.Recorder.RecordAnalysis(&recorder.AnalysisRecord{
		ChatID:  chatID,
		Symbol:  an.Symbol,
		Price:   closes[len(closes)-1],
		RSI:     rsi,
		RSIOk:   ok,
		Rating:  string(an.Rating),
		Trigger: trigger,
	})
	if err != nil {
		log.Printf("[ERROR] record analysis: %v", err)
	}
}

func (d *Dispatcher) send(chatID, text string) {
	if _, err := d.Transport.SendMessage(chatID, text, nil); err != nil {
		log.Printf("[ERROR] send message: %v", err)
	}
}

func (d *Dispatcher) answer(callbackID, text string) {
	if err := d.Transport.AnswerCallback(callbackID, text); err != nil {
		log.Printf("[ERROR] answer callback: %v", err)
	}
}

// userFacing converts an analysis failure into a chat message.
func userFacing(err error, symbol string) string {
	var noData *collector.NoDataError
	if errors.As(err, &noData) {
		return "❌ No data found for " + noData.Symbol
	}
	log.Printf("[ERROR] analyze %s: %v", symbol, err)
	return "⚠️ Data source unavailable right now, try again later"
}

func actionButtons(symbol string) [][]notifier.Button {
	return [][]notifier.Button{
		{
			{Text: "📈 Chart", Data: model.Action{Kind: model.ActionChart, Symbol: symbol}.Payload()},
			{Text: "🧠 Analyze Again", Data: model.Action{Kind: model.ActionAnalyze, Symbol: symbol}.Payload()},
		},
		{
			{Text: "➕ Add to Watchlist", Data: model.Action{Kind: model.ActionAddWatch, Symbol: symbol}.Payload()},
		},
	}
}

// isTicker reports whether text looks like a ticker: purely alphabetic.
func isTicker(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
