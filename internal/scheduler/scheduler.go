package scheduler

import (
	"context"
	"fmt"
	"log"

	"StockScout/internal/calculator"
	"StockScout/internal/collector"
	"StockScout/internal/model"
	"StockScout/internal/notifier"
	"StockScout/internal/watchlist"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the daily watchlist digest cron task.
type Scheduler struct {
	Cron          *cron.Cron
	Fetcher       collector.Fetcher
	Store         *watchlist.Store
	Notifier      *notifier.TelegramNotifier
	HistoryMonths int
	Ctx           context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, fetcher collector.Fetcher, store *watchlist.Store, tn *notifier.TelegramNotifier, historyMonths int) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Fetcher:       fetcher,
		Store:         store,
		Notifier:      tn,
		HistoryMonths: historyMonths,
		Ctx:           ctx,
	}
}

// RegisterDigest schedules the daily digest task.
func (s *Scheduler) RegisterDigest(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow executes the digest immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running watchlist digest")
	for chatID, symbols := range s.Store.All() {
		if len(symbols) == 0 {
			continue
		}
		entries := make([]notifier.DigestEntry, 0, len(symbols))
		for _, symbol := range symbols {
			entries = append(entries, s.digestEntry(symbol))
		}
		if err := s.Notifier.SendWithRetry(s.Ctx, chatID, notifier.FormatDigest(entries), 3); err != nil {
			log.Printf("[ERROR] send digest to chat %s: %v", chatID, err)
		}
	}
}

func (s *Scheduler) digestEntry(symbol string) notifier.DigestEntry {
	series, err := s.Fetcher.FetchHistory(symbol, s.HistoryMonths)
	if err != nil {
		log.Printf("[WARN] digest fetch %s: %v", symbol, err)
		return notifier.DigestEntry{Symbol: symbol, Err: err}
	}
	closes := series.Closes()
	entry := notifier.DigestEntry{
		Symbol: symbol,
		Price:  closes[len(closes)-1],
	}
	if rsi, err := calculator.RSISeries(closes, 14); err == nil {
		entry.RSI, entry.RSIOk = model.LastDefined(rsi)
	}
	return entry
}
