package scheduler

import (
	"testing"

	"StockScout/internal/collector"
)

func TestDigestEntry_PriceAndRSI(t *testing.T) {
	s := &Scheduler{
		Fetcher:       &collector.MockFetcher{Bars: collector.GenerateBars(150, 60)},
		HistoryMonths: 6,
	}
	e := s.digestEntry("AAPL")
	if e.Err != nil {
		t.Fatal(e.Err)
	}
	if e.Price <= 0 {
		t.Errorf("expected positive price, got %v", e.Price)
	}
	if !e.RSIOk {
		t.Error("expected a defined RSI for 60 bars")
	}
	if e.RSI < 0 || e.RSI > 100 {
		t.Errorf("RSI out of bounds: %v", e.RSI)
	}
}

func TestDigestEntry_FetchFault(t *testing.T) {
	s := &Scheduler{
		Fetcher:       &collector.MockFetcher{},
		HistoryMonths: 6,
	}
	e := s.digestEntry("ZZZZ")
	if e.Err == nil {
		t.Error("expected error entry for symbol with no data")
	}
	if e.Symbol != "ZZZZ" {
		t.Errorf("expected symbol preserved, got %s", e.Symbol)
	}
}
