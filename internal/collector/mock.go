package collector

import (
	"time"

	"StockScout/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Quote    *model.Quote
	Bars     []model.Bar
	QuoteErr error
	BarsErr  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	if m.QuoteErr != nil {
		return nil, m.QuoteErr
	}
	if m.Quote != nil {
		return m.Quote, nil
	}
	return &model.Quote{Symbol: symbol}, nil
}

func (m *MockFetcher) FetchHistory(symbol string, _ int) (*model.PriceSeries, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if len(m.Bars) == 0 {
		return nil, &NoDataError{Symbol: symbol}
	}
	return &model.PriceSeries{Symbol: symbol, Bars: m.Bars, FetchedAt: time.Now()}, nil
}

// GenerateBars builds a synthetic daily series drifting around basePrice.
func GenerateBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
