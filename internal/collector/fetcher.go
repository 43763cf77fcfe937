package collector

import "StockScout/internal/model"

// Fetcher defines the interface for the market data provider.
type Fetcher interface {
	// FetchQuote returns the fundamentals snapshot for a symbol. Individual
	// fields may be absent; that is not an error.
	FetchQuote(symbol string) (*model.Quote, error)
	// FetchHistory returns the trailing daily price history. A symbol the
	// provider does not know yields a *NoDataError.
	FetchHistory(symbol string, months int) (*model.PriceSeries, error)
	Name() string
}
