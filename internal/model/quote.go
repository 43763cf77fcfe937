package model

// Quote is a point-in-time fundamentals snapshot. Every numeric field is
// optional: the provider omits whatever it does not know, and a nil field
// renders as "N/A" downstream.
type Quote struct {
	Symbol          string
	Price           *float64
	TargetMeanPrice *float64
	ForwardPE       *float64
	TrailingEPS     *float64
	ReturnOnEquity  *float64
	DebtToEquity    *float64
	DividendYield   *float64
	MarketCap       *float64
	Beta            *float64
	Low52w          *float64
	High52w         *float64
}
