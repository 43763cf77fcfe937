package model

// Signal classifies price position relative to a moving average.
type Signal string

const (
	SignalBullish     Signal = "BULLISH"
	SignalBearish     Signal = "BEARISH"
	SignalUnavailable Signal = "UNAVAILABLE"
)

// Momentum classifies the latest RSI reading.
type Momentum string

const (
	MomentumOversold    Momentum = "OVERSOLD"
	MomentumOverbought  Momentum = "OVERBOUGHT"
	MomentumNeutral     Momentum = "NEUTRAL"
	MomentumUnavailable Momentum = "UNAVAILABLE"
)

// Rating is the price-vs-target recommendation.
type Rating string

const (
	RatingBuy         Rating = "BUY"
	RatingSell        Rating = "SELL"
	RatingHold        Rating = "HOLD"
	RatingUnavailable Rating = "UNAVAILABLE"
)

// Analysis is the full output for one symbol: fundamentals, price history,
// derived indicators, and the classified signals.
type Analysis struct {
	Symbol     string
	Quote      Quote
	Series     PriceSeries
	Indicators IndicatorSet
	SMASignal  Signal
	EMASignal  Signal
	Momentum   Momentum
	Rating     Rating
}

// LatestRSI returns the final RSI value and whether it is defined.
func (a *Analysis) LatestRSI() (float64, bool) {
	return LastDefined(a.Indicators.RSI14)
}
