package analyzer

import (
	"fmt"
	"log"

	"StockScout/internal/calculator"
	"StockScout/internal/collector"
	"StockScout/internal/model"

	"github.com/shopspring/decimal"
)

const (
	smaPeriod = 20
	emaPeriod = 20
	rsiPeriod = 14
)

// Rating thresholds: buy below 85% of the analyst target, sell above 110%.
var (
	buyBelow  = decimal.RequireFromString("0.85")
	sellAbove = decimal.RequireFromString("1.10")
)

// Analyzer composes fundamentals, price history and indicators into a full
// per-symbol analysis.
type Analyzer struct {
	Fetcher       collector.Fetcher
	HistoryMonths int
}

// New creates an Analyzer over the given data source.
func New(fetcher collector.Fetcher, historyMonths int) *Analyzer {
	if historyMonths <= 0 {
		historyMonths = 6
	}
	return &Analyzer{Fetcher: fetcher, HistoryMonths: historyMonths}
}

// Analyze fetches data for the symbol and classifies all signals. A symbol
// with no price history at all fails with *collector.NoDataError; a missing
// fundamentals snapshot only degrades the report.
func (a *Analyzer) Analyze(symbol string) (*model.Analysis, error) {
	series, err := a.Fetcher.FetchHistory(symbol, a.HistoryMonths)
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	if len(series.Bars) == 0 {
		return nil, &collector.NoDataError{Symbol: symbol}
	}

	quote, err := a.Fetcher.FetchQuote(symbol)
	if err != nil {
		log.Printf("[WARN] fetch quote %s: %v, rendering without fundamentals", symbol, err)
		quote = &model.Quote{Symbol: symbol}
	}

	closes := series.Closes()
	ind := model.IndicatorSet{}
	if ind.SMA20, err = calculator.SMASeries(closes, smaPeriod); err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}
	if ind.EMA20, err = calculator.EMASeries(closes, emaPeriod); err != nil {
		return nil, fmt.Errorf("ema: %w", err)
	}
	if ind.RSI14, err = calculator.RSISeries(closes, rsiPeriod); err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}

	an := &model.Analysis{
		Symbol:     symbol,
		Quote:      *quote,
		Series:     *series,
		Indicators: ind,
	}

	lastClose := closes[len(closes)-1]
	an.SMASignal = trendSignal(lastClose, ind.SMA20)
	// EMA has a value from the first bar, but a span-20 signal on fewer than
	// 20 closes is noise, so it shares the SMA warmup gate.
	if len(closes) < emaPeriod {
		an.EMASignal = model.SignalUnavailable
	} else {
		an.EMASignal = trendSignal(lastClose, ind.EMA20)
	}
	an.Momentum = momentumSignal(ind.RSI14)
	an.Rating = rate(quote.Price, quote.TargetMeanPrice)

	return an, nil
}

func trendSignal(lastClose float64, series []float64) model.Signal {
	ma, ok := model.LastDefined(series)
	if !ok {
		return model.SignalUnavailable
	}
	if lastClose > ma {
		return model.SignalBullish
	}
	return model.SignalBearish
}

func momentumSignal(rsi []float64) model.Momentum {
	v, ok := model.LastDefined(rsi)
	if !ok {
		return model.MomentumUnavailable
	}
	switch {
	case v < 30:
		return model.MomentumOversold
	case v > 70:
		return model.MomentumOverbought
	default:
		return model.MomentumNeutral
	}
}

// rate compares price against the analyst mean target. Either side missing
// means no rating, never a guess.
func rate(price, target *float64) model.Rating {
	if price == nil || target == nil {
		return model.RatingUnavailable
	}
	p := decimal.NewFromFloat(*price)
	t := decimal.NewFromFloat(*target)
	switch {
	case p.LessThan(t.Mul(buyBelow)):
		return model.RatingBuy
	case p.GreaterThan(t.Mul(sellAbove)):
		return model.RatingSell
	default:
		return model.RatingHold
	}
}
