package notifier

import (
	"fmt"
	"strings"

	"StockScout/internal/calculator"
	"StockScout/internal/model"

	"github.com/dustin/go-humanize"
)

// fmtNum renders an optional numeric field, substituting "N/A" when absent.
func fmtNum(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

// fmtMoney renders an optional dollar amount.
func fmtMoney(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}

// fmtMarketCap renders an optional market cap with an SI suffix ($2.95T).
func fmtMarketCap(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return "$" + strings.ReplaceAll(humanize.SIWithDigits(*v, 2, ""), " ", "")
}

// fmtDividendYield renders the yield as a two-decimal percentage.
func fmtDividendYield(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func fmtTrendSignal(s model.Signal) string {
	switch s {
	case model.SignalBullish:
		return "📈 Bullish"
	case model.SignalBearish:
		return "🔻 Bearish"
	default:
		return "⚠️ Unavailable (insufficient history)"
	}
}

func fmtMomentum(m model.Momentum, rsi float64, defined bool) string {
	var label string
	switch m {
	case model.MomentumOversold:
		label = "🟢 Oversold (Buy)"
	case model.MomentumOverbought:
		label = "🔴 Overbought (Sell)"
	case model.MomentumNeutral:
		label = "⚪ Neutral"
	default:
		return "⚠️ Unavailable (insufficient history)"
	}
	if defined {
		return fmt.Sprintf("%s (RSI %.1f)", label, rsi)
	}
	return label
}

func fmtRating(r model.Rating) string {
	switch r {
	case model.RatingBuy:
		return "🟢 BUY - undervalued"
	case model.RatingSell:
		return "🔴 SELL - overvalued"
	case model.RatingHold:
		return "🟡 HOLD"
	default:
		return "⚪ No rating available"
	}
}

// FormatReport renders the full analysis as a Telegram HTML message.
func FormatReport(an *model.Analysis) string {
	q := an.Quote
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s Stock Summary</b>\n\n", an.Symbol))

	b.WriteString(fmt.Sprintf("💵 Price: <b>%s</b>\n", fmtMoney(q.Price)))
	b.WriteString(fmt.Sprintf("🎯 Target: <b>%s</b>\n", fmtMoney(q.TargetMeanPrice)))
	b.WriteString(fmt.Sprintf("📈 Forward P/E: <b>%s</b>\n", fmtNum(q.ForwardPE)))
	b.WriteString(fmt.Sprintf("💰 EPS: <b>%s</b>\n", fmtNum(q.TrailingEPS)))
	b.WriteString(fmt.Sprintf("📊 ROE: <b>%s</b>\n", fmtNum(q.ReturnOnEquity)))
	b.WriteString(fmt.Sprintf("🏦 Debt/Equity: <b>%s</b>\n", fmtNum(q.DebtToEquity)))
	b.WriteString(fmt.Sprintf("💲 Dividend Yield: <b>%s</b>\n", fmtDividendYield(q.DividendYield)))
	b.WriteString(fmt.Sprintf("🏢 Market Cap: <b>%s</b>\n", fmtMarketCap(q.MarketCap)))
	b.WriteString(fmt.Sprintf("📎 Beta: <b>%s</b>\n\n", fmtNum(q.Beta)))

	b.WriteString(fmt.Sprintf("📉 52W Range: %s → %s\n\n", fmtMoney(q.Low52w), fmtMoney(q.High52w)))

	b.WriteString("📍 <b>Technical Signals</b>\n")
	b.WriteString(fmt.Sprintf("SMA20: %s\n", fmtTrendSignal(an.SMASignal)))
	b.WriteString(fmt.Sprintf("EMA20: %s\n", fmtTrendSignal(an.EMASignal)))
	rsi, defined := an.LatestRSI()
	b.WriteString(fmt.Sprintf("RSI(14): %s\n\n", fmtMomentum(an.Momentum, rsi, defined)))

	b.WriteString(fmt.Sprintf("🧠 Recommendation: <b>%s</b>\n", fmtRating(an.Rating)))

	return b.String()
}

// FormatChartCaption renders the caption for a chart photo.
func FormatChartCaption(series *model.PriceSeries) string {
	high, low, err := calculator.SeriesRange(series.Bars)
	if err != nil {
		return series.Symbol
	}
	return fmt.Sprintf("%s · 6M high $%.2f / low $%.2f", series.Symbol, high, low)
}

// FormatWatchlist renders a chat's watchlist.
func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "📭 Your watchlist is empty."
	}
	var b strings.Builder
	b.WriteString("📋 <b>Your Watchlist:</b>\n\n")
	for _, s := range symbols {
		b.WriteString(fmt.Sprintf("• %s\n", s))
	}
	return b.String()
}

// DigestEntry is one symbol line of the daily digest.
type DigestEntry struct {
	Symbol string
	Price  float64
	RSI    float64
	RSIOk  bool
	Err    error
}

// FormatDigest renders the daily watchlist digest for one chat.
func FormatDigest(entries []DigestEntry) string {
	var b strings.Builder
	b.WriteString("🌅 <b>Daily Watchlist Digest</b>\n\n")
	for _, e := range entries {
		if e.Err != nil {
			b.WriteString(fmt.Sprintf("• %s: data unavailable\n", e.Symbol))
			continue
		}
		if e.RSIOk {
			b.WriteString(fmt.Sprintf("• %s: $%.2f | RSI %.1f\n", e.Symbol, e.Price, e.RSI))
		} else {
			b.WriteString(fmt.Sprintf("• %s: $%.2f\n", e.Symbol, e.Price))
		}
	}
	return b.String()
}

// FormatHelp renders the welcome / help text.
func FormatHelp() string {
	return "📈 Welcome to StockScout!\n" +
		"Send a ticker like AAPL or TSLA\n\n" +
		"Commands:\n" +
		"/watchlist — View watchlist\n" +
		"/add AAPL — Add to watchlist\n" +
		"/remove TSLA — Remove from watchlist"
}
