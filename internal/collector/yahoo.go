package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockScout/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooValue is Yahoo's {"raw": n, "fmt": "..."} wrapper around a number.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

// yahooSummary is the response structure from the quoteSummary API.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData *struct {
				CurrentPrice    yahooValue `json:"currentPrice"`
				TargetMeanPrice yahooValue `json:"targetMeanPrice"`
				ReturnOnEquity  yahooValue `json:"returnOnEquity"`
				DebtToEquity    yahooValue `json:"debtToEquity"`
			} `json:"financialData"`
			SummaryDetail *struct {
				ForwardPE     yahooValue `json:"forwardPE"`
				DividendYield yahooValue `json:"dividendYield"`
				MarketCap     yahooValue `json:"marketCap"`
				Beta          yahooValue `json:"beta"`
				Low52w        yahooValue `json:"fiftyTwoWeekLow"`
				High52w       yahooValue `json:"fiftyTwoWeekHigh"`
			} `json:"summaryDetail"`
			KeyStatistics *struct {
				TrailingEPS yahooValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) get(u string, out interface{}) error {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

// FetchHistory retrieves the trailing daily bars for the requested window.
func (f *YahooFetcher) FetchHistory(symbol string, months int) (*model.PriceSeries, error) {
	rng := "6mo"
	switch {
	case months <= 1:
		rng = "1mo"
	case months <= 3:
		rng = "3mo"
	case months <= 6:
		rng = "6mo"
	case months <= 12:
		rng = "1y"
	default:
		rng = "2y"
	}
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(symbol), rng)

	var chart yahooChart
	if err := f.get(u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return nil, &NoDataError{Symbol: symbol}
		}
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, &NoDataError{Symbol: symbol}
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, &NoDataError{Symbol: symbol}
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	if len(bars) == 0 {
		return nil, &NoDataError{Symbol: symbol}
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

// FetchQuote retrieves the fundamentals snapshot. Absent modules or fields
// leave the corresponding Quote fields nil.
func (f *YahooFetcher) FetchQuote(symbol string) (*model.Quote, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=financialData,summaryDetail,defaultKeyStatistics",
		url.PathEscape(symbol))

	var summary yahooSummary
	if err := f.get(u, &summary); err != nil {
		return nil, err
	}
	q := &model.Quote{Symbol: symbol}
	if summary.QuoteSummary.Error != nil || len(summary.QuoteSummary.Result) == 0 {
		return q, nil
	}

	r := summary.QuoteSummary.Result[0]
	if fd := r.FinancialData; fd != nil {
		q.Price = fd.CurrentPrice.Raw
		q.TargetMeanPrice = fd.TargetMeanPrice.Raw
		q.ReturnOnEquity = fd.ReturnOnEquity.Raw
		q.DebtToEquity = fd.DebtToEquity.Raw
	}
	if sd := r.SummaryDetail; sd != nil {
		q.ForwardPE = sd.ForwardPE.Raw
		q.DividendYield = sd.DividendYield.Raw
		q.MarketCap = sd.MarketCap.Raw
		q.Beta = sd.Beta.Raw
		q.Low52w = sd.Low52w.Raw
		q.High52w = sd.High52w.Raw
	}
	if ks := r.KeyStatistics; ks != nil {
		q.TrailingEPS = ks.TrailingEPS.Raw
	}
	return q, nil
}
