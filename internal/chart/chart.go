package chart

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"StockScout/internal/model"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// RenderLine draws a closing-price line chart for the series and returns the
// PNG bytes. Rendering stays in memory; nothing touches the filesystem.
func RenderLine(series *model.PriceSeries) ([]byte, error) {
	if len(series.Bars) < 2 {
		return nil, errors.New("not enough bars to render a chart")
	}

	times := make([]time.Time, len(series.Bars))
	closes := make([]float64, len(series.Bars))
	for i, b := range series.Bars {
		times[i] = b.Time
		closes[i] = b.Close
	}

	graph := gochart.Chart{
		Title:  fmt.Sprintf("%s - 6M Chart", series.Symbol),
		Width:  900,
		Height: 450,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    series.Symbol,
				XValues: times,
				YValues: closes,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
