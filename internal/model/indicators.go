package model

import "math"

// IndicatorSet holds the derived indicator series, each aligned index-for-index
// with the price series it was computed from. NaN marks positions where the
// indicator is not yet defined.
type IndicatorSet struct {
	SMA20 []float64
	EMA20 []float64
	RSI14 []float64
}

// LastDefined returns the final value of a series and whether it is defined.
func LastDefined(series []float64) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	v := series[len(series)-1]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
