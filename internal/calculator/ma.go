package calculator

import (
	"errors"
	"math"
)

// SMASeries computes the simple moving average over a trailing window of
// `period` closes. The first period-1 positions are NaN.
func SMASeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(closes))
	var sum float64
	for i := range closes {
		sum += closes[i]
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// EMASeries computes the exponential moving average with span-equivalent
// weighting (alpha = 2/(period+1)), seeded from the start of the series so
// every position has a value. Early positions use the weighted average of the
// data seen so far rather than a fixed seed.
func EMASeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	alpha := 2.0 / (float64(period) + 1.0)
	decay := 1.0 - alpha

	out := make([]float64, len(closes))
	var num, den float64
	for i, c := range closes {
		num = c + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}
	return out, nil
}
