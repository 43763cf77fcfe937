package calculator

import (
	"math"
	"testing"
)

func TestRSISeries_WithinBounds(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + 5*math.Sin(float64(i)/3)
	}
	rsi, err := RSISeries(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range rsi {
		if math.IsNaN(v) {
			if i >= 14 {
				t.Errorf("position %d: unexpected NaN", i)
			}
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("position %d: RSI %v out of [0,100]", i, v)
		}
	}
}

func TestRSISeries_AllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	rsi, err := RSISeries(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	last := rsi[len(rsi)-1]
	if last != 100 {
		t.Errorf("monotonic gains should clamp RSI to 100, got %v", last)
	}
}

func TestRSISeries_AllLosses(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(200 - i)
	}
	rsi, err := RSISeries(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	last := rsi[len(rsi)-1]
	if last != 0 {
		t.Errorf("monotonic losses should drive RSI to 0, got %v", last)
	}
}

func TestRSISeries_FlatWindowUndefined(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 42
	}
	rsi, err := RSISeries(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range rsi {
		if !math.IsNaN(v) {
			t.Errorf("position %d: flat series should stay undefined, got %v", i, v)
		}
	}
}

func TestRSISeries_InsufficientHistory(t *testing.T) {
	rsi, err := RSISeries([]float64{1, 2, 3}, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range rsi {
		if !math.IsNaN(v) {
			t.Errorf("position %d: expected NaN, got %v", i, v)
		}
	}
}
