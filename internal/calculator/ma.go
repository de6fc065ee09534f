package calculator

import (
	"fmt"

	"ChartPulse/internal/model"
)

// SMA computes the simple moving average of closes over a trailing window.
// Points before the first full window are nil; a period longer than the
// series leaves every point nil.
func SMA(bars []model.Bar, period int) (model.Series, error) {
	if period < 1 {
		return nil, fmt.Errorf("%w: sma period must be positive, got %d", ErrInvalidInput, period)
	}
	out := model.NewSeries(bars)
	for i := period - 1; i < len(bars); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += bars[j].Close
		}
		out.Set(i, sum/float64(period))
	}
	return out, nil
}

// EMA computes the exponential moving average of values with span n.
// It seeds from values[0], so every index carries a value.
func EMA(values []float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: ema span must be positive, got %d", ErrInvalidInput, n)
	}
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}
	k := 2.0 / float64(n+1)
	e := values[0]
	out[0] = e
	for i := 1; i < len(values); i++ {
		e = values[i]*k + e*(1-k)
		out[i] = e
	}
	return out, nil
}
