package calculator

import (
	"fmt"

	"ChartPulse/internal/model"
)

// wilder is the running average gain/loss threaded through the RSI fold.
type wilder struct {
	avgGain float64
	avgLoss float64
}

// seedWilder averages the first period close-to-close changes.
func seedWilder(closes []float64, period int) wilder {
	var gain, loss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}
	return wilder{avgGain: gain / float64(period), avgLoss: loss / float64(period)}
}

func (w wilder) next(change float64, period int) wilder {
	gain, loss := 0.0, 0.0
	if change > 0 {
		gain = change
	} else {
		loss = -change
	}
	p := float64(period)
	return wilder{
		avgGain: (w.avgGain*(p-1) + gain) / p,
		avgLoss: (w.avgLoss*(p-1) + loss) / p,
	}
}

// value converts the averages into an RSI reading. A zero average loss
// is replaced by a divisor of 1 instead of producing an infinite ratio.
func (w wilder) value() float64 {
	divisor := w.avgLoss
	if divisor == 0 {
		divisor = 1
	}
	rs := w.avgGain / divisor
	return 100.0 - 100.0/(1.0+rs)
}

// RSI computes the Wilder-smoothed relative strength index.
// Requires period+1 bars for the first value; indices 0..period-1 are nil.
// The smoothing step also runs at index period, right after seeding.
func RSI(bars []model.Bar, period int) (model.Series, error) {
	if period < 1 {
		return nil, fmt.Errorf("%w: rsi period must be positive, got %d", ErrInvalidInput, period)
	}
	out := model.NewSeries(bars)
	if len(bars) < period+1 {
		return out, nil
	}

	closes := model.Closes(bars)
	state := seedWilder(closes, period)
	for i := period; i < len(closes); i++ {
		state = state.next(closes[i]-closes[i-1], period)
		out.Set(i, state.value())
	}
	return out, nil
}
