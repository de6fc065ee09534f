package calculator

import (
	"fmt"

	"ChartPulse/internal/model"
)

// MACD computes the difference between the fast and slow EMA of closes.
// Unlike SMA and RSI it has no warm-up gap: both EMAs start at the first close.
func MACD(bars []model.Bar, fast, slow int) (model.Series, error) {
	closes := model.Closes(bars)
	fastEMA, err := EMA(closes, fast)
	if err != nil {
		return nil, fmt.Errorf("macd fast: %w", err)
	}
	slowEMA, err := EMA(closes, slow)
	if err != nil {
		return nil, fmt.Errorf("macd slow: %w", err)
	}
	out := model.NewSeries(bars)
	for i := range out {
		out.Set(i, fastEMA[i]-slowEMA[i])
	}
	return out, nil
}
