package strategy

import (
	"testing"

	"ChartPulse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func findFactor(t *testing.T, o *model.Outlook, name string) model.FactorScore {
	t.Helper()
	for _, f := range o.Factors {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("factor %q not found", name)
	return model.FactorScore{}
}

func TestEvaluate_NormalMarket(t *testing.T) {
	o := Evaluate(&model.Summary{
		LastClose: 101, SMA: ptr(100), RSI: ptr(50),
		MACD: 0.2, Slope: 0.05, RangePos: 0.5,
	})
	require.NotNil(t, o)
	assert.Len(t, o.Factors, 5)
	assert.InDelta(t, 0.15, o.TotalScore, 1e-9)
	assert.Equal(t, "Hold", o.Label)
	assert.Empty(t, o.WarningMsg)
}

func TestEvaluate_Oversold(t *testing.T) {
	o := Evaluate(&model.Summary{
		LastClose: 90, SMA: ptr(100), RSI: ptr(20),
		MACD: -1, Slope: -0.5, RangePos: 0.05,
	})
	assert.InDelta(t, 1.025, o.TotalScore, 1e-9)
	assert.Equal(t, "Accumulate", o.Label)
	assert.Contains(t, o.WarningMsg, "oversold")
}

func TestEvaluate_Overbought(t *testing.T) {
	o := Evaluate(&model.Summary{
		LastClose: 120, SMA: ptr(100), RSI: ptr(85),
		MACD: 2, Slope: 1, RangePos: 1,
	})
	assert.Less(t, o.TotalScore, -0.8)
	assert.Equal(t, "Trim", o.Label)
	assert.Contains(t, o.WarningMsg, "overbought")
}

func TestEvaluate_MissingIndicators(t *testing.T) {
	o := Evaluate(&model.Summary{LastClose: 50, RangePos: 0.5})
	sma := findFactor(t, o, "Price vs SMA")
	rsi := findFactor(t, o, "RSI")
	assert.Zero(t, sma.RawScore)
	assert.Equal(t, "SMA unavailable", sma.Commentary)
	assert.Zero(t, rsi.RawScore)
	assert.Equal(t, "RSI unavailable", rsi.Commentary)
	assert.Empty(t, o.WarningMsg)
}

func TestMapTier_AllBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		label string
	}{
		{2.0, "Strong Buy"},
		{1.2, "Strong Buy"},
		{1.0, "Accumulate"},
		{0.5, "Accumulate"},
		{0.0, "Hold"},
		{-0.5, "Hold"},
		{-0.8, "Trim"},
		{-1.2, "Trim"},
		{-1.3, "Avoid"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.label, mapTier(tt.score), "score %.1f", tt.score)
	}
}

func TestTrendSlope_Direction(t *testing.T) {
	up := findFactor(t, Evaluate(&model.Summary{LastClose: 100, Slope: 0.6}), "Trend")
	down := findFactor(t, Evaluate(&model.Summary{LastClose: 100, Slope: -0.6}), "Trend")
	assert.Equal(t, 1.5, up.RawScore)
	assert.Equal(t, -1.5, down.RawScore)
}
