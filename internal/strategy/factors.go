package strategy

import (
	"fmt"

	"ChartPulse/internal/model"
)

func factor(name string, score, weight float64, commentary string) model.FactorScore {
	return model.FactorScore{
		Name:       name,
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: commentary,
	}
}

// scoreSMADeviation scores how far the last close sits from the SMA.
// Weight: 0.30
func scoreSMADeviation(s *model.Summary) model.FactorScore {
	const name, weight = "Price vs SMA", 0.30
	if s.SMA == nil || *s.SMA == 0 {
		return factor(name, 0, weight, "SMA unavailable")
	}
	deviation := (s.LastClose - *s.SMA) / *s.SMA * 100

	var score float64
	switch {
	case deviation <= -10:
		score = 2.0
	case deviation <= -5:
		score = 1.5
	case deviation <= -2:
		score = 1.0
	case deviation <= 0:
		score = 0.5
	case deviation <= 2:
		score = 0
	case deviation <= 5:
		score = -0.5
	case deviation <= 10:
		score = -1.0
	default:
		score = -2.0
	}
	return factor(name, score, weight, fmt.Sprintf("deviation %+.1f%%", deviation))
}

// scoreRSI rewards oversold readings and penalises overbought ones.
// Weight: 0.30
func scoreRSI(s *model.Summary) model.FactorScore {
	const name, weight = "RSI", 0.30
	if s.RSI == nil {
		return factor(name, 0, weight, "RSI unavailable")
	}
	rsi := *s.RSI

	var score float64
	switch {
	case rsi <= 20:
		score = 2.0
	case rsi <= 30:
		score = 1.5
	case rsi <= 40:
		score = 1.0
	case rsi <= 60:
		score = 0
	case rsi <= 70:
		score = -1.0
	case rsi <= 80:
		score = -1.5
	default:
		score = -2.0
	}
	return factor(name, score, weight, fmt.Sprintf("RSI %.0f", rsi))
}

// scoreMACD follows the sign of MACD.
// Weight: 0.15
func scoreMACD(s *model.Summary) model.FactorScore {
	const name, weight = "MACD", 0.15
	switch {
	case s.MACD > 0:
		return factor(name, 1, weight, fmt.Sprintf("%+.2f above zero", s.MACD))
	case s.MACD < 0:
		return factor(name, -1, weight, fmt.Sprintf("%+.2f below zero", s.MACD))
	default:
		return factor(name, 0, weight, "flat")
	}
}

// scoreTrendSlope scores the regression slope as percent of price per bar.
// Weight: 0.15
func scoreTrendSlope(s *model.Summary) model.FactorScore {
	const name, weight = "Trend", 0.15
	if s.LastClose == 0 {
		return factor(name, 0, weight, "no price")
	}
	pct := s.Slope / s.LastClose * 100

	var score float64
	switch {
	case pct >= 0.5:
		score = 1.5
	case pct >= 0.1:
		score = 1.0
	case pct > -0.1:
		score = 0
	case pct > -0.5:
		score = -1.0
	default:
		score = -1.5
	}
	return factor(name, score, weight, fmt.Sprintf("%+.2f%%/day", pct))
}

// scoreRangePosition favours prices near the bottom of the window's range.
// Weight: 0.10
func scoreRangePosition(s *model.Summary) model.FactorScore {
	const name, weight = "Range position", 0.10
	pos := s.RangePos

	var score float64
	switch {
	case pos <= 0.1:
		score = 2.0
	case pos <= 0.3:
		score = 1.0
	case pos <= 0.7:
		score = 0
	case pos <= 0.9:
		score = -1.0
	default:
		score = -2.0
	}
	return factor(name, score, weight, fmt.Sprintf("%.0f%% of range", pos*100))
}
