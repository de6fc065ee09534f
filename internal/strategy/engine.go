package strategy

import "ChartPulse/internal/model"

// Tiers maps a total score to an outlook label, highest first.
var Tiers = []struct {
	MinScore float64
	Label    string
}{
	{1.2, "Strong Buy"},
	{0.5, "Accumulate"},
	{-0.5, "Hold"},
	{-1.2, "Trim"},
}

// DefaultLabel applies to scores below the last tier.
const DefaultLabel = "Avoid"

func mapTier(totalScore float64) string {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Label
		}
	}
	return DefaultLabel
}

// Evaluate scores the dashboard summary.
func Evaluate(s *model.Summary) *model.Outlook {
	factors := []model.FactorScore{
		scoreSMADeviation(s),
		scoreRSI(s),
		scoreMACD(s),
		scoreTrendSlope(s),
		scoreRangePosition(s),
	}

	total := 0.0
	for _, f := range factors {
		total += f.Weighted
	}

	out := &model.Outlook{
		Factors:    factors,
		TotalScore: total,
		Label:      mapTier(total),
	}
	if s.RSI != nil {
		switch {
		case *s.RSI >= 70:
			out.WarningMsg = "RSI >= 70: overbought"
		case *s.RSI <= 30:
			out.WarningMsg = "RSI <= 30: oversold"
		}
	}
	return out
}
