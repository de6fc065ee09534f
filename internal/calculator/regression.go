package calculator

import (
	"fmt"

	"ChartPulse/internal/model"
)

// Line is a fitted y = Intercept + Slope*x.
type Line struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// FitLine runs ordinary least squares of close against bar index.
func FitLine(bars []model.Bar) (Line, error) {
	n := len(bars)
	if n < 2 {
		return Line{}, fmt.Errorf("%w: regression needs at least 2 points, got %d", ErrInvalidInput, n)
	}
	var sx, sy, sxy, sxx float64
	for i, b := range bars {
		x := float64(i)
		sx += x
		sy += b.Close
		sxy += x * b.Close
		sxx += x * x
	}
	fn := float64(n)
	denom := fn*sxx - sx*sx
	if denom == 0 {
		return Line{}, fmt.Errorf("%w: regression denominator is zero", ErrInvalidInput)
	}
	m := (fn*sxy - sx*sy) / denom
	return Line{Slope: m, Intercept: (sy - m*sx) / fn}, nil
}

// LinearRegression evaluates the fitted trend line at every bar index.
func LinearRegression(bars []model.Bar) (model.Series, error) {
	line, err := FitLine(bars)
	if err != nil {
		return nil, err
	}
	out := model.NewSeries(bars)
	for i := range out {
		out.Set(i, line.At(float64(i)))
	}
	return out, nil
}
