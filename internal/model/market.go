package model

// DateLayout is the calendar-date format used for Bar.Date.
const DateLayout = "2006-01-02"

// Bar represents a single daily OHLCV candle.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Closes extracts the close prices in bar order.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// FindBar returns the bar for the given date. An empty date selects the latest bar.
func FindBar(bars []Bar, date string) (Bar, bool) {
	if len(bars) == 0 {
		return Bar{}, false
	}
	if date == "" {
		return bars[len(bars)-1], true
	}
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Date == date {
			return bars[i], true
		}
	}
	return Bar{}, false
}
