package model

// Point is one indicator value aligned with the bar of the same index.
// Value is nil while the indicator does not have enough history.
type Point struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// Series is an indicator output, index-aligned 1:1 with its input bars.
type Series []Point

// NewSeries returns a series carrying the dates of bars with every value unset.
func NewSeries(bars []Bar) Series {
	s := make(Series, len(bars))
	for i, b := range bars {
		s[i].Date = b.Date
	}
	return s
}

// Set stores v at index i.
func (s Series) Set(i int, v float64) {
	s[i].Value = &v
}

// Last returns the final point of the series.
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// LastValid returns the most recent non-nil value.
func (s Series) LastValid() (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Value != nil {
			return *s[i].Value, true
		}
	}
	return 0, false
}
