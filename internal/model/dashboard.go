package model

import "time"

// Summary holds the headline numbers shown on the dashboard cards.
type Summary struct {
	Symbol     string   `json:"symbol"`
	AsOf       string   `json:"as_of"`
	LastClose  float64  `json:"last_close"`
	Change     float64  `json:"change"`
	ChangePct  float64  `json:"change_pct"`
	PeriodHigh float64  `json:"period_high"`
	PeriodLow  float64  `json:"period_low"`
	RangePos   float64  `json:"range_position"` // 0 at PeriodLow, 1 at PeriodHigh
	SMA        *float64 `json:"sma"`
	RSI        *float64 `json:"rsi"`
	MACD       float64  `json:"macd"`
	Projection float64  `json:"projection"`
	Slope      float64  `json:"slope"`
}

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// Outlook is the scored reading of a Summary.
type Outlook struct {
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"total_score"`
	Label      string        `json:"label"`
	WarningMsg string        `json:"warning,omitempty"`
}

// Dashboard is everything derived for one symbol query.
type Dashboard struct {
	Symbol     string    `json:"symbol"`
	Provider   string    `json:"provider"`
	FetchedAt  time.Time `json:"fetched_at"`
	Bars       []Bar     `json:"bars"`
	SMA        Series    `json:"sma"`
	RSI        Series    `json:"rsi"`
	MACD       Series    `json:"macd"`
	Projection Series    `json:"projection"`
	Summary    Summary   `json:"summary"`
	Outlook    *Outlook  `json:"outlook"`
}
