package recorder

import (
	"time"

	"ChartPulse/internal/model"

	"github.com/shopspring/decimal"
)

// TradeEvent records one side of a simulated trade.
type TradeEvent struct {
	ID       string            `json:"id"`
	Action   model.TradeAction `json:"action"`
	Symbol   string            `json:"symbol"`
	Date     string            `json:"date"` // bar date the trade was priced at
	Price    decimal.Decimal   `json:"price"`
	Quantity decimal.Decimal   `json:"quantity"`
	Profit   decimal.Decimal   `json:"profit"` // zero for BUY
	At       time.Time         `json:"at"`
}

// FetchEvent audits one price-history request.
type FetchEvent struct {
	Symbol   string
	Provider string
	Bars     int
	Latency  time.Duration
	Err      string
	At       time.Time
}

// Recorder persists trade and fetch history. Indicator values are never stored.
type Recorder interface {
	RecordTrade(evt *TradeEvent) error
	RecordFetch(evt *FetchEvent) error
	ListTrades(limit int) ([]TradeEvent, error)
	Close() error
}
