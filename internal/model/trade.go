package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeAction is the side of a simulated trade.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
)

// Position is the single open simulated purchase.
type Position struct {
	ID       string          `json:"id"`
	Symbol   string          `json:"symbol"`
	Date     string          `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	OpenedAt time.Time       `json:"opened_at"`
}

// TradeResult is a closed round trip.
type TradeResult struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Quantity  decimal.Decimal `json:"quantity"`
	BuyDate   string          `json:"buy_date"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellDate  string          `json:"sell_date"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Profit    decimal.Decimal `json:"profit"`
	ClosedAt  time.Time       `json:"closed_at"`
}

// PaperState is the persisted simulated-trading state.
type PaperState struct {
	Open        *Position       `json:"open,omitempty"`
	RealizedPnL decimal.Decimal `json:"realized_pnl"`
	TradeCount  int             `json:"trade_count"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
