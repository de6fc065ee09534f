package httpapi

import (
	"ChartPulse/internal/model"
	"ChartPulse/internal/recorder"

	"github.com/shopspring/decimal"
)

type SymbolRequest struct {
	Symbol string `query:"symbol" validate:"omitempty,max=20"`
}

type TradesRequest struct {
	Limit int `query:"limit" default:"20" validate:"gte=1,lte=500"`
}

type BuyRequest struct {
	Symbol string  `json:"symbol" validate:"omitempty,max=20"`
	Date   string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Qty    float64 `json:"qty" validate:"required"`
}

type SellRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type SummaryResponse struct {
	Summary model.Summary  `json:"summary"`
	Outlook *model.Outlook `json:"outlook"`
}

type PositionResponse struct {
	Position    *model.Position `json:"position"`
	RealizedPnL decimal.Decimal `json:"realized_pnl"`
	TradeCount  int             `json:"trade_count"`
}

type TradeRow struct {
	ID       string          `json:"id"`
	Action   string          `json:"action"`
	Symbol   string          `json:"symbol"`
	Date     string          `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Profit   decimal.Decimal `json:"profit"`
	At       string          `json:"at"`
}

func toTradeRows(events []recorder.TradeEvent) []TradeRow {
	rows := make([]TradeRow, len(events))
	for i, e := range events {
		rows[i] = TradeRow{
			ID:       e.ID,
			Action:   string(e.Action),
			Symbol:   e.Symbol,
			Date:     e.Date,
			Price:    e.Price,
			Quantity: e.Quantity,
			Profit:   e.Profit,
			At:       e.At.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return rows
}
