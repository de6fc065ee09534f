package paper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ChartPulse/internal/logger"
	"ChartPulse/internal/metrics"
	"ChartPulse/internal/model"
	"ChartPulse/internal/recorder"

	"github.com/shopspring/decimal"
)

// BarSource supplies a symbol's recent daily history.
type BarSource interface {
	Bars(ctx context.Context, symbol string) ([]model.Bar, error)
}

// TradeNotifier is told about every executed trade.
type TradeNotifier interface {
	NotifyBuy(ctx context.Context, pos *model.Position) error
	NotifySell(ctx context.Context, res *model.TradeResult) error
}

// Trader prices simulated trades at the close of a selected bar.
type Trader struct {
	book     *Book
	bars     BarSource
	recorder recorder.Recorder
	notifier TradeNotifier
	metrics  *metrics.Recorder
	log      *logger.Logger
}

// NewTrader wires a Trader. rec and n may be nil.
func NewTrader(book *Book, bars BarSource, rec recorder.Recorder, n TradeNotifier, m *metrics.Recorder, log *logger.Logger) *Trader {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Trader{
		book:     book,
		bars:     bars,
		recorder: rec,
		notifier: n,
		metrics:  m,
		log:      log.With(logger.String("component", "paper")),
	}
}

func (t *Trader) Position() *model.Position { return t.book.Position() }

func (t *Trader) State() model.PaperState { return t.book.State() }

// Buy opens a position in symbol at the close of the bar dated date, or the
// latest bar when date is empty.
func (t *Trader) Buy(ctx context.Context, symbol, date string, qty decimal.Decimal) (*model.Position, error) {
	if !qty.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	if pos := t.book.Position(); pos != nil {
		return nil, fmt.Errorf("%w: %s bought %s", ErrPositionOpen, pos.Symbol, pos.Date)
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	bar, err := t.selectBar(ctx, symbol, date)
	if err != nil {
		return nil, err
	}
	pos, err := t.book.Buy(symbol, bar.Date, bar.Close, qty)
	if err != nil {
		return nil, err
	}

	t.record(&recorder.TradeEvent{
		ID:       pos.ID,
		Action:   model.ActionBuy,
		Symbol:   pos.Symbol,
		Date:     pos.Date,
		Price:    pos.Price,
		Quantity: pos.Quantity,
		At:       pos.OpenedAt,
	})
	t.log.Info("paper buy",
		logger.String("symbol", pos.Symbol),
		logger.String("date", pos.Date),
		logger.String("price", pos.Price.StringFixed(2)),
		logger.String("qty", pos.Quantity.String()))
	if t.notifier != nil {
		if err := t.notifier.NotifyBuy(ctx, pos); err != nil {
			t.log.Warn("buy notification failed", logger.Error(err))
		}
	}
	return pos, nil
}

// Sell closes the open position at the close of the bar dated date, or the
// latest bar when date is empty.
func (t *Trader) Sell(ctx context.Context, date string) (*model.TradeResult, error) {
	pos := t.book.Position()
	if pos == nil {
		return nil, ErrNoPosition
	}
	bar, err := t.selectBar(ctx, pos.Symbol, date)
	if err != nil {
		return nil, err
	}
	res, err := t.book.Sell(bar.Date, bar.Close)
	if err != nil {
		return nil, err
	}

	t.record(&recorder.TradeEvent{
		ID:       res.ID,
		Action:   model.ActionSell,
		Symbol:   res.Symbol,
		Date:     res.SellDate,
		Price:    res.SellPrice,
		Quantity: res.Quantity,
		Profit:   res.Profit,
		At:       res.ClosedAt,
	})
	t.log.Info("paper sell",
		logger.String("symbol", res.Symbol),
		logger.String("date", res.SellDate),
		logger.String("profit", res.Profit.StringFixed(2)))
	if t.notifier != nil {
		if err := t.notifier.NotifySell(ctx, res); err != nil {
			t.log.Warn("sell notification failed", logger.Error(err))
		}
	}
	return res, nil
}

func (t *Trader) selectBar(ctx context.Context, symbol, date string) (model.Bar, error) {
	if date != "" {
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			return model.Bar{}, fmt.Errorf("%w: bad date %q", ErrBarNotFound, date)
		}
	}
	bars, err := t.bars.Bars(ctx, symbol)
	if err != nil {
		return model.Bar{}, err
	}
	bar, ok := model.FindBar(bars, date)
	if !ok {
		return model.Bar{}, fmt.Errorf("%w: %s %s", ErrBarNotFound, symbol, date)
	}
	return bar, nil
}

func (t *Trader) record(evt *recorder.TradeEvent) {
	t.metrics.RecordTrade(strings.ToLower(string(evt.Action)))
	if err := t.recorder.RecordTrade(evt); err != nil {
		t.log.Error("record trade failed", logger.String("id", evt.ID), logger.Error(err))
	}
}
