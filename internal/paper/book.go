package paper

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ChartPulse/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrPositionOpen    = errors.New("a position is already open")
	ErrNoPosition      = errors.New("no open position")
	ErrBarNotFound     = errors.New("no bar for the selected date")
)

// Book holds at most one open simulated position plus realized profit,
// persisted to a JSON state file after every change.
type Book struct {
	mu       sync.Mutex
	state    *model.PaperState
	filePath string
}

// NewBook creates a Book, loading existing state from disk.
func NewBook(filePath string) (*Book, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Book{state: state, filePath: filePath}, nil
}

// Position returns a copy of the open position, or nil.
func (b *Book) Position() *model.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state.Open == nil {
		return nil
	}
	p := *b.state.Open
	return &p
}

// State returns a copy of the current paper state.
func (b *Book) State() model.PaperState {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := *b.state
	if s.Open != nil {
		p := *s.Open
		s.Open = &p
	}
	return s
}

// Buy opens a position of qty units at price.
func (b *Book) Buy(symbol, date string, price float64, qty decimal.Decimal) (*model.Position, error) {
	if !qty.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state.Open != nil {
		return nil, fmt.Errorf("%w: %s bought %s", ErrPositionOpen, b.state.Open.Symbol, b.state.Open.Date)
	}

	pos := &model.Position{
		ID:       uuid.NewString(),
		Symbol:   strings.ToUpper(symbol),
		Date:     date,
		Price:    decimal.NewFromFloat(price),
		Quantity: qty,
		OpenedAt: time.Now(),
	}
	next := *b.state
	next.Open = pos
	if err := b.commit(&next); err != nil {
		return nil, err
	}
	out := *pos
	return &out, nil
}

// Sell closes the open position at price. Profit is (sell - buy) * quantity.
func (b *Book) Sell(date string, price float64) (*model.TradeResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	pos := b.state.Open
	if pos == nil {
		return nil, ErrNoPosition
	}

	sellPrice := decimal.NewFromFloat(price)
	res := &model.TradeResult{
		ID:        pos.ID,
		Symbol:    pos.Symbol,
		Quantity:  pos.Quantity,
		BuyDate:   pos.Date,
		BuyPrice:  pos.Price,
		SellDate:  date,
		SellPrice: sellPrice,
		Profit:    sellPrice.Sub(pos.Price).Mul(pos.Quantity),
		ClosedAt:  time.Now(),
	}
	next := *b.state
	next.Open = nil
	next.RealizedPnL = next.RealizedPnL.Add(res.Profit)
	next.TradeCount++
	if err := b.commit(&next); err != nil {
		return nil, err
	}
	return res, nil
}

// commit persists next and only then makes it current.
func (b *Book) commit(next *model.PaperState) error {
	if err := SaveState(b.filePath, next); err != nil {
		return fmt.Errorf("save paper state: %w", err)
	}
	b.state = next
	return nil
}
