package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ChartPulse/internal/logger"
	"ChartPulse/internal/model"
	"ChartPulse/internal/notifier"
	"ChartPulse/internal/paper"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// DashboardSource builds the dashboard for a symbol.
type DashboardSource interface {
	Collect(ctx context.Context, symbol string) (*model.Dashboard, error)
}

// Trader executes simulated trades.
type Trader interface {
	Buy(ctx context.Context, symbol, date string, qty decimal.Decimal) (*model.Position, error)
	Sell(ctx context.Context, date string) (*model.TradeResult, error)
	Position() *model.Position
}

// Messenger delivers a message to the configured chat.
type Messenger interface {
	Notify(ctx context.Context, text string) error
}

// Scheduler manages the digest cron task and answers bot commands.
type Scheduler struct {
	Cron      *cron.Cron
	Dashboard DashboardSource
	Trader    Trader
	Messenger Messenger
	Symbol    string
	Ctx       context.Context
	log       *logger.Logger
}

// NewScheduler creates a new Scheduler for the default symbol.
func NewScheduler(ctx context.Context, src DashboardSource, tr Trader, m Messenger, symbol string, log *logger.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Dashboard: src,
		Trader:    tr,
		Messenger: m,
		Symbol:    strings.ToUpper(symbol),
		Ctx:       ctx,
		log:       log.With(logger.String("component", "scheduler")),
	}
}

// RegisterAll registers the digest task.
func (s *Scheduler) RegisterAll(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", logger.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunDigestNow executes the digest task immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	s.log.Info("running digest task", logger.String("symbol", s.Symbol))
	d, err := s.Dashboard.Collect(s.Ctx, s.Symbol)
	if err != nil {
		s.log.Error("digest collect failed", logger.String("symbol", s.Symbol), logger.Error(err))
		s.trySend(notifier.FormatError("Digest for "+s.Symbol+" failed", err))
		return
	}
	s.trySend(notifier.FormatDashboard(d))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// "/quote@MyBot AAPL" in group chats
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch name {
	case "/quote":
		symbol := s.Symbol
		if len(args) > 0 {
			symbol = strings.ToUpper(args[0])
		}
		d, err := s.Dashboard.Collect(ctx, symbol)
		if err != nil {
			return notifier.FormatError(symbol, err)
		}
		return notifier.FormatDashboard(d)
	case "/position":
		return notifier.FormatPosition(s.Trader.Position())
	case "/buy":
		if len(args) != 2 {
			return "Usage: /buy SYMBOL QTY"
		}
		qty, err := decimal.NewFromString(args[1])
		if err != nil {
			return notifier.FormatError("", fmt.Errorf("bad quantity %q", args[1]))
		}
		pos, err := s.Trader.Buy(ctx, args[0], "", qty)
		if err != nil {
			return notifier.FormatError("", tradeError(err))
		}
		return notifier.FormatPosition(pos)
	case "/sell":
		res, err := s.Trader.Sell(ctx, "")
		if err != nil {
			return notifier.FormatError("", tradeError(err))
		}
		return notifier.FormatTrade(res)
	default:
		return notifier.FormatHelp()
	}
}

func tradeError(err error) error {
	switch {
	case errors.Is(err, paper.ErrInvalidQuantity):
		return errors.New("quantity must be greater than zero")
	case errors.Is(err, paper.ErrPositionOpen):
		return errors.New("a position is already open, /sell it first")
	case errors.Is(err, paper.ErrNoPosition):
		return errors.New("no open position")
	default:
		return err
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Messenger.Notify(s.Ctx, text); err != nil {
		s.log.Error("send notification failed", logger.Error(err))
	}
}
