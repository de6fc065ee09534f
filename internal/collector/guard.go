package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ChartPulse/internal/logger"
	"ChartPulse/internal/metrics"
	"ChartPulse/internal/model"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// GuardOptions tunes the rate limiter and circuit breaker around a Fetcher.
type GuardOptions struct {
	RequestsPerSecond float64
	Burst             int
	MaxFailures       uint32
	OpenTimeout       time.Duration
}

// GuardedFetcher throttles calls to the wrapped Fetcher and stops calling it
// after repeated failures until the breaker's open timeout has passed.
type GuardedFetcher struct {
	next    Fetcher
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Recorder
	log     *logger.Logger
}

// NewGuardedFetcher wraps next.
func NewGuardedFetcher(next Fetcher, opts GuardOptions, m *metrics.Recorder, log *logger.Logger) *GuardedFetcher {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	if opts.MaxFailures == 0 {
		opts.MaxFailures = 3
	}
	g := &GuardedFetcher{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		metrics: m,
		log:     log,
	}
	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    next.Name(),
		Timeout: opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.MaxFailures
		},
		// A symbol without history says nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoData) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("breaker state changed",
				logger.String("provider", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
		},
	})
	return g
}

func (g *GuardedFetcher) Name() string { return g.next.Name() }

// State reports the breaker state, for health output.
func (g *GuardedFetcher) State() string { return g.breaker.State().String() }

func (g *GuardedFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	res, err := g.breaker.Execute(func() (interface{}, error) {
		return g.next.FetchDailyBars(ctx, symbol, days)
	})
	g.metrics.RecordFetch(g.Name(), time.Since(start))
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			g.metrics.RecordFetchError(g.Name(), "breaker_open")
			return nil, fmt.Errorf("%s: %w", g.Name(), ErrUnavailable)
		}
		if errors.Is(err, ErrNoData) {
			g.metrics.RecordFetchError(g.Name(), "no_data")
		} else {
			g.metrics.RecordFetchError(g.Name(), "upstream")
		}
		return nil, err
	}
	return res.([]model.Bar), nil
}
