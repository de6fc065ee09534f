package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"ChartPulse/internal/logger"
	"ChartPulse/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastGuard(next Fetcher, m *metrics.Recorder) *GuardedFetcher {
	return NewGuardedFetcher(next, GuardOptions{
		RequestsPerSecond: 1000,
		Burst:             10,
		MaxFailures:       2,
		OpenTimeout:       time.Minute,
	}, m, logger.Nop())
}

func TestGuardedFetcher_PassesThrough(t *testing.T) {
	mock := &MockFetcher{Price: 100}
	g := fastGuard(mock, nil)

	bars, err := g.FetchDailyBars(context.Background(), "AAPL", 5)
	require.NoError(t, err)
	assert.Len(t, bars, 5)
	assert.Equal(t, "mock", g.Name())
	assert.Equal(t, "closed", g.State())
}

func TestGuardedFetcher_OpensAfterFailures(t *testing.T) {
	mock := &MockFetcher{Err: errors.New("upstream down")}
	g := fastGuard(mock, metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := g.FetchDailyBars(ctx, "AAPL", 5)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUnavailable))
	}
	assert.Equal(t, "open", g.State())

	_, err := g.FetchDailyBars(ctx, "AAPL", 5)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, 2, mock.Calls, "open breaker must not call the provider")
}

func TestGuardedFetcher_NoDataKeepsBreakerClosed(t *testing.T) {
	mock := &MockFetcher{Err: ErrNoData}
	g := fastGuard(mock, nil)

	for i := 0; i < 5; i++ {
		_, err := g.FetchDailyBars(context.Background(), "ZZZZ", 5)
		assert.True(t, errors.Is(err, ErrNoData))
	}
	assert.Equal(t, "closed", g.State())
}

func TestGuardedFetcher_CanceledContext(t *testing.T) {
	g := NewGuardedFetcher(&MockFetcher{Price: 1}, GuardOptions{RequestsPerSecond: 0.001, Burst: 1}, nil, logger.Nop())
	ctx := context.Background()
	_, err := g.FetchDailyBars(ctx, "AAPL", 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = g.FetchDailyBars(ctx, "AAPL", 1)
	assert.Error(t, err)
}
