package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"time"

	"ChartPulse/internal/model"
)

var (
	// ErrNoData means the provider answered but had no history for the symbol.
	ErrNoData = errors.New("no price data")
	// ErrUnavailable means the provider is temporarily not being called.
	ErrUnavailable = errors.New("data source unavailable")
	// ErrUnknownProvider is returned by NewFetcher for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown data provider")
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error)
	Name() string
}

func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// normalize sorts bars chronologically and keeps the last bar seen for a repeated date.
func normalize(bars []model.Bar) []model.Bar {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Date == b.Date {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

// tail keeps the most recent n bars.
func tail(bars []model.Bar, n int) []model.Bar {
	if n > 0 && len(bars) > n {
		return bars[len(bars)-n:]
	}
	return bars
}
