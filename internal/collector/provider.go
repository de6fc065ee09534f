package collector

import (
	"fmt"

	"ChartPulse/internal/config"
)

// NewFetcher builds the configured provider client.
func NewFetcher(cfg *config.Config) (Fetcher, error) {
	ds := cfg.DataSource
	switch ds.Provider {
	case "fmp":
		return NewFMPFetcher(ds.BaseURL, ds.APIKey, cfg.Proxy, ds.Timeout), nil
	case "yahoo":
		return NewYahooFetcher(ds.BaseURL, cfg.Proxy, ds.Timeout), nil
	case "mock":
		return &MockFetcher{Price: 150}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, ds.Provider)
	}
}
