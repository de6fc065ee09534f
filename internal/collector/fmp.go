package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ChartPulse/internal/model"
)

const defaultFMPBaseURL = "https://financialmodelingprep.com"

// FMPFetcher implements Fetcher using the Financial Modeling Prep REST API.
type FMPFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFMPFetcher creates a new fetcher with optional proxy support.
func NewFMPFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *FMPFetcher {
	if baseURL == "" {
		baseURL = defaultFMPBaseURL
	}
	return &FMPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (f *FMPFetcher) Name() string { return "fmp" }

// fmpHistory is the historical-price-full response; Historical is newest first.
type fmpHistory struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date   string  `json:"date"`
		Open   float64 `json:"open"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"close"`
		Volume float64 `json:"volume"`
	} `json:"historical"`
	ErrorMessage string `json:"Error Message"`
}

// FetchDailyBars returns the most recent days bars in chronological order.
func (f *FMPFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error) {
	endpoint := fmt.Sprintf("%s/api/v3/historical-price-full/%s?apikey=%s",
		f.BaseURL, url.PathEscape(symbol), url.QueryEscape(f.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fmp fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fmp: status %d, body: %s", resp.StatusCode, string(body))
	}

	var hist fmpHistory
	if err := json.NewDecoder(resp.Body).Decode(&hist); err != nil {
		return nil, fmt.Errorf("fmp decode: %w", err)
	}
	if hist.ErrorMessage != "" {
		return nil, fmt.Errorf("fmp api error: %s", hist.ErrorMessage)
	}
	if len(hist.Historical) == 0 {
		return nil, fmt.Errorf("fmp %s: %w", symbol, ErrNoData)
	}

	recent := hist.Historical
	if days > 0 && len(recent) > days {
		recent = recent[:days]
	}
	bars := make([]model.Bar, len(recent))
	for i, h := range recent {
		bars[len(recent)-1-i] = model.Bar{
			Date:   h.Date,
			Open:   h.Open,
			High:   h.High,
			Low:    h.Low,
			Close:  h.Close,
			Volume: h.Volume,
		}
	}
	return normalize(bars), nil
}
