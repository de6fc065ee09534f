package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-02..2024-01-04 14:30 UTC, the middle session has a null close.
const yahooFixture = `{"chart":{"result":[{
  "meta":{"gmtoffset":-18000},
  "timestamp":[1704205800,1704292200,1704378600],
  "indicators":{"quote":[{
    "open":[10,null,12],
    "high":[11,null,13],
    "low":[9,null,11],
    "close":[10.5,null,12.5],
    "volume":[1000,null,3000]
  }]}
}],"error":null}}`

func TestYahooFetcher_SkipsNullBars(t *testing.T) {
	var gotPath, gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		_, _ = w.Write([]byte(yahooFixture))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "", time.Second)
	bars, err := f.FetchDailyBars(context.Background(), "SPX", 30)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/^GSPC", gotPath)
	assert.Equal(t, "3mo", gotRange)
	require.Len(t, bars, 2)
	assert.Equal(t, "2024-01-02", bars[0].Date)
	assert.Equal(t, "2024-01-04", bars[1].Date)
	assert.Equal(t, 12.5, bars[1].Close)
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	_, err := NewYahooFetcher(srv.URL, "", time.Second).FetchDailyBars(context.Background(), "NOPE", 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestYahooFetcher_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	_, err := NewYahooFetcher(srv.URL, "", time.Second).FetchDailyBars(context.Background(), "NOPE", 30)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestYahooRange(t *testing.T) {
	assert.Equal(t, "1mo", yahooRange(10))
	assert.Equal(t, "3mo", yahooRange(30))
	assert.Equal(t, "6mo", yahooRange(100))
	assert.Equal(t, "1y", yahooRange(200))
	assert.Equal(t, "2y", yahooRange(400))
}

func TestYahooFetcher_PartialRowFallsBackToClose(t *testing.T) {
	fixture := `{"chart":{"result":[{
	  "meta":{"gmtoffset":0},
	  "timestamp":[1704205800,1704292200,1704378600],
	  "indicators":{"quote":[{
	    "open":[10,null,12],
	    "high":[11,null,13],
	    "low":[9,null,11],
	    "close":[10.5,11.5,12.5],
	    "volume":[1000,null,3000]
	  }]}
	}],"error":null}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(fixture))
	}))
	defer srv.Close()

	bars, err := NewYahooFetcher(srv.URL, "", time.Second).FetchDailyBars(context.Background(), "AAPL", 30)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, 11.5, bars[1].Open)
	assert.Equal(t, 11.5, bars[1].High)
	assert.Equal(t, 11.5, bars[1].Low)

	ind, err := Compute(bars)
	require.NoError(t, err)
	sum := Summarize("AAPL", bars, ind)
	assert.Equal(t, 9.0, sum.PeriodLow)
	assert.Equal(t, 13.0, sum.PeriodHigh)
}
