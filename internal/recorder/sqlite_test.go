package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"ChartPulse/internal/logger"
	"ChartPulse/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "sub", "test.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_TradesRoundTrip(t *testing.T) {
	r := openTestDB(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.RecordTrade(&TradeEvent{
		ID: "t1", Action: model.ActionBuy, Symbol: "AAPL", Date: "2024-02-28",
		Price: decimal.RequireFromString("181.42"), Quantity: decimal.NewFromInt(10),
		Profit: decimal.Zero, At: base,
	}))
	require.NoError(t, r.RecordTrade(&TradeEvent{
		ID: "t1", Action: model.ActionSell, Symbol: "AAPL", Date: "2024-02-29",
		Price: decimal.RequireFromString("183.00"), Quantity: decimal.NewFromInt(10),
		Profit: decimal.RequireFromString("15.8"), At: base.Add(time.Hour),
	}))

	trades, err := r.ListTrades(10)
	require.NoError(t, err)
	require.Len(t, trades, 2)

	assert.Equal(t, model.ActionSell, trades[0].Action)
	assert.True(t, trades[0].Profit.Equal(decimal.RequireFromString("15.8")))
	assert.Equal(t, "2024-02-28", trades[1].Date)
	assert.True(t, trades[1].Price.Equal(decimal.RequireFromString("181.42")))
	assert.Equal(t, base.UnixMilli(), trades[1].At.UnixMilli())

	limited, err := r.ListTrades(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteRecorder_RecordFetch(t *testing.T) {
	r := openTestDB(t)
	require.NoError(t, r.RecordFetch(&FetchEvent{
		Symbol: "AAPL", Provider: "fmp", Bars: 30, Latency: 180 * time.Millisecond,
	}))
	require.NoError(t, r.RecordFetch(&FetchEvent{Symbol: "ZZZ", Provider: "fmp", Err: "no price data"}))

	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM fetch_log`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestNoopRecorder(t *testing.T) {
	r := NewNoopRecorder()
	assert.NoError(t, r.RecordTrade(&TradeEvent{}))
	assert.NoError(t, r.RecordFetch(&FetchEvent{}))
	trades, err := r.ListTrades(5)
	assert.NoError(t, err)
	assert.Empty(t, trades)
	assert.NoError(t, r.Close())
}
