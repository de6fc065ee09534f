package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ChartPulse/internal/logger"
	"ChartPulse/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotifier(url string) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", "", logger.Nop())
	n.APIBase = url
	n.Backoff = time.Millisecond
	return n
}

func TestSend_PostsMessage(t *testing.T) {
	var got map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	require.NoError(t, testNotifier(srv.URL).Send(context.Background(), "hello"))
	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendWithRetry_RecoversAfterFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	require.NoError(t, testNotifier(srv.URL).SendWithRetry(context.Background(), "hi", 3))
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := testNotifier(srv.URL).SendWithRetry(context.Background(), "hi", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 retries exhausted")
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestNotify_DisabledIsNoop(t *testing.T) {
	n := NewTelegramNotifier("", "", "", logger.Nop())
	n.APIBase = "http://127.0.0.1:0"
	assert.False(t, n.Enabled())
	assert.NoError(t, n.Notify(context.Background(), "ignored"))

	var nilNotifier *TelegramNotifier
	assert.NoError(t, nilNotifier.Notify(context.Background(), "ignored"))
}

func TestStartPolling_AnswersConfiguredChat(t *testing.T) {
	replies := make(chan string, 4)
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			if atomic.AddInt32(&polls, 1) == 1 {
				_, _ = w.Write([]byte(`{"ok":true,"result":[
					{"update_id":7,"message":{"text":" /help ","chat":{"id":42}}},
					{"update_id":8,"message":{"text":"/help","chat":{"id":99}}}
				]}`))
				return
			}
			assert.Equal(t, "9", r.URL.Query().Get("offset"))
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
		case "/botTOKEN/sendMessage":
			var m map[string]string
			_ = json.NewDecoder(r.Body).Decode(&m)
			replies <- m["text"]
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var handled []string
	go func() {
		testNotifier(srv.URL).StartPolling(ctx, func(_ context.Context, cmd string) string {
			handled = append(handled, cmd)
			return "reply to " + cmd
		})
		close(done)
	}()

	select {
	case r := <-replies:
		assert.Equal(t, "reply to /help", r)
	case <-time.After(5 * time.Second):
		t.Fatal("no reply sent")
	}
	require.Eventually(t, func() bool { return atomic.LoadInt32(&polls) >= 2 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, []string{"/help"}, handled)
}

func TestFormatDashboard(t *testing.T) {
	rsi := 72.456
	d := &model.Dashboard{
		Provider: "fmp",
		Summary: model.Summary{
			Symbol:     "AAPL",
			AsOf:       "2024-03-05",
			LastClose:  170.1234,
			Change:     -1.5,
			ChangePct:  -0.87,
			PeriodHigh: 182,
			PeriodLow:  165.5,
			RSI:        &rsi,
			MACD:       0.456,
			Projection: 171.2,
			Slope:      0.25,
		},
		Outlook: &model.Outlook{
			Factors:    []model.FactorScore{{Name: "RSI", RawScore: -1, Weight: 0.3, Weighted: -0.3, Commentary: "72.46 overbought"}},
			TotalScore: -0.3,
			Label:      "Hold",
			WarningMsg: "RSI >= 70: overbought",
		},
	}
	msg := FormatDashboard(d)
	assert.Contains(t, msg, "<b>AAPL</b> | 2024-03-05 (fmp)")
	assert.Contains(t, msg, "Close: 170.12 (-1.50, -0.87%)")
	assert.Contains(t, msg, "SMA: n/a")
	assert.Contains(t, msg, "RSI: 72.46")
	assert.Contains(t, msg, "<b>Hold</b>")
	assert.Contains(t, msg, "RSI &gt;= 70: overbought")
}

func TestFormatTradeAndPosition(t *testing.T) {
	assert.Contains(t, FormatPosition(nil), "No open position")

	pos := &model.Position{Symbol: "AAPL", Date: "2024-03-01", Price: decimal.NewFromFloat(100.1), Quantity: decimal.NewFromInt(3)}
	assert.Contains(t, FormatPosition(pos), "Qty: 3 @ 100.10 on 2024-03-01")

	res := &model.TradeResult{
		Symbol: "AAPL", Quantity: decimal.NewFromInt(3),
		BuyDate: "2024-03-01", BuyPrice: decimal.NewFromInt(100),
		SellDate: "2024-03-05", SellPrice: decimal.NewFromInt(98),
		Profit: decimal.NewFromInt(-6),
	}
	msg := FormatTrade(res)
	assert.Contains(t, msg, "🔻")
	assert.Contains(t, msg, "Profit: -6.00")
	assert.Contains(t, FormatHelp(), "/buy SYMBOL QTY")
}

func TestFormatters_EscapeHTML(t *testing.T) {
	pos := &model.Position{Symbol: "A<B", Date: "2024-03-01", Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)}
	assert.Contains(t, FormatPosition(pos), "Bought A&lt;B")

	res := &model.TradeResult{Symbol: "A&B", Quantity: decimal.NewFromInt(1), Profit: decimal.NewFromInt(1)}
	assert.Contains(t, FormatTrade(res), "Sold A&amp;B")

	msg := FormatError("X<Y", errors.New("body: <html>oops</html>"))
	assert.Equal(t, "❌ X&lt;Y: body: &lt;html&gt;oops&lt;/html&gt;", msg)
	assert.Equal(t, "❌ no open position", FormatError("", errors.New("no open position")))
}
