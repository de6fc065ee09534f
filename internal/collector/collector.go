package collector

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"ChartPulse/internal/calculator"
	"ChartPulse/internal/logger"
	"ChartPulse/internal/metrics"
	"ChartPulse/internal/model"
	"ChartPulse/internal/recorder"
	"ChartPulse/internal/strategy"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.Bar
	Err   error
	Calls int
	mu    sync.Mutex
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.Bar, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return tail(append([]model.Bar(nil), m.Bars...), days), nil
	}
	return generateMockBars(m.Price, days), nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001 + 0.01*math.Sin(float64(i)))
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i).Format(model.DateLayout),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	Days     int
	Recorder recorder.Recorder
	Metrics  *metrics.Recorder
	log      *logger.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, days int, rec recorder.Recorder, m *metrics.Recorder, log *logger.Logger) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{
		Fetcher:  fetcher,
		Days:     days,
		Recorder: rec,
		Metrics:  m,
		log:      log.With(logger.String("component", "collector")),
	}
}

// Bars fetches the recent daily history for symbol in chronological order.
func (c *Collector) Bars(ctx context.Context, symbol string) ([]model.Bar, error) {
	start := time.Now()
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.Days)
	evt := &recorder.FetchEvent{
		Symbol:   symbol,
		Provider: c.Fetcher.Name(),
		Bars:     len(bars),
		Latency:  time.Since(start),
		At:       start,
	}
	if err != nil {
		evt.Err = err.Error()
	}
	if rerr := c.Recorder.RecordFetch(evt); rerr != nil {
		c.log.Warn("record fetch failed", logger.Error(rerr))
	}
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	bars = normalize(bars)
	if len(bars) == 0 {
		return nil, fmt.Errorf("fetch daily bars %s: %w", symbol, ErrNoData)
	}
	c.log.Debug("bars fetched",
		logger.String("symbol", symbol),
		logger.Int("bars", len(bars)),
		logger.Duration("latency", evt.Latency))
	return bars, nil
}

// Collect fetches market data and computes all indicators.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.Dashboard, error) {
	bars, err := c.Bars(ctx, symbol)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ind, err := Compute(bars)
	if err != nil {
		return nil, err
	}
	c.Metrics.RecordCompute(time.Since(start))

	summary := Summarize(symbol, bars, ind)
	c.Metrics.RecordLastClose(symbol, summary.LastClose)
	c.log.Debug("dashboard computed",
		logger.String("symbol", symbol),
		logger.Float("last_close", summary.LastClose),
		logger.Bool("rising", summary.Slope > 0),
	)

	return &model.Dashboard{
		Symbol:     symbol,
		Provider:   c.Fetcher.Name(),
		FetchedAt:  time.Now(),
		Bars:       bars,
		SMA:        ind.SMA,
		RSI:        ind.RSI,
		MACD:       ind.MACD,
		Projection: ind.Projection,
		Summary:    summary,
		Outlook:    strategy.Evaluate(&summary),
	}, nil
}

// Indicators bundles the derived series for one bar window.
type Indicators struct {
	SMA        model.Series
	RSI        model.Series
	MACD       model.Series
	Projection model.Series
}

// Compute derives every indicator with default parameters. The four series
// are computed in parallel over the same read-only bars.
func Compute(bars []model.Bar) (*Indicators, error) {
	var (
		ind  Indicators
		errs [4]error
		wg   sync.WaitGroup
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		ind.SMA, errs[0] = calculator.SMA(bars, calculator.DefaultSMAPeriod)
	}()
	go func() {
		defer wg.Done()
		ind.RSI, errs[1] = calculator.RSI(bars, calculator.DefaultRSIPeriod)
	}()
	go func() {
		defer wg.Done()
		ind.MACD, errs[2] = calculator.MACD(bars, calculator.DefaultMACDFast, calculator.DefaultMACDSlow)
	}()
	go func() {
		defer wg.Done()
		ind.Projection, errs[3] = calculator.LinearRegression(bars)
	}()
	wg.Wait()

	for i, name := range []string{"sma", "rsi", "macd", "linear regression"} {
		if errs[i] != nil {
			return nil, fmt.Errorf("%s: %w", name, errs[i])
		}
	}
	return &ind, nil
}

// Summarize reads the latest values off the series without modifying them.
func Summarize(symbol string, bars []model.Bar, ind *Indicators) model.Summary {
	s := model.Summary{Symbol: symbol}
	if len(bars) == 0 {
		return s
	}
	last := bars[len(bars)-1]
	s.AsOf = last.Date
	s.LastClose = last.Close
	if len(bars) > 1 {
		prev := bars[len(bars)-2].Close
		s.Change = last.Close - prev
		if prev != 0 {
			s.ChangePct = s.Change / prev * 100
		}
	}
	if high, low, err := calculator.PriceRange(bars); err == nil {
		s.PeriodHigh, s.PeriodLow = high, low
		s.RangePos, _ = calculator.RangePosition(last.Close, high, low)
	}

	if v, ok := ind.SMA.LastValid(); ok {
		s.SMA = &v
	}
	if v, ok := ind.RSI.LastValid(); ok {
		s.RSI = &v
	}
	if p, ok := ind.MACD.Last(); ok && p.Value != nil {
		s.MACD = *p.Value
	}
	if p, ok := ind.Projection.Last(); ok && p.Value != nil {
		s.Projection = *p.Value
	}
	if n := len(ind.Projection); n > 1 && ind.Projection[n-2].Value != nil {
		s.Slope = s.Projection - *ind.Projection[n-2].Value
	}
	return s
}
