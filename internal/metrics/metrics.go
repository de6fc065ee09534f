package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the service's Prometheus instruments. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	fetchDuration   *prometheus.HistogramVec
	fetchErrors     *prometheus.CounterVec
	computeDuration prometheus.Histogram
	lastClose       *prometheus.GaugeVec
	trades          *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers all instruments with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chartpulse_fetch_duration_seconds",
				Help:    "Latency of price-history fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		fetchErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chartpulse_fetch_errors_total",
				Help: "Price-history fetch failures",
			},
			[]string{"provider", "kind"},
		),
		computeDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chartpulse_indicator_compute_seconds",
				Help:    "Time spent deriving all indicator series for one query",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
			},
		),
		lastClose: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chartpulse_last_close",
				Help: "Latest close seen for a symbol",
			},
			[]string{"symbol"},
		),
		trades: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chartpulse_paper_trades_total",
				Help: "Simulated trades by action",
			},
			[]string{"action"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chartpulse_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chartpulse_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// RecordFetch records a completed fetch attempt.
func (r *Recorder) RecordFetch(provider string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetchDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// RecordFetchError counts a failed fetch by kind (e.g. "breaker_open", "upstream").
func (r *Recorder) RecordFetchError(provider, kind string) {
	if r == nil {
		return
	}
	r.fetchErrors.WithLabelValues(provider, kind).Inc()
}

func (r *Recorder) RecordCompute(d time.Duration) {
	if r == nil {
		return
	}
	r.computeDuration.Observe(d.Seconds())
}

func (r *Recorder) RecordLastClose(symbol string, price float64) {
	if r == nil {
		return
	}
	r.lastClose.WithLabelValues(symbol).Set(price)
}

func (r *Recorder) RecordTrade(action string) {
	if r == nil {
		return
	}
	r.trades.WithLabelValues(action).Inc()
}

// RecordHTTP records one served request.
func (r *Recorder) RecordHTTP(method, route, status string, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, status).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
