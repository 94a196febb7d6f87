package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the analytics service.
type Metrics struct {
	// Report metrics
	ReportRequests *prometheus.CounterVec
	ReportDuration *prometheus.HistogramVec
	ReportRows     *prometheus.HistogramVec

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Ingestion metrics
	FactsIngested *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ReportRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_requests_total",
				Help:      "Total number of report computations requested",
			},
			[]string{"report"},
		),
		ReportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "Time spent computing a report",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		ReportRows: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_rows",
				Help:      "Number of rows produced per report",
				Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
			},
			[]string{"report"},
		),
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_cache_hits_total",
				Help:      "Report results served from cache",
			},
			[]string{"report"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_cache_misses_total",
				Help:      "Report results computed fresh",
			},
			[]string{"report"},
		),
		FactsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "facts_ingested_total",
				Help:      "Fact records accepted through the management API",
			},
			[]string{"type"},
		),
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by path, method and status",
			},
			[]string{"path", "method", "status"},
		),
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Requests rejected by rate limiting",
			},
			[]string{"path"},
		),
	}
}

// RecordReport tracks one report computation.
func (m *Metrics) RecordReport(report string, rows int, duration time.Duration) {
	if m == nil {
		return
	}
	m.ReportRequests.WithLabelValues(report).Inc()
	m.ReportDuration.WithLabelValues(report).Observe(duration.Seconds())
	m.ReportRows.WithLabelValues(report).Observe(float64(rows))
}

// RecordCache tracks a cache lookup outcome.
func (m *Metrics) RecordCache(report string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.WithLabelValues(report).Inc()
	} else {
		m.CacheMisses.WithLabelValues(report).Inc()
	}
}

// RecordIngest tracks one accepted fact record.
func (m *Metrics) RecordIngest(factType string) {
	if m == nil {
		return
	}
	m.FactsIngested.WithLabelValues(factType).Inc()
}

// RecordRateLimitHit tracks a rate-limited request.
func (m *Metrics) RecordRateLimitHit(path string) {
	if m == nil {
		return
	}
	m.RateLimitHits.WithLabelValues(path).Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
