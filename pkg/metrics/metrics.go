// Package metrics defines the Prometheus metric collectors the engine and
// its demo HTTP server expose, and an HTTP handler for scraping them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors the engine cares about.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	SearchQueriesTotal *prometheus.CounterVec
	SearchLatency      prometheus.Histogram
	SearchResultsCount prometheus.Histogram

	InsertsTotal    *prometheus.CounterVec
	DeletesTotal    *prometheus.CounterVec
	DocsIndexed     prometheus.Gauge
	WriteQueueDepth prometheus.Gauge

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by outcome (ok, error).",
			},
			[]string{"outcome"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		InsertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inserts_total",
				Help: "Total document inserts by outcome (ok, error).",
			},
			[]string{"outcome"},
		),
		DeletesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deletes_total",
				Help: "Total document deletes by outcome (ok, error, not_found).",
			},
			[]string{"outcome"},
		),
		DocsIndexed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docs_indexed",
				Help: "Current number of documents in the document table.",
			},
		),
		WriteQueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "write_queue_depth",
				Help: "Number of write jobs queued but not yet applied by the writer lane.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "query_cache_hits_total",
				Help: "Total number of demo-server query cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "query_cache_misses_total",
				Help: "Total number of demo-server query cache misses.",
			},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.InsertsTotal,
		m.DeletesTotal,
		m.DocsIndexed,
		m.WriteQueueDepth,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
