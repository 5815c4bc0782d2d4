package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsRegistry holds the Prometheus metrics exposed on /metrics. Each
// server instance carries its own registry so tests can spin up servers
// without colliding on the global default.
type MetricsRegistry struct {
	registry *prometheus.Registry

	ScreenDuration *prometheus.HistogramVec
	RequestsTotal  *prometheus.CounterVec
	ProviderCalls  *prometheus.CounterVec
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
	StreamClients  prometheus.Gauge
	RefreshesTotal prometheus.Counter
}

// NewMetricsRegistry creates and registers all tamscan metrics.
func NewMetricsRegistry() *MetricsRegistry {
	m := &MetricsRegistry{
		registry: prometheus.NewRegistry(),

		ScreenDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tamscan_screen_duration_seconds",
				Help:    "Duration of screening runs in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"result"},
		),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tamscan_http_requests_total",
				Help: "Total HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),

		ProviderCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tamscan_provider_calls_total",
				Help: "Total outbound provider calls by provider and result",
			},
			[]string{"provider", "result"},
		),

		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tamscan_cache_hits_total",
				Help: "Total cache hits by cache type",
			},
			[]string{"cache_type"},
		),

		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tamscan_cache_misses_total",
				Help: "Total cache misses by cache type",
			},
			[]string{"cache_type"},
		),

		StreamClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tamscan_stream_clients",
				Help: "Number of connected websocket clients",
			},
		),

		RefreshesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tamscan_refreshes_total",
				Help: "Total universe refresh runs",
			},
		),
	}

	m.registry.MustRegister(
		m.ScreenDuration,
		m.RequestsTotal,
		m.ProviderCalls,
		m.CacheHits,
		m.CacheMisses,
		m.StreamClients,
		m.RefreshesTotal,
	)
	return m
}

// ObserveScreen records one screening run.
func (m *MetricsRegistry) ObserveScreen(result string, elapsed time.Duration) {
	m.ScreenDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}

// RecordCacheHit records a cache hit for the given cache type.
func (m *MetricsRegistry) RecordCacheHit(cacheType string) {
	m.CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the given cache type.
func (m *MetricsRegistry) RecordCacheMiss(cacheType string) {
	m.CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordProviderCall records one outbound provider call outcome.
func (m *MetricsRegistry) RecordProviderCall(provider, result string) {
	m.ProviderCalls.WithLabelValues(provider, result).Inc()
}

// RefreshCompleted counts one finished universe refresh.
func (m *MetricsRegistry) RefreshCompleted() {
	m.RefreshesTotal.Inc()
}

// Handler exposes the registry in Prometheus text format.
func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
