package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the weather-map service.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint={weather,forecast,geocode}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint
	BreakerOpen      *prometheus.GaugeVec     // labels: client

	FetchResults   *prometheus.CounterVec // labels: outcome={applied,stale,failed}
	ActiveSessions prometheus.Gauge
	SearchCache    *prometheus.CounterVec // labels: result={hit,miss}

	FeaturedRefresh *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all collectors with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many instances as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_map",
			Name:      "upstream_requests_total",
			Help:      "Weather API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_map",
			Name:      "upstream_request_duration_seconds",
			Help:      "Weather API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		BreakerOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "weather_map",
			Name:      "circuit_breaker_open",
			Help:      "1 when the client's circuit breaker is open.",
		}, []string{"client"}),
		FetchResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_map",
			Name:      "fetch_results_total",
			Help:      "Completed session weather fetches by outcome.",
		}, []string{"outcome"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_map",
			Name:      "active_sessions",
			Help:      "Number of live UI sessions.",
		}),
		SearchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_map",
			Name:      "search_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		FeaturedRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_map",
			Name:      "featured_refresh_total",
			Help:      "Featured city refreshes by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.BreakerOpen,
		m.FetchResults,
		m.ActiveSessions,
		m.SearchCache,
		m.FeaturedRefresh,
	}
}
