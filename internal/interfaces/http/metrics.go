package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the insights service.
type Metrics struct {
	registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	EngineDuration  prometheus.Histogram
	StoresAnalyzed  prometheus.Gauge
}

// NewMetrics creates and registers all instruments on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storepulse_request_duration_seconds",
				Help:    "HTTP request duration by route and status",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"route", "status"},
		),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storepulse_report_cache_hits_total",
			Help: "Insights report cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storepulse_report_cache_misses_total",
			Help: "Insights report cache misses",
		}),
		EngineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storepulse_engine_duration_seconds",
			Help:    "Analysis engine execution time",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}),
		StoresAnalyzed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storepulse_stores_analyzed",
			Help: "Store count in the most recent analysis",
		}),
	}

	m.registry.MustRegister(
		m.RequestDuration,
		m.CacheHits,
		m.CacheMisses,
		m.EngineDuration,
		m.StoresAnalyzed,
	)
	return m
}

// Handler exposes the registry for the /metrics route.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
