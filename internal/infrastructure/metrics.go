package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the collection of Prometheus instruments the service exposes.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	UploadsTotal        prometheus.Counter
	UploadFailuresTotal prometheus.Counter
	AnalysesTotal       prometheus.Counter
	ScoringsTotal       prometheus.Counter
	ExportsTotal        prometheus.Counter

	ProductsActive prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers the instrument set on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nav",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status class",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nav",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nav",
			Name:      "uploads_total",
			Help:      "Total NAV workbooks accepted",
		}),
		UploadFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nav",
			Name:      "upload_failures_total",
			Help:      "Total NAV workbooks rejected during parsing",
		}),
		AnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nav",
			Name:      "analyses_total",
			Help:      "Total analysis runs",
		}),
		ScoringsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nav",
			Name:      "scorings_total",
			Help:      "Total scoring runs",
		}),
		ExportsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nav",
			Name:      "exports_total",
			Help:      "Total CSV exports served",
		}),
		ProductsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nav",
			Name:      "products_active",
			Help:      "Products currently held in the store",
		}),
	}

	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.UploadsTotal,
		m.UploadFailuresTotal,
		m.AnalysesTotal,
		m.ScoringsTotal,
		m.ExportsTotal,
		m.ProductsActive,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
