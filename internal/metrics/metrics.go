// Package metrics exposes the application's Prometheus collectors and
// the /metrics HTTP handler.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the application's Prometheus collectors. Collectors
// are registered against a private registry so tests can create as many
// instances as they like without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry

	UploadsTotal    prometheus.Counter
	UploadRows      prometheus.Counter
	UploadsRejected prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		UploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mediapulse",
			Name:      "uploads_total",
			Help:      "Number of dataset uploads accepted.",
		}),
		UploadRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mediapulse",
			Name:      "upload_rows_total",
			Help:      "Number of raw rows ingested across all uploads.",
		}),
		UploadsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mediapulse",
			Name:      "uploads_rejected_total",
			Help:      "Number of uploads rejected as structurally invalid.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mediapulse",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	registry.MustRegister(
		m.UploadsTotal,
		m.UploadRows,
		m.UploadsRejected,
		m.RequestDuration,
	)
	return m
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one request latency sample.
func (m *Metrics) ObserveRequest(route, method string, duration time.Duration) {
	m.RequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}
