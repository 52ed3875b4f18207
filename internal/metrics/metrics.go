// Package metrics exposes the prometheus collectors shared across the
// HTTP layer and the realtime hub.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the process collectors and its private registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	WSConnections     prometheus.Gauge
	NotificationsPush prometheus.Counter
}

// New builds the collectors on a fresh registry so tests can create
// independent instances without duplicate-registration panics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vibratto_http_requests_total",
			Help: "HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vibratto_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		WSConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vibratto_ws_connections",
			Help: "Currently open websocket connections.",
		}),
		NotificationsPush: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vibratto_notifications_pushed_total",
			Help: "Notification push attempts on the realtime hub.",
		}),
	}
	m.registry.MustRegister(m.HTTPRequests, m.HTTPDuration, m.WSConnections, m.NotificationsPush)
	return m
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
