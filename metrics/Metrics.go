package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns an isolated registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight  prometheus.Gauge
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	otpRequests   *prometheus.CounterVec
	hubClients    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "matchup",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchup",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "matchup",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchup",
			Subsystem: "notifications",
			Name:      "created_total",
			Help:      "Notifications stored, by type.",
		}, []string{"type"}),
		otpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchup",
			Subsystem: "otp",
			Name:      "requests_total",
			Help:      "OTP provider calls, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		hubClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "matchup",
			Subsystem: "hub",
			Name:      "connections",
			Help:      "Open websocket connections.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.notifications,
		m.otpRequests,
		m.hubClients,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncInFlight() { m.httpInFlight.Inc() }
func (m *Metrics) DecInFlight() { m.httpInFlight.Dec() }

func (m *Metrics) RecordHTTPRequest(method, path, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) NotificationCreated(kind string) {
	m.notifications.WithLabelValues(kind).Inc()
}

func (m *Metrics) OTPRequest(operation, outcome string) {
	m.otpRequests.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) HubConnected()    { m.hubClients.Inc() }
func (m *Metrics) HubDisconnected() { m.hubClients.Dec() }
