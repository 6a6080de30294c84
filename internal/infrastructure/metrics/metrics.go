package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the relay collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	WebhookEvents   *prometheus.CounterVec
	AnalysisResults *prometheus.CounterVec
	Notifications   *prometheus.CounterVec
	ProcessedCalls  prometheus.Gauge
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors on a dedicated registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		WebhookEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_webhook_events_total",
				Help: "Call-completion webhooks by outcome",
			},
			[]string{"outcome"},
		),
		AnalysisResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_analysis_total",
				Help: "Transcript analyses by provider and result",
			},
			[]string{"provider", "result"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_notifications_total",
				Help: "Chat notifications by result",
			},
			[]string{"result"},
		),
		ProcessedCalls: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "relay_processed_calls",
				Help: "Call ids currently held by the dedup set",
			},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relay_http_request_duration_seconds",
				Help:    "HTTP request latency by route and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	registry.MustRegister(
		m.WebhookEvents,
		m.AnalysisResults,
		m.Notifications,
		m.ProcessedCalls,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveWebhook counts one intake outcome
func (m *Metrics) ObserveWebhook(outcome string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(outcome).Inc()
}

// ObserveAnalysis counts one analyzer result
func (m *Metrics) ObserveAnalysis(provider, result string) {
	if m == nil {
		return
	}
	m.AnalysisResults.WithLabelValues(provider, result).Inc()
}

// ObserveNotification counts one notifier result
func (m *Metrics) ObserveNotification(result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(result).Inc()
}

// SetProcessed publishes the dedup set size
func (m *Metrics) SetProcessed(n int) {
	if m == nil {
		return
	}
	m.ProcessedCalls.Set(float64(n))
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(latency.Seconds())
}
