// Package metrics exposes Prometheus metrics for the companion backend.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the backend.
type Metrics struct {
	registry *prometheus.Registry

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Companion reply metrics
	RepliesTotal  *prometheus.CounterVec
	ReplySegments prometheus.Histogram

	// Checkout metrics
	CheckoutsTotal *prometheus.CounterVec

	// Voice call metrics
	CallsActive  prometheus.Gauge
	CallsTotal   *prometheus.CounterVec
	CallDuration prometheus.Histogram

	// Error metrics
	ErrorsTotal *prometheus.CounterVec
}

// New creates a Metrics instance with all metrics registered on a private
// registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "pinkhoney"
	}

	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"endpoint", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	repliesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_total",
			Help:      "Total companion replies generated",
		},
		[]string{"provider", "status"},
	)

	replySegments := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reply_segments",
			Help:      "Number of message segments per companion reply",
			Buckets:   []float64{1, 2, 3, 4, 6, 8},
		},
	)

	checkoutsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Total checkout sessions initiated",
		},
		[]string{"plan", "status"},
	)

	callsActive := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "voice_calls_active",
			Help:      "Number of active voice calls",
		},
	)

	callsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_calls_total",
			Help:      "Total number of voice calls",
		},
		[]string{"status"},
	)

	callDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "voice_call_duration_seconds",
			Help:      "Voice call duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	registry.MustRegister(
		requestsTotal,
		requestDuration,
		repliesTotal,
		replySegments,
		checkoutsTotal,
		callsActive,
		callsTotal,
		callDuration,
		errorsTotal,
	)

	return &Metrics{
		registry:        registry,
		RequestsTotal:   requestsTotal,
		RequestDuration: requestDuration,
		RepliesTotal:    repliesTotal,
		ReplySegments:   replySegments,
		CheckoutsTotal:  checkoutsTotal,
		CallsActive:     callsActive,
		CallsTotal:      callsTotal,
		CallDuration:    callDuration,
		ErrorsTotal:     errorsTotal,
	}
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest records a completed request.
func (m *Metrics) RecordRequest(endpoint, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordReply records a generated companion reply.
func (m *Metrics) RecordReply(provider, status string, segments int) {
	m.RepliesTotal.WithLabelValues(provider, status).Inc()
	if segments > 0 {
		m.ReplySegments.Observe(float64(segments))
	}
}

// RecordCheckout records a checkout session attempt.
func (m *Metrics) RecordCheckout(plan, status string) {
	m.CheckoutsTotal.WithLabelValues(plan, status).Inc()
}

// RecordCallStart records a voice call starting.
func (m *Metrics) RecordCallStart() {
	m.CallsActive.Inc()
}

// RecordCallEnd records a voice call ending.
func (m *Metrics) RecordCallEnd(status string, duration time.Duration) {
	m.CallsActive.Dec()
	m.CallsTotal.WithLabelValues(status).Inc()
	m.CallDuration.Observe(duration.Seconds())
}

// RecordError records an error.
func (m *Metrics) RecordError(component, errorType string) {
	m.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
