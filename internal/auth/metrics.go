package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains authentication metrics.
type Metrics struct {
	// attemptTotal counts authentication attempts by backend and result.
	attemptTotal *prometheus.CounterVec

	// attemptDuration measures authentication attempt duration.
	attemptDuration *prometheus.HistogramVec

	// failureTotal counts terminal failures by backend and reason.
	failureTotal *prometheus.CounterVec
}

// NewMetrics creates authentication metrics registered with the default
// registerer.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegisterer(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates authentication metrics with a custom
// registerer.
func NewMetricsWithRegisterer(namespace string, registerer prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "horao"
	}
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{}

	m.attemptTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempt_total",
			Help:      "Total number of authentication attempts",
		},
		[]string{"backend", "result"},
	)

	m.attemptDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempt_duration_seconds",
			Help:      "Authentication attempt duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"backend"},
	)

	m.failureTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "failure_total",
			Help:      "Total number of terminal authentication failures",
		},
		[]string{"backend", "reason"},
	)

	collectors := []prometheus.Collector{
		m.attemptTotal,
		m.attemptDuration,
		m.failureTotal,
	}
	for _, c := range collectors {
		_ = registerer.Register(c)
	}

	return m
}

// RecordAttempt records an authentication attempt.
func (m *Metrics) RecordAttempt(backend, result string, duration time.Duration) {
	if m == nil || m.attemptTotal == nil {
		return
	}
	m.attemptTotal.WithLabelValues(backend, result).Inc()
	m.attemptDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordFailure records a terminal authentication failure.
func (m *Metrics) RecordFailure(backend, reason string) {
	if m == nil || m.failureTotal == nil {
		return
	}
	m.failureTotal.WithLabelValues(backend, reason).Inc()
}
