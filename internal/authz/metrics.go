package authz

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains authorization metrics.
type Metrics struct {
	// decisionTotal counts gate decisions by outcome, namespace, and level.
	decisionTotal *prometheus.CounterVec
}

// NewMetrics creates authorization metrics registered with the default
// registerer.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegisterer(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates authorization metrics with a custom
// registerer.
func NewMetricsWithRegisterer(namespace string, registerer prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "horao"
	}
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{}

	m.decisionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "authz",
			Name:      "decision_total",
			Help:      "Total number of authorization gate decisions",
		},
		[]string{"decision", "namespace", "level"},
	)

	_ = registerer.Register(m.decisionTotal)

	return m
}

// RecordDecision records a gate decision.
func (m *Metrics) RecordDecision(decision, namespace, level string) {
	if m == nil || m.decisionTotal == nil {
		return
	}
	m.decisionTotal.WithLabelValues(decision, namespace, level).Inc()
}
