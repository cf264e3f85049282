package peer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains peer verification metrics.
type Metrics struct {
	// verificationTotal counts verifications by result and rejection reason.
	verificationTotal *prometheus.CounterVec

	// verificationDuration measures verification duration.
	verificationDuration prometheus.Histogram
}

// NewMetrics creates peer verification metrics registered with the default
// registerer.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegisterer(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates peer verification metrics with a custom
// registerer.
func NewMetricsWithRegisterer(namespace string, registerer prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "horao"
	}
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{}

	m.verificationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "peer",
			Name:      "verification_total",
			Help:      "Total number of peer trust verifications",
		},
		[]string{"result", "reason"},
	)

	m.verificationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "peer",
			Name:      "verification_duration_seconds",
			Help:      "Peer trust verification duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	for _, c := range []prometheus.Collector{m.verificationTotal, m.verificationDuration} {
		_ = registerer.Register(c)
	}

	return m
}

// RecordVerification records a verification outcome.
func (m *Metrics) RecordVerification(result, reason string, duration time.Duration) {
	if m == nil || m.verificationTotal == nil {
		return
	}
	m.verificationTotal.WithLabelValues(result, reason).Inc()
	m.verificationDuration.Observe(duration.Seconds())
}
