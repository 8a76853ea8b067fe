package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the attendance module.
type Metrics struct {
	MarksAccepted *prometheus.CounterVec
	MarksRejected *prometheus.CounterVec
	MarkLatency   prometheus.Histogram
}

// New creates and registers all attendance metrics.
func New() *Metrics {
	return &Metrics{
		MarksAccepted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "asistencia_marks_accepted_total",
			Help: "Accepted clock events by kind",
		}, []string{"kind"}),
		MarksRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "asistencia_marks_rejected_total",
			Help: "Rejected clock requests by reason code",
		}, []string{"reason"}),
		MarkLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "asistencia_mark_duration_seconds",
			Help:    "Duration of the full mark validation pipeline",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementAccepted records an accepted mark.
func (m *Metrics) IncrementAccepted(kind string) {
	if m != nil {
		m.MarksAccepted.WithLabelValues(kind).Inc()
	}
}

// IncrementRejected records a rejection by reason code.
func (m *Metrics) IncrementRejected(reason string) {
	if m != nil {
		m.MarksRejected.WithLabelValues(reason).Inc()
	}
}

// ObserveMarkLatency records the pipeline duration.
func (m *Metrics) ObserveMarkLatency(d time.Duration) {
	if m != nil {
		m.MarkLatency.Observe(d.Seconds())
	}
}
