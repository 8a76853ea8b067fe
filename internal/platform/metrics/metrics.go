package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus metrics. Domain-specific
// metrics live next to their services.
type Metrics struct {
	RequestLatency *prometheus.HistogramVec
	QRIssued       prometheus.Counter
}

// New creates and registers all application metrics.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "asistencia_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),
		QRIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "asistencia_qr_issued_total",
			Help: "Total QR tokens issued",
		}),
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}

// IncrementQRIssued records a QR issuance.
func (m *Metrics) IncrementQRIssued() {
	if m != nil {
		m.QRIssued.Inc()
	}
}
