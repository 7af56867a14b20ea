// Package telemetry exports Prometheus metrics about dashboard refreshes.
package telemetry

import (
	"time"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/metrics"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	resultSuccess = "success"
	resultError   = "error"
)

// Metrics holds the collection metrics. Only counters and timings are
// exported; snapshot values are not kept.
type Metrics struct {
	Collections        *prometheus.CounterVec
	CollectionDuration *prometheus.HistogramVec
	AlertsRaised       *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Collections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "collections_total",
			Help:      "Health collections by mode, engine and result.",
		}, []string{"mode", "engine", "result"}),
		CollectionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Name:      "collection_duration_seconds",
			Help:      "Wall-clock duration of a full health collection.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"mode", "engine"}),
		AlertsRaised: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "alerts_total",
			Help:      "Alerts raised by kind.",
		}, []string{"kind"}),
	}
}

// ObserveCollection records one collection attempt.
func (m *Metrics) ObserveCollection(mode domain.Mode, engine domain.Engine, d time.Duration, err error) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}

	m.Collections.WithLabelValues(string(mode), string(engine), result).Inc()
	m.CollectionDuration.WithLabelValues(string(mode), string(engine)).Observe(d.Seconds())
}

// ObserveAlerts counts each alert by kind.
func (m *Metrics) ObserveAlerts(alerts []domain.Alert) {
	for _, a := range alerts {
		m.AlertsRaised.WithLabelValues(string(a.Kind)).Inc()
	}
}
