package telemetry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveCollection(t *testing.T) {
	t.Parallel()

	m := telemetry.NewMetrics(prometheus.NewRegistry())

	m.ObserveCollection(domain.ModeReal, domain.EngineMySQL, 20*time.Millisecond, nil)
	m.ObserveCollection(domain.ModeReal, domain.EngineMySQL, time.Second, errors.New("refused"))
	m.ObserveCollection(domain.ModeDemo, "", time.Microsecond, nil)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Collections.WithLabelValues("real", "mysql", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Collections.WithLabelValues("real", "mysql", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Collections.WithLabelValues("demo", "", "success")), 0)
}

func TestMetrics_ObserveAlerts(t *testing.T) {
	t.Parallel()

	m := telemetry.NewMetrics(prometheus.NewRegistry())

	m.ObserveAlerts([]domain.Alert{
		{Kind: domain.AlertSlowQuery},
		{Kind: domain.AlertSlowQuery},
		{Kind: domain.AlertHighConnectionCount},
	})

	assert.InDelta(t, 2, testutil.ToFloat64(m.AlertsRaised.WithLabelValues("SlowQuery")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AlertsRaised.WithLabelValues("HighConnectionCount")), 0)
}
