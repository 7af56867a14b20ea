// Package monitor runs one collect-evaluate cycle per dashboard interaction.
package monitor

import (
	"context"
	"time"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/logger"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/alerting"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/collector"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/telemetry"
)

// Request is one refresh as entered by the operator.
type Request struct {
	Mode        domain.Mode
	Credentials domain.Credentials
}

// Report is the outcome of a successful refresh.
type Report struct {
	Mode        domain.Mode           `json:"mode"`
	Engine      domain.Engine         `json:"engine,omitempty"`
	Snapshot    domain.HealthSnapshot `json:"snapshot"`
	Alerts      []domain.Alert        `json:"alerts"`
	CollectedAt time.Time             `json:"collected_at"`
}

// Service selects a collector, collects and evaluates alerts.
type Service struct {
	collectors *collector.Factory
	metrics    *telemetry.Metrics
	now        func() time.Time
}

// NewService creates a Service.
func NewService(collectors *collector.Factory, metrics *telemetry.Metrics) *Service {
	return &Service{
		collectors: collectors,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Refresh runs one full cycle. It returns collector.ErrUnknownMode or
// collector.ErrUnknownEngine for bad input, and a *collector.ConnectionError
// when live collection fails. Nothing is retried.
func (s *Service) Refresh(ctx context.Context, req Request) (Report, error) {
	log := logger.FromContext(ctx)

	c, err := s.collectors.For(req.Mode, req.Credentials)
	if err != nil {
		return Report{}, err
	}

	engine := req.Credentials.Engine
	if req.Mode == domain.ModeDemo {
		engine = ""
	}

	start := s.now()
	snapshot, err := c.Collect(ctx)
	elapsed := s.now().Sub(start)
	s.metrics.ObserveCollection(req.Mode, engine, elapsed, err)

	if err != nil {
		log.Warn("Health collection failed",
			logger.String("mode", string(req.Mode)),
			logger.String("engine", string(engine)),
			logger.String("host", req.Credentials.Host),
			logger.String("database", req.Credentials.Database),
			logger.Duration("duration", elapsed),
			logger.Error(err),
		)
		return Report{}, err
	}

	alerts := alerting.Evaluate(snapshot)
	s.metrics.ObserveAlerts(alerts)

	log.Info("Health snapshot collected",
		logger.String("mode", string(req.Mode)),
		logger.String("engine", string(engine)),
		logger.String("host", req.Credentials.Host),
		logger.Duration("duration", elapsed),
		logger.Int("alerts", len(alerts)),
	)

	return Report{
		Mode:        req.Mode,
		Engine:      engine,
		Snapshot:    snapshot,
		Alerts:      alerts,
		CollectedAt: start.UTC(),
	}, nil
}
