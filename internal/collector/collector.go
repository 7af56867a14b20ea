// Package collector produces health snapshots, either by probing a live
// database or by synthesizing demo values.
package collector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"
)

// Collector produces one snapshot per call.
type Collector interface {
	Collect(ctx context.Context) (domain.HealthSnapshot, error)
}

// OpenFunc opens a database handle. sql.Open satisfies it.
type OpenFunc func(driverName, dsn string) (*sql.DB, error)

// Factory picks the Collector for one interaction.
type Factory struct {
	demo    *Demo
	open    OpenFunc
	now     func() time.Time
	timeout time.Duration
	sslMode string
}

// Option configures a Factory.
type Option func(*Factory)

// WithOpenFunc replaces sql.Open. Tests use it to inject sqlmock.
func WithOpenFunc(open OpenFunc) Option {
	return func(f *Factory) { f.open = open }
}

// WithClock replaces time.Now for latency measurement.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) { f.now = now }
}

// WithTimeout bounds each live collection. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(f *Factory) { f.timeout = d }
}

// WithPostgresSSLMode sets the sslmode used for postgres connections.
func WithPostgresSSLMode(mode string) Option {
	return func(f *Factory) { f.sslMode = mode }
}

// WithDemo replaces the demo collector.
func WithDemo(d *Demo) Option {
	return func(f *Factory) { f.demo = d }
}

// NewFactory returns a Factory using sql.Open, time.Now and a randomly
// seeded demo collector unless overridden.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		open:    sql.Open,
		now:     time.Now,
		sslMode: defaultPostgresSSLMode,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.demo == nil {
		f.demo = NewDemo(nil)
	}
	return f
}

// For returns the collector for mode. Credentials are ignored in demo mode.
func (f *Factory) For(mode domain.Mode, creds domain.Credentials) (Collector, error) {
	switch mode {
	case domain.ModeDemo:
		return f.demo, nil
	case domain.ModeReal:
		dialect, err := DialectFor(creds.Engine)
		if err != nil {
			return nil, err
		}
		return &Live{
			dialect: dialect,
			creds:   creds,
			open:    f.open,
			now:     f.now,
			timeout: f.timeout,
			sslMode: f.sslMode,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}
