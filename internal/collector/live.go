package collector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"
)

// Live probes a real database. Each Collect opens its own handle, limited to
// one connection, and closes it before returning.
type Live struct {
	dialect Dialect
	creds   domain.Credentials
	open    OpenFunc
	now     func() time.Time
	timeout time.Duration
	sslMode string
}

// Collect runs the four probes in order. Any failure aborts the whole
// collection with a *ConnectionError; no partial snapshot is returned.
func (l *Live) Collect(ctx context.Context) (domain.HealthSnapshot, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	db, err := l.open(l.dialect.DriverName, l.dialect.DSN(l.creds, l.sslMode))
	if err != nil {
		return domain.HealthSnapshot{}, &ConnectionError{Err: err}
	}
	defer func() { _ = db.Close() }()

	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return domain.HealthSnapshot{}, &ConnectionError{Err: pingErr}
	}

	uptime, err := probe(ctx, db, l.dialect.UptimeQuery)
	if err != nil {
		return domain.HealthSnapshot{}, err
	}

	connections, err := probe(ctx, db, l.dialect.ConnectionsQuery)
	if err != nil {
		return domain.HealthSnapshot{}, err
	}

	latency, err := l.timeReferenceQuery(ctx, db)
	if err != nil {
		return domain.HealthSnapshot{}, err
	}

	failed, err := probe(ctx, db, l.dialect.FailedConnectionsQuery)
	if err != nil {
		return domain.HealthSnapshot{}, err
	}

	return domain.HealthSnapshot{
		UptimeSeconds:       uptime,
		ActiveConnections:   connections,
		QueryLatencySeconds: latency,
		FailedConnections:   failed,
	}, nil
}

// probe runs a status statement and parses the value column of its single
// (name, value) row.
func probe(ctx context.Context, db *sql.DB, query string) (int64, error) {
	var name, value string

	err := db.QueryRowContext(ctx, query).Scan(&name, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &ConnectionError{Err: fmt.Errorf("status probe returned no rows: %s", query)}
	}
	if err != nil {
		return 0, &ConnectionError{Err: err}
	}

	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, &ConnectionError{Err: fmt.Errorf("parse %s value %q: %w", name, value, err)}
	}
	if n < 0 {
		return 0, &ConnectionError{Err: fmt.Errorf("%s is negative: %d", name, n)}
	}

	return n, nil
}

// timeReferenceQuery runs the reference query, drains its rows and returns
// the elapsed wall-clock seconds rounded to milliseconds.
func (l *Live) timeReferenceQuery(ctx context.Context, db *sql.DB) (float64, error) {
	start := l.now()

	rows, err := db.QueryContext(ctx, l.dialect.ReferenceQuery)
	if err != nil {
		return 0, &ConnectionError{Err: err}
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
	}
	if err := rows.Err(); err != nil {
		return 0, &ConnectionError{Err: err}
	}

	return domain.RoundLatency(l.now().Sub(start).Seconds()), nil
}
