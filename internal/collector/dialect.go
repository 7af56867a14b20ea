package collector

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"

	_ "github.com/lib/pq"
)

const defaultPostgresSSLMode = "disable"

// Dialect is the driver and the four statements used to probe one engine.
// Status probes return a single (name, value) row.
type Dialect struct {
	Engine      domain.Engine
	DriverName  string
	DefaultPort int

	UptimeQuery            string
	ConnectionsQuery       string
	ReferenceQuery         string
	FailedConnectionsQuery string

	dsn func(creds domain.Credentials, addr, sslMode string) string
}

// MySQL probes server status variables.
var MySQL = Dialect{
	Engine:      domain.EngineMySQL,
	DriverName:  "mysql",
	DefaultPort: 3306,

	UptimeQuery:            "SHOW GLOBAL STATUS LIKE 'Uptime';",
	ConnectionsQuery:       "SHOW STATUS LIKE 'Threads_connected';",
	ReferenceQuery:         "SELECT COUNT(*) FROM information_schema.tables;",
	FailedConnectionsQuery: "SHOW GLOBAL STATUS LIKE 'Aborted_connects';",

	dsn: func(creds domain.Credentials, addr, _ string) string {
		cfg := mysql.NewConfig()
		cfg.User = creds.User
		cfg.Passwd = creds.Password
		cfg.Net = "tcp"
		cfg.Addr = addr
		cfg.DBName = creds.Database
		return cfg.FormatDSN()
	},
}

// Postgres reads the equivalent statistics from the pg_stat views.
// sessions_fatal and sessions_killed need PostgreSQL 14 or later.
var Postgres = Dialect{
	Engine:      domain.EnginePostgres,
	DriverName:  "postgres",
	DefaultPort: 5432,

	UptimeQuery: "SELECT 'Uptime', " +
		"floor(extract(epoch FROM now() - pg_postmaster_start_time()))::bigint::text;",
	ConnectionsQuery: "SELECT 'Threads_connected', count(*)::text FROM pg_stat_activity;",
	ReferenceQuery:   "SELECT COUNT(*) FROM information_schema.tables;",
	FailedConnectionsQuery: "SELECT 'Aborted_connects', " +
		"coalesce(sum(sessions_fatal + sessions_killed), 0)::bigint::text FROM pg_stat_database;",

	dsn: func(creds domain.Credentials, addr, sslMode string) string {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(creds.User, creds.Password),
			Host:     addr,
			Path:     "/" + creds.Database,
			RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
		}
		return u.String()
	},
}

// DialectFor returns the dialect for engine.
func DialectFor(engine domain.Engine) (Dialect, error) {
	switch engine {
	case domain.EngineMySQL:
		return MySQL, nil
	case domain.EnginePostgres:
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

// Address returns host with the dialect's default port appended unless host
// already names one.
func (d Dialect) Address(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(d.DefaultPort))
}

// DSN builds the driver connection string for creds.
func (d Dialect) DSN(creds domain.Credentials, sslMode string) string {
	if sslMode == "" {
		sslMode = defaultPostgresSSLMode
	}
	return d.dsn(creds, d.Address(creds.Host), sslMode)
}
