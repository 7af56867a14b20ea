package config

import (
	"time"

	infraconfig "github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/config"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/profiling"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"
)

// Default configuration values.
const (
	defaultServiceName = "dbhealth"
	defaultServicePort = 8501
	defaultVersion     = "0.1.0"

	defaultHost     = "localhost"
	defaultUser     = "root"
	defaultDatabase = "testdb"
	defaultEngine   = domain.EngineMySQL
	defaultMode     = domain.ModeDemo

	defaultSSLMode = "disable"

	defaultConnectsPerMinute = 30
	defaultBurst             = 10
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig             `yaml:"service"`
	Dashboard DashboardConfig           `yaml:"dashboard"`
	Collector CollectorConfig           `yaml:"collector"`
	RateLimit RateLimitConfig           `yaml:"rate_limit"`
	Logging   infraconfig.LoggingConfig `yaml:"logging"`
	Profiling profiling.Config          `yaml:"profiling"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Port        int      `env:"DBHEALTH_PORT"         yaml:"port"`
	Debug       bool     `env:"APP_DEBUG"             yaml:"debug"`
	CORSOrigins []string `env:"DBHEALTH_CORS_ORIGINS" yaml:"cors_origins"`
}

// DashboardConfig holds the values pre-filled in the connection form.
// There is deliberately no default password.
type DashboardConfig struct {
	Host     string        `env:"DBHEALTH_DEFAULT_HOST"     yaml:"host"`
	User     string        `env:"DBHEALTH_DEFAULT_USER"     yaml:"user"`
	Database string        `env:"DBHEALTH_DEFAULT_DATABASE" yaml:"database"`
	Engine   domain.Engine `env:"DBHEALTH_DEFAULT_ENGINE"   yaml:"engine"`
	Mode     domain.Mode   `env:"DBHEALTH_DEFAULT_MODE"     yaml:"mode"`
}

// CollectorConfig tunes live collection.
type CollectorConfig struct {
	// Timeout bounds one live collection. Zero waits indefinitely.
	Timeout         time.Duration `env:"DBHEALTH_COLLECT_TIMEOUT"  yaml:"timeout"`
	PostgresSSLMode string        `env:"DBHEALTH_POSTGRES_SSLMODE" yaml:"postgres_sslmode"`
}

// RateLimitConfig limits collection requests per client IP.
type RateLimitConfig struct {
	ConnectsPerMinute int `yaml:"connects_per_minute"`
	Burst             int `yaml:"burst"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDashboardDefaults(&cfg.Dashboard)
	if cfg.Collector.PostgresSSLMode == "" {
		cfg.Collector.PostgresSSLMode = defaultSSLMode
	}
	if cfg.RateLimit.ConnectsPerMinute == 0 {
		cfg.RateLimit.ConnectsPerMinute = defaultConnectsPerMinute
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = defaultBurst
	}
	cfg.Logging.SetDefaults()
	cfg.Profiling.SetDefaults()
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

func setDashboardDefaults(d *DashboardConfig) {
	if d.Host == "" {
		d.Host = defaultHost
	}
	if d.User == "" {
		d.User = defaultUser
	}
	if d.Database == "" {
		d.Database = defaultDatabase
	}
	if d.Engine == "" {
		d.Engine = defaultEngine
	}
	if d.Mode == "" {
		d.Mode = defaultMode
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidateRequired("service.name", c.Service.Name); err != nil {
		return err
	}
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := infraconfig.ValidateOneOf("dashboard.engine", string(c.Dashboard.Engine),
		string(domain.EngineMySQL), string(domain.EnginePostgres)); err != nil {
		return err
	}
	if err := infraconfig.ValidateOneOf("dashboard.mode", string(c.Dashboard.Mode),
		string(domain.ModeDemo), string(domain.ModeReal)); err != nil {
		return err
	}
	if c.Collector.Timeout < 0 {
		return &infraconfig.ValidationError{Field: "collector.timeout", Message: "must not be negative"}
	}
	if c.RateLimit.ConnectsPerMinute < 1 || c.RateLimit.Burst < 1 {
		return &infraconfig.ValidationError{Field: "rate_limit", Message: "connects_per_minute and burst must be positive"}
	}
	if c.Profiling.PprofEnabled {
		if err := infraconfig.ValidatePort("profiling.pprof_port", c.Profiling.PprofPort); err != nil {
			return err
		}
	}
	return c.Logging.Validate()
}
