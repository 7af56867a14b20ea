package main

import (
	"context"
	"fmt"
	"os"

	infraconfig "github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/config"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/logger"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/profiling"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/api"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/collector"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/config"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/handler"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/middleware"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/monitor"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	// Start profilers (if enabled)
	profiling.StartPprofServer(cfg.Profiling, log)
	profiler, err := profiling.StartPyroscope(cfg.Profiling, cfg.Service.Name, cfg.Service.Version, log)
	if err != nil {
		log.Warn("Pyroscope profiler not started", logger.Error(err))
	}
	defer func() { _ = profiler.Stop() }()

	return runServer(cfg, log)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := infraconfig.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// newRegistry returns a registry carrying the Go runtime and process collectors.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// runServer creates all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger) int {
	reg := newRegistry()

	factory := collector.NewFactory(
		collector.WithTimeout(cfg.Collector.Timeout),
		collector.WithPostgresSSLMode(cfg.Collector.PostgresSSLMode),
	)
	service := monitor.NewService(factory, telemetry.NewMetrics(reg))
	dashboard := handler.NewDashboardHandler(service, cfg.Dashboard, log)

	limiter := middleware.NewConnectLimiter(cfg.RateLimit.ConnectsPerMinute, cfg.RateLimit.Burst)
	defer limiter.Stop()

	server, err := api.NewServer(dashboard, limiter, cfg, log, reg)
	if err != nil {
		log.Error("Failed to create server", logger.Error(err))
		return 1
	}

	log.Info("Database health dashboard starting",
		logger.Int("port", cfg.Service.Port),
		logger.String("default_mode", string(cfg.Dashboard.Mode)),
		logger.Duration("collect_timeout", cfg.Collector.Timeout),
	)

	if runErr := server.Run(context.Background()); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return 1
	}

	log.Info("Database health dashboard exited cleanly")
	return 0
}
