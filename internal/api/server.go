// Package api assembles the HTTP server.
package api

import (
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	infragin "github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/gin"
	infralogger "github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/logger"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/config"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/handler"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultReadTimeout = 10 * time.Second
	defaultIdleTimeout = 60 * time.Second
	// writeTimeoutSlack leaves room to render after a slow collection.
	writeTimeoutSlack = 10 * time.Second
	// defaultWriteTimeout applies when collection has no timeout of its own.
	defaultWriteTimeout = 2 * time.Minute
)

// NewServer creates the HTTP server with the dashboard routes, health checks
// and a /metrics endpoint backed by reg.
func NewServer(
	dashboard *handler.DashboardHandler,
	limiter *middleware.ConnectLimiter,
	cfg *config.Config,
	log infralogger.Logger,
	reg *prometheus.Registry,
) (*infragin.Server, error) {
	tmpl, err := handler.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	writeTimeout := defaultWriteTimeout
	if cfg.Collector.Timeout > 0 {
		writeTimeout = cfg.Collector.Timeout + writeTimeoutSlack
	}

	server := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithCORSOrigins(cfg.Service.CORSOrigins).
		WithTimeouts(defaultReadTimeout, writeTimeout, defaultIdleTimeout).
		WithMetrics(reg).
		WithHealthCheck("templates", templatesCheck(tmpl)).
		WithRoutes(func(router *gin.Engine) {
			router.SetHTMLTemplate(tmpl)
			SetupRoutes(router, dashboard, limiter)
		}).
		Build()

	return server, nil
}

// templatesCheck reports whether the dashboard page template is loaded.
func templatesCheck(tmpl *template.Template) infragin.HealthChecker {
	return func() infragin.CheckResult {
		if tmpl.Lookup(handler.DashboardTemplate) == nil {
			return infragin.CheckResult{
				Status:  infragin.HealthStatusUnhealthy,
				Message: handler.DashboardTemplate + " not loaded",
			}
		}
		return infragin.CheckResult{Status: infragin.HealthStatusHealthy}
	}
}
