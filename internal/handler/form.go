package handler

import (
	"strings"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/config"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"
	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/monitor"
)

// connectForm is the operator input, from the HTML form, the query string
// or a JSON body. Empty fields fall back to the configured defaults.
type connectForm struct {
	Host     string `form:"host"     json:"host"`
	User     string `form:"user"     json:"user"`
	Password string `form:"password" json:"password"`
	Database string `form:"database" json:"database"`
	Engine   string `binding:"omitempty,oneof=mysql postgres" form:"engine" json:"engine"`
	Mode     string `binding:"omitempty,oneof=demo real"      form:"mode"   json:"mode"`
}

func (f connectForm) request(defaults config.DashboardConfig) monitor.Request {
	return monitor.Request{
		Mode: domain.Mode(orDefault(f.Mode, string(defaults.Mode))),
		Credentials: domain.Credentials{
			Host:     orDefault(f.Host, defaults.Host),
			User:     orDefault(f.User, defaults.User),
			Password: f.Password,
			Database: orDefault(f.Database, defaults.Database),
			Engine:   domain.Engine(orDefault(f.Engine, string(defaults.Engine))),
		},
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
