// Package alerting maps a health snapshot to threshold alerts.
package alerting

import "github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"

// Fixed thresholds. A value must exceed them to alert.
const (
	MaxActiveConnections   = 50
	MaxQueryLatencySeconds = 1.0
)

const (
	highConnectionsMessage = "Too many active connections!"
	slowQueryMessage       = "Query running slow!"
)

// Evaluate applies every rule to s and returns the alerts that fired, in rule
// order. The result is never nil.
func Evaluate(s domain.HealthSnapshot) []domain.Alert {
	alerts := make([]domain.Alert, 0, 2)

	if s.ActiveConnections > MaxActiveConnections {
		alerts = append(alerts, domain.Alert{
			Kind:     domain.AlertHighConnectionCount,
			Severity: domain.SeverityError,
			Message:  highConnectionsMessage,
		})
	}

	if s.QueryLatencySeconds > MaxQueryLatencySeconds {
		alerts = append(alerts, domain.Alert{
			Kind:     domain.AlertSlowQuery,
			Severity: domain.SeverityWarning,
			Message:  slowQueryMessage,
		})
	}

	return alerts
}
