package domain

// Severity controls how an alert is rendered.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// AlertKind identifies the rule that fired.
type AlertKind string

const (
	AlertHighConnectionCount AlertKind = "HighConnectionCount"
	AlertSlowQuery           AlertKind = "SlowQuery"
)

// Alert is a short, severity-tagged message about a snapshot.
type Alert struct {
	Kind     AlertKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}
