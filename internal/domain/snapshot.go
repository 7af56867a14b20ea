// Package domain holds the types shared by the collector, the alert
// evaluator and the presentation layer.
package domain

import "math"

// HealthSnapshot is one complete set of the four health values. It is built
// whole or not at all and is never stored.
type HealthSnapshot struct {
	UptimeSeconds       int64   `json:"uptime_seconds"`
	ActiveConnections   int64   `json:"active_connections"`
	QueryLatencySeconds float64 `json:"query_latency_seconds"`
	FailedConnections   int64   `json:"failed_connections"`
}

// latencyScale rounds latencies to milliseconds (three decimals).
const latencyScale = 1000

// RoundLatency rounds seconds to three decimal places.
func RoundLatency(seconds float64) float64 {
	return math.Round(seconds*latencyScale) / latencyScale
}
