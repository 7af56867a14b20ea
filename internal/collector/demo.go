package collector

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/internal/domain"
)

// Inclusive ranges of demo values.
const (
	DemoUptimeMin      = 1000
	DemoUptimeMax      = 50000
	DemoConnectionsMin = 1
	DemoConnectionsMax = 100
	DemoLatencyMin     = 0.1
	DemoLatencyMax     = 2.0
	DemoFailedMin      = 0
	DemoFailedMax      = 10
)

// Demo synthesizes uniformly random snapshots. It never fails and is safe
// for concurrent use.
type Demo struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDemo returns a Demo drawing from src, or from a randomly seeded PCG
// when src is nil.
func NewDemo(src rand.Source) *Demo {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Demo{rng: rand.New(src)}
}

// Collect returns a fresh random snapshot.
func (d *Demo) Collect(context.Context) (domain.HealthSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return domain.HealthSnapshot{
		UptimeSeconds:       d.intBetween(DemoUptimeMin, DemoUptimeMax),
		ActiveConnections:   d.intBetween(DemoConnectionsMin, DemoConnectionsMax),
		QueryLatencySeconds: domain.RoundLatency(DemoLatencyMin + d.rng.Float64()*(DemoLatencyMax-DemoLatencyMin)),
		FailedConnections:   d.intBetween(DemoFailedMin, DemoFailedMax),
	}, nil
}

func (d *Demo) intBetween(lo, hi int64) int64 {
	return lo + d.rng.Int64N(hi-lo+1)
}
