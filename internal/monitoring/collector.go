package monitoring

import (
	"context"
	"sort"
	"time"
)

// Snapshot holds a point-in-time view of lookup health.
type Snapshot struct {
	StoreUp      bool              `json:"store_up"`
	StoreError   string            `json:"store_error,omitempty"`
	StoreLatency time.Duration     `json:"store_latency_ns"`
	Circuits     map[string]string `json:"circuits"`
	OpenCircuits []string          `json:"open_circuits"`
	CollectedAt  time.Time         `json:"collected_at"`
}

// Healthy reports whether the store is reachable and no circuit is open.
func (s *Snapshot) Healthy() bool {
	return s.StoreUp && len(s.OpenCircuits) == 0
}

// HealthSource is the part of the lookup service the collector inspects.
type HealthSource interface {
	Ping(ctx context.Context) error
	BreakerStates() map[string]string
}

// Collector gathers health snapshots.
type Collector struct {
	src     HealthSource
	timeout time.Duration
}

// NewCollector creates a collector that bounds each store ping by timeout.
func NewCollector(src HealthSource, timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Collector{src: src, timeout: timeout}
}

// Collect pings the store and reads the circuit states.
func (c *Collector) Collect(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		Circuits:     map[string]string{},
		OpenCircuits: []string{},
		CollectedAt:  time.Now().UTC(),
	}

	pctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	start := time.Now()
	if err := c.src.Ping(pctx); err != nil {
		snap.StoreError = err.Error()
	} else {
		snap.StoreUp = true
	}
	snap.StoreLatency = time.Since(start)

	for source, state := range c.src.BreakerStates() {
		snap.Circuits[source] = state
		if state == "open" {
			snap.OpenCircuits = append(snap.OpenCircuits, source)
		}
	}
	sort.Strings(snap.OpenCircuits)
	return snap
}
