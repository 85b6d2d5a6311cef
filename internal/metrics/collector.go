// Package metrics holds the engine's operational counters. The collector is
// a small set of lock-free atomics shared by reference between the logger
// facade (which counts enqueue failures and queue growth) and the dispatcher
// (which counts processed records and handler errors). There is no global
// singleton: every logger owns its own collector, so multiple independent
// loggers can coexist in one process.
package metrics

import (
	"sync"
	"sync/atomic"
)

// Collector tracks throughput, drops and queue depth.
type Collector struct {
	logsProcessed atomic.Uint64
	errors        atomic.Uint64
	queueSize     atomic.Int64

	errorsBySource sync.Map // map[string]*atomic.Uint64
}

// NewCollector creates a collector with all counters at zero.
func NewCollector() *Collector {
	return &Collector{}
}

// Snapshot is a point-in-time reading of the counters.
type Snapshot struct {
	LogsProcessed uint64 `json:"logs_processed"`
	Errors        uint64 `json:"errors"`
	QueueSize     int64  `json:"queue_size"`
}

// Snapshot returns the current counter values. Reads are atomic per counter
// but not mutually consistent; that is fine for monitoring.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		LogsProcessed: c.logsProcessed.Load(),
		Errors:        c.errors.Load(),
		QueueSize:     c.queueSize.Load(),
	}
}

// TrackProcessed increments logs_processed. Called once per record that
// clears the dispatcher pipeline.
func (c *Collector) TrackProcessed() {
	c.logsProcessed.Add(1)
}

// TrackError increments the error counter and the per-source breakdown.
// Source names the failing stage ("enqueue", "write", "format", ...).
func (c *Collector) TrackError(source string) {
	c.errors.Add(1)
	val, _ := c.errorsBySource.LoadOrStore(source, &atomic.Uint64{})
	val.(*atomic.Uint64).Add(1)
}

// TrackEnqueued increments the queue depth gauge.
func (c *Collector) TrackEnqueued() {
	c.queueSize.Add(1)
}

// TrackDequeued decrements the queue depth gauge.
func (c *Collector) TrackDequeued() {
	c.queueSize.Add(-1)
}

// ErrorsBySource returns a copy of the per-source error counts.
func (c *Collector) ErrorsBySource() map[string]uint64 {
	out := make(map[string]uint64)
	c.errorsBySource.Range(func(key, value interface{}) bool {
		count := value.(*atomic.Uint64).Load()
		if count > 0 {
			out[key.(string)] = count
		}
		return true
	})
	return out
}
