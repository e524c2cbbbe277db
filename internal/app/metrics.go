package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/vignette/internal/notify"
)

// Metrics counts account changes and script runs.
type Metrics struct {
	mu    sync.RWMutex
	byOp  map[string]uint64
	total atomic.Uint64

	scriptCount   atomic.Uint64
	scriptTotalNs atomic.Int64
	scriptErrors  atomic.Uint64

	startTime time.Time
}

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		byOp:      make(map[string]uint64),
		startTime: time.Now(),
	}
}

// RecordChange counts one published account change.
func (m *Metrics) RecordChange(change notify.Change) {
	m.total.Add(1)
	m.mu.Lock()
	m.byOp[change.Topic]++
	m.mu.Unlock()
}

// RecordScript records one script run.
func (m *Metrics) RecordScript(duration time.Duration, err error) {
	m.scriptCount.Add(1)
	m.scriptTotalNs.Add(duration.Nanoseconds())
	if err != nil {
		m.scriptErrors.Add(1)
	}
}

// Snapshot returns a point-in-time copy of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	byOp := make(map[string]uint64, len(m.byOp))
	for k, v := range m.byOp {
		byOp[k] = v
	}
	start := m.startTime
	m.mu.RUnlock()

	count := m.scriptCount.Load()
	var avg time.Duration
	if count > 0 {
		avg = time.Duration(m.scriptTotalNs.Load() / int64(count))
	}

	return MetricsSnapshot{
		Uptime:       time.Since(start),
		Changes:      m.total.Load(),
		ChangesByOp:  byOp,
		Scripts:      count,
		ScriptErrors: m.scriptErrors.Load(),
		AvgScript:    avg,
	}
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	m.byOp = make(map[string]uint64)
	m.startTime = time.Now()
	m.mu.Unlock()

	m.total.Store(0)
	m.scriptCount.Store(0)
	m.scriptTotalNs.Store(0)
	m.scriptErrors.Store(0)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Changes      uint64
	ChangesByOp  map[string]uint64
	Scripts      uint64
	ScriptErrors uint64
	AvgScript    time.Duration
}
