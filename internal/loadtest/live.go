package loadtest

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// LiveStats tracks in-run counters for progress reporting while workers
// are still executing. Latencies stream into an HDR histogram (1us to
// 10min, 3 significant figures) so a snapshot is cheap at any point of the
// run. The authoritative numbers are still the batch reduction over the
// final ResultSet.
type LiveStats struct {
	operations atomic.Int64
	successes  atomic.Int64
	failures   atomic.Int64
	bytes      atomic.Int64

	mu      sync.Mutex
	hist    *hdrhistogram.Histogram
	started time.Time
}

// LiveSnapshot is a point-in-time view of an active run.
type LiveSnapshot struct {
	Operations int64
	Successes  int64
	Failures   int64
	Bytes      int64
	OpsPerSec  float64
	P50Millis  float64
	P95Millis  float64
	P99Millis  float64
	Elapsed    time.Duration
}

// NewLiveStats creates an empty live tracker.
func NewLiveStats() *LiveStats {
	return &LiveStats{
		hist:    hdrhistogram.New(1, int64(10*time.Minute/time.Microsecond), 3),
		started: time.Now(),
	}
}

// Reset clears all counters at the start of a run.
func (l *LiveStats) Reset() {
	l.operations.Store(0)
	l.successes.Store(0)
	l.failures.Store(0)
	l.bytes.Store(0)

	l.mu.Lock()
	l.hist.Reset()
	l.started = time.Now()
	l.mu.Unlock()
}

// Record folds one metric into the live counters.
func (l *LiveStats) Record(m OperationMetric) {
	l.operations.Add(1)
	if m.Success {
		l.successes.Add(1)
		l.bytes.Add(m.Bytes)
	} else {
		l.failures.Add(1)
	}

	us := m.Duration.Microseconds()
	if us < 1 {
		us = 1
	}
	l.mu.Lock()
	_ = l.hist.RecordValue(us) // out-of-range values are dropped, not fatal
	l.mu.Unlock()
}

// Snapshot returns the current counters and streaming percentiles.
func (l *LiveStats) Snapshot() LiveSnapshot {
	s := LiveSnapshot{
		Operations: l.operations.Load(),
		Successes:  l.successes.Load(),
		Failures:   l.failures.Load(),
		Bytes:      l.bytes.Load(),
	}

	l.mu.Lock()
	s.Elapsed = time.Since(l.started)
	s.P50Millis = float64(l.hist.ValueAtQuantile(50)) / 1000.0
	s.P95Millis = float64(l.hist.ValueAtQuantile(95)) / 1000.0
	s.P99Millis = float64(l.hist.ValueAtQuantile(99)) / 1000.0
	l.mu.Unlock()

	if sec := s.Elapsed.Seconds(); sec > 0 {
		s.OpsPerSec = float64(s.Operations) / sec
	}
	return s
}
