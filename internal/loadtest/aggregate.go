package loadtest

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DurationStats describes the latency distribution of one subset of
// successful operations, in fractional milliseconds. A zero Count marks an
// empty subset: the remaining fields are zero-valued sentinels, not
// measured zeros, and Defined reports the difference.
type DurationStats struct {
	Count      int
	MeanMillis float64
	MinMillis  float64
	MaxMillis  float64
	P50Millis  float64
	P95Millis  float64
	P99Millis  float64
}

// Defined reports whether the subset contained any samples.
func (d DurationStats) Defined() bool { return d.Count > 0 }

// Summary is the reduced statistics bundle for one completed run.
// Duration statistics cover successful operations only; failures
// contribute to counts and the error tally.
type Summary struct {
	RunID   string
	Profile string
	Start   time.Time
	End     time.Time

	ElapsedSeconds float64

	TotalOperations int
	SuccessCount    int
	FailureCount    int
	SuccessRate     float64 // percent, 0 for an empty run

	// Per-kind successful operation counts.
	ReadCount  int
	WriteCount int

	// Bytes transferred by successful operations.
	TotalBytes int64
	ReadBytes  int64
	WriteBytes int64

	// Throughput over the run's wall-clock span, not the sum of
	// individual operation durations.
	BytesPerSecond      float64
	ReadBytesPerSecond  float64
	WriteBytesPerSecond float64

	Durations      DurationStats // all successful operations
	ReadDurations  DurationStats // successful reads
	WriteDurations DurationStats // successful writes

	Errors map[string]int // error text -> occurrences
}

// Summarize reduces a finished ResultSet into a Summary. It never fails on
// run content: a result set where every operation failed still summarizes.
// Only a malformed timestamp span is an error.
func Summarize(rs *ResultSet) (*Summary, error) {
	if rs == nil {
		return nil, fmt.Errorf("%w: nil result set", ErrAggregation)
	}
	end := rs.End()
	if end.IsZero() {
		return nil, fmt.Errorf("%w: result set was never finished", ErrAggregation)
	}
	if end.Before(rs.Start) {
		return nil, fmt.Errorf("%w: end %s precedes start %s", ErrAggregation, end, rs.Start)
	}

	metrics := rs.Metrics()
	s := &Summary{
		RunID:           rs.RunID,
		Profile:         rs.Profile.Name,
		Start:           rs.Start,
		End:             end,
		ElapsedSeconds:  end.Sub(rs.Start).Seconds(),
		TotalOperations: len(metrics),
		Errors:          make(map[string]int),
	}

	var all, reads, writes []float64
	for _, m := range metrics {
		if !m.Success {
			s.FailureCount++
			s.Errors[m.Err]++
			continue
		}
		s.SuccessCount++
		s.TotalBytes += m.Bytes

		d := m.DurationMillis()
		all = append(all, d)
		switch m.Kind {
		case OpRead:
			s.ReadCount++
			s.ReadBytes += m.Bytes
			reads = append(reads, d)
		case OpWrite:
			s.WriteCount++
			s.WriteBytes += m.Bytes
			writes = append(writes, d)
		}
	}

	if s.TotalOperations > 0 {
		s.SuccessRate = float64(s.SuccessCount) / float64(s.TotalOperations) * 100
	}

	if s.ElapsedSeconds > 0 {
		s.BytesPerSecond = float64(s.TotalBytes) / s.ElapsedSeconds
		s.ReadBytesPerSecond = float64(s.ReadBytes) / s.ElapsedSeconds
		s.WriteBytesPerSecond = float64(s.WriteBytes) / s.ElapsedSeconds
	}

	s.Durations = durationStats(all)
	s.ReadDurations = durationStats(reads)
	s.WriteDurations = durationStats(writes)

	return s, nil
}

// durationStats reduces a sample set in milliseconds. An empty set yields
// the zero-valued sentinel.
func durationStats(samples []float64) DurationStats {
	if len(samples) == 0 {
		return DurationStats{}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return DurationStats{
		Count:      len(sorted),
		MeanMillis: sum / float64(len(sorted)),
		MinMillis:  sorted[0],
		MaxMillis:  sorted[len(sorted)-1],
		P50Millis:  percentile(sorted, 50),
		P95Millis:  percentile(sorted, 95),
		P99Millis:  percentile(sorted, 99),
	}
}

// percentile applies the ceil-index rule over an ascending sample set:
// index = ceil(p/100 * n) - 1, clamped to [0, n-1].
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	idx := int(math.Ceil(p/100*float64(n))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}
