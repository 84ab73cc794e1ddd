package loadtest

import "time"

// OperationKind distinguishes reads from writes in collected telemetry.
type OperationKind string

const (
	OpRead  OperationKind = "read"
	OpWrite OperationKind = "write"
)

// OperationMetric records the outcome of exactly one operation. A worker
// creates it immediately after the operation completes and it is never
// mutated afterwards.
type OperationMetric struct {
	Kind      OperationKind
	ConnID    string        // worker/connection that produced it
	Duration  time.Duration // wall-clock time of the operation
	Success   bool
	Err       string    // set only when Success is false
	Bytes     int64     // 0 on failure
	Timestamp time.Time // creation time, for ordering and debugging only
}

// DurationMillis is the operation duration in fractional milliseconds,
// the unit all summary statistics are reported in.
func (m OperationMetric) DurationMillis() float64 {
	return float64(m.Duration) / float64(time.Millisecond)
}

func successMetric(kind OperationKind, connID string, d time.Duration, bytes int64) OperationMetric {
	return OperationMetric{
		Kind:      kind,
		ConnID:    connID,
		Duration:  d,
		Success:   true,
		Bytes:     bytes,
		Timestamp: time.Now(),
	}
}

func failureMetric(kind OperationKind, connID string, d time.Duration, err error) OperationMetric {
	return OperationMetric{
		Kind:      kind,
		ConnID:    connID,
		Duration:  d,
		Success:   false,
		Err:       err.Error(),
		Timestamp: time.Now(),
	}
}
