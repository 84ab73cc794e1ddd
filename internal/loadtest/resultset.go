package loadtest

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ResultSet is the ordered collection of metrics produced by one run,
// together with the profile that shaped it and the run's wall-clock span.
// It is append-only while the run is active; Append is safe for concurrent
// use by all workers. After Finish it is read-only input to Summarize.
type ResultSet struct {
	RunID   string
	Profile Profile
	Start   time.Time

	mu      sync.Mutex
	metrics []OperationMetric
	end     time.Time
}

// NewResultSet starts an empty result set stamped with the current time.
func NewResultSet(profile Profile) *ResultSet {
	return &ResultSet{
		RunID:   uuid.NewString(),
		Profile: profile,
		Start:   time.Now(),
		metrics: make([]OperationMetric, 0, profile.TotalOperations()),
	}
}

// Append records one completed operation. Ordering across workers is
// completion order, not assignment order.
func (rs *ResultSet) Append(m OperationMetric) {
	rs.mu.Lock()
	rs.metrics = append(rs.metrics, m)
	rs.mu.Unlock()
}

// Finish stamps the end of the run. Later calls move the stamp forward,
// which keeps a cancelled run's partial results aggregatable.
func (rs *ResultSet) Finish() {
	rs.mu.Lock()
	rs.end = time.Now()
	rs.mu.Unlock()
}

// End returns the finish timestamp, zero if the run has not finished.
func (rs *ResultSet) End() time.Time {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.end
}

// Len returns the number of metrics collected so far.
func (rs *ResultSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.metrics)
}

// Metrics returns a copy of the collected metrics for read-only reduction.
func (rs *ResultSet) Metrics() []OperationMetric {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]OperationMetric, len(rs.metrics))
	copy(out, rs.metrics)
	return out
}
