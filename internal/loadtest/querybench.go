package loadtest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/FairForge/loadforge/internal/conn"
)

// DefaultQueryIterations is used when the caller does not ask for a
// specific iteration count.
const DefaultQueryIterations = 10

// QueryStats reports the timing distribution of one repeated query.
// Timings, row counts, and the derived aggregates cover successful
// iterations only.
type QueryStats struct {
	Query                string
	Iterations           int
	SuccessfulIterations int
	FailedIterations     int

	TimesMillis []float64 // one entry per successful iteration

	MeanMillis  float64
	MinMillis   float64
	MaxMillis   float64
	TotalMillis float64
	AvgRows     float64
}

// QueryBenchmarker executes one fixed query/parameter pair repeatedly and
// reduces the timings. Iteration failures are recorded and the loop
// continues, like the load engine and unlike the bulk loader.
type QueryBenchmarker struct {
	logger *zap.Logger
}

// NewQueryBenchmarker creates a benchmarker.
func NewQueryBenchmarker(logger *zap.Logger) *QueryBenchmarker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryBenchmarker{logger: logger}
}

// Run executes the query iterations times through h. iterations == 0
// selects DefaultQueryIterations; a negative count is rejected.
func (q *QueryBenchmarker) Run(ctx context.Context, h conn.Handle, query string, params []any, iterations int) (QueryStats, error) {
	if iterations < 0 {
		return QueryStats{}, fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidConfiguration, iterations)
	}
	if iterations == 0 {
		iterations = DefaultQueryIterations
	}
	if h == nil {
		return QueryStats{}, fmt.Errorf("%w: handle is required", ErrInvalidConfiguration)
	}

	q.logger.Info("starting query benchmark",
		zap.String("query", query),
		zap.Int("iterations", iterations))

	stats := QueryStats{Query: query, Iterations: iterations}
	var totalRows int64

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("query benchmark cancelled at iteration %d: %w", i+1, err)
		}

		res, err := h.Query(ctx, query, params...)
		if err != nil {
			stats.FailedIterations++
			q.logger.Warn("query iteration failed", zap.Int("iteration", i+1), zap.Error(err))
			continue
		}

		stats.SuccessfulIterations++
		totalRows += res.Rows
		ms := float64(res.Duration.Microseconds()) / 1000.0
		stats.TimesMillis = append(stats.TimesMillis, ms)
		stats.TotalMillis += ms
		if stats.SuccessfulIterations == 1 || ms < stats.MinMillis {
			stats.MinMillis = ms
		}
		if ms > stats.MaxMillis {
			stats.MaxMillis = ms
		}
	}

	if stats.SuccessfulIterations > 0 {
		stats.MeanMillis = stats.TotalMillis / float64(stats.SuccessfulIterations)
		stats.AvgRows = float64(totalRows) / float64(stats.SuccessfulIterations)
	}

	q.logger.Info("query benchmark complete",
		zap.Int("successes", stats.SuccessfulIterations),
		zap.Int("failures", stats.FailedIterations),
		zap.Float64("mean_ms", stats.MeanMillis))

	return stats, nil
}
