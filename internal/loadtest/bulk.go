package loadtest

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/FairForge/loadforge/internal/conn"
)

// DefaultBatchSize is the standard rows-per-batch policy for bulk
// population.
const DefaultBatchSize = 1000

// BulkStats reports the outcome of one bulk population call.
type BulkStats struct {
	RowsInserted  int
	Batches       int
	BytesWritten  int64
	Elapsed       time.Duration
	RowsPerSecond float64
}

// BulkLoader populates a target table with synthetic rows ahead of query
// benchmarking. Unlike the load engine, a batch failure here aborts the
// whole call: a partially populated table would corrupt every benchmark
// that runs against it afterwards.
type BulkLoader struct {
	logger    *zap.Logger
	batchSize int
}

// NewBulkLoader creates a loader. batchSize <= 0 selects DefaultBatchSize.
func NewBulkLoader(logger *zap.Logger, batchSize int) *BulkLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BulkLoader{logger: logger, batchSize: batchSize}
}

// Load inserts rowCount synthetic rows through h in
// ceil(rowCount/batchSize) batched writes.
func (b *BulkLoader) Load(ctx context.Context, h conn.Handle, rowCount int) (BulkStats, error) {
	if rowCount <= 0 {
		return BulkStats{}, fmt.Errorf("%w: row count must be positive, got %d", ErrInvalidConfiguration, rowCount)
	}
	if h == nil {
		return BulkStats{}, fmt.Errorf("%w: handle is required", ErrInvalidConfiguration)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	batches := (rowCount + b.batchSize - 1) / b.batchSize

	b.logger.Info("starting bulk population",
		zap.Int("rows", rowCount),
		zap.Int("batch_size", b.batchSize),
		zap.Int("batches", batches))

	start := time.Now()
	stats := BulkStats{Batches: batches}

	for batch := 0; batch < batches; batch++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("bulk load cancelled after %d rows: %w", stats.RowsInserted, err)
		}

		first := batch * b.batchSize
		last := first + b.batchSize
		if last > rowCount {
			last = rowCount
		}

		rows := make([][]byte, 0, last-first)
		for id := first; id < last; id++ {
			rows = append(rows, syntheticRow(rng, id))
		}

		res, err := h.WriteBatch(ctx, rows)
		if err != nil {
			return stats, fmt.Errorf("bulk load batch %d/%d failed: %w", batch+1, batches, err)
		}
		stats.RowsInserted += len(rows)
		stats.BytesWritten += res.Bytes

		if (batch+1)%10 == 0 || batch == batches-1 {
			elapsed := time.Since(start).Seconds()
			rate := 0.0
			if elapsed > 0 {
				rate = float64(stats.RowsInserted) / elapsed
			}
			b.logger.Info("bulk population progress",
				zap.Int("rows_inserted", stats.RowsInserted),
				zap.Int("rows_total", rowCount),
				zap.Float64("rows_per_sec", rate))
		}
	}

	stats.Elapsed = time.Since(start)
	if sec := stats.Elapsed.Seconds(); sec > 0 {
		stats.RowsPerSecond = float64(stats.RowsInserted) / sec
	}

	b.logger.Info("bulk population complete",
		zap.Int("rows_inserted", stats.RowsInserted),
		zap.Duration("elapsed", stats.Elapsed),
		zap.Float64("rows_per_sec", stats.RowsPerSecond))

	return stats, nil
}
