package loadtest

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/FairForge/loadforge/internal/conn"
)

// Observer receives every metric as it is recorded, e.g. for export to a
// metrics backend. Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(OperationMetric)
}

// Engine executes one profile at a time against a handle factory. Workers
// never communicate; the only shared mutable state is the ResultSet append
// target and the live counters.
type Engine struct {
	logger    *zap.Logger
	observers []Observer
	live      *LiveStats
}

// EngineOption configures optional engine behavior.
type EngineOption func(*Engine)

// WithObserver attaches an observer notified of every recorded metric.
func WithObserver(o Observer) EngineOption {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// NewEngine creates a load engine.
func NewEngine(logger *zap.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger: logger,
		live:   NewLiveStats(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Live returns the in-run counters for progress reporting. They reset at
// the start of every Run; the final numbers always come from Summarize.
func (e *Engine) Live() *LiveStats { return e.live }

// Run spawns exactly profile.Connections workers, each driving its own
// handle through its assigned share of profile.TotalOperations(). Per
// operation the worker records one OperationMetric; operation failures are
// data, never reasons to abort. Run returns once every worker has finished
// or observed cancellation. A cancelled run returns its partial ResultSet
// with a nil error.
func (e *Engine) Run(ctx context.Context, profile Profile, factory conn.Factory, mix Mix) (*ResultSet, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := mix.validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: handle factory is required", ErrInvalidConfiguration)
	}

	shares, err := Distribute(profile.TotalOperations(), profile.Connections)
	if err != nil {
		return nil, err
	}

	rs := NewResultSet(profile)
	e.live.Reset()

	e.logger.Info("starting load run",
		zap.String("run_id", rs.RunID),
		zap.String("profile", profile.Name),
		zap.String("mix", mix.String()),
		zap.Int("workers", profile.Connections),
		zap.Int("total_operations", profile.TotalOperations()))

	var wg sync.WaitGroup
	for i, share := range shares {
		wg.Add(1)
		go func(workerID, count int) {
			defer wg.Done()
			e.runWorker(ctx, workerID, count, profile, factory, mix, rs)
		}(i, share)
	}
	wg.Wait()
	rs.Finish()

	e.logger.Info("load run complete",
		zap.String("run_id", rs.RunID),
		zap.Int("operations", rs.Len()),
		zap.Duration("elapsed", rs.End().Sub(rs.Start)))

	return rs, nil
}

// runWorker drives one connection through its share of operations. The
// handle is released on every exit path.
func (e *Engine) runWorker(ctx context.Context, workerID, count int, profile Profile, factory conn.Factory, mix Mix, rs *ResultSet) {
	connID := fmt.Sprintf("conn_%d", workerID)
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	h, err := factory()
	if err == nil {
		err = h.Open(ctx)
	}
	if err != nil {
		// Synthetic zero-duration failure keeps totals consistent when a
		// worker never gets a usable connection.
		e.record(rs, failureMetric(mix.pick(rng), connID, 0, fmt.Errorf("%w: %v", conn.ErrConnection, err)))
		e.logger.Warn("worker connection failed", zap.String("conn_id", connID), zap.Error(err))
		return
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			e.logger.Warn("worker close failed", zap.String("conn_id", connID), zap.Error(cerr))
		}
	}()

	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			return
		}

		kind := mix.pick(rng)
		var m OperationMetric
		switch kind {
		case OpWrite:
			payload := randomPayload(rng, profile.DataSizeBytes)
			res, werr := h.Write(ctx, payload)
			if werr != nil {
				m = failureMetric(OpWrite, connID, res.Duration, werr)
			} else {
				m = successMetric(OpWrite, connID, res.Duration, res.Bytes)
			}
		case OpRead:
			res, rerr := h.Read(ctx, rng.Int63())
			if rerr != nil {
				m = failureMetric(OpRead, connID, res.Duration, rerr)
			} else {
				m = successMetric(OpRead, connID, res.Duration, res.Bytes)
			}
		}
		e.record(rs, m)

		// Think time paces the next operation, so the final iteration
		// skips it. Cancellation cuts the pause short.
		if profile.ThinkTime > 0 && i < count-1 {
			timer := time.NewTimer(profile.ThinkTime)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}
}

func (e *Engine) record(rs *ResultSet, m OperationMetric) {
	rs.Append(m)
	e.live.Record(m)
	for _, o := range e.observers {
		o.ObserveOperation(m)
	}
}
