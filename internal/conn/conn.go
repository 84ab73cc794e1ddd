// Package conn defines the connection boundary the load harness drives.
package conn

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrConnection indicates a failure to open or close a handle.
	ErrConnection = errors.New("connection error")

	// ErrOperation indicates a single read/write/query failure.
	ErrOperation = errors.New("operation error")
)

// OpResult captures the outcome of one operation executed through a Handle.
type OpResult struct {
	Duration time.Duration
	Bytes    int64
	Rows     int64
}

// Handle is one session against the external store. A Handle is owned by
// exactly one worker for its lifetime and is never shared, so
// implementations need no operation-level locking.
type Handle interface {
	// Open establishes the session. Must be called before any operation.
	Open(ctx context.Context) error

	// Close releases the session. Idempotent; always safe during cleanup.
	Close() error

	// Write stores one payload and reports bytes written.
	Write(ctx context.Context, payload []byte) (OpResult, error)

	// WriteBatch stores all payloads as a single batched statement.
	// Either the whole batch lands or none of it does.
	WriteBatch(ctx context.Context, payloads [][]byte) (OpResult, error)

	// Read fetches an existing record chosen by selector and reports
	// bytes read. Selector interpretation is implementation-defined;
	// it must map any non-negative value onto some existing record.
	Read(ctx context.Context, selector int64) (OpResult, error)

	// Query executes arbitrary SQL and reports the row count returned.
	Query(ctx context.Context, text string, args ...any) (OpResult, error)
}

// Factory produces a fresh, unopened Handle for one worker.
type Factory func() (Handle, error)
