package loadtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/FairForge/loadforge/internal/conn"
)

// stubHandle is a deterministic in-memory conn.Handle for exercising the
// engine, bulk loader, and query benchmarker without a database.
type stubHandle struct {
	mu sync.Mutex

	openErr   error
	openCount int
	closes    int

	calls     int // write+read calls, for failure cadence
	failEvery int // fail every Nth write/read call, 0 = never

	duration  time.Duration // reported per operation
	readBytes int64
	onCall    func(n int) // invoked after each write/read, for test coordination

	batchSizes  []int
	batchFailAt int // 1-based batch index that fails, 0 = never

	queryCalls     int
	queryFailEvery int // fail every Nth query call, 0 = never
	queryRows      int64
}

func (s *stubHandle) Open(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openCount++
	return s.openErr
}

func (s *stubHandle) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *stubHandle) Write(_ context.Context, payload []byte) (conn.OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.onCall != nil {
		s.onCall(s.calls)
	}
	if s.failEvery > 0 && s.calls%s.failEvery == 0 {
		return conn.OpResult{Duration: s.duration}, fmt.Errorf("%w: simulated write failure", conn.ErrOperation)
	}
	return conn.OpResult{Duration: s.duration, Bytes: int64(len(payload)), Rows: 1}, nil
}

func (s *stubHandle) WriteBatch(_ context.Context, payloads [][]byte) (conn.OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchSizes = append(s.batchSizes, len(payloads))
	if s.batchFailAt > 0 && len(s.batchSizes) == s.batchFailAt {
		return conn.OpResult{Duration: s.duration}, fmt.Errorf("%w: simulated batch failure", conn.ErrOperation)
	}
	var bytes int64
	for _, p := range payloads {
		bytes += int64(len(p))
	}
	return conn.OpResult{Duration: s.duration, Bytes: bytes, Rows: int64(len(payloads))}, nil
}

func (s *stubHandle) Read(_ context.Context, _ int64) (conn.OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failEvery > 0 && s.calls%s.failEvery == 0 {
		return conn.OpResult{Duration: s.duration}, fmt.Errorf("%w: simulated read failure", conn.ErrOperation)
	}
	return conn.OpResult{Duration: s.duration, Bytes: s.readBytes, Rows: 1}, nil
}

func (s *stubHandle) Query(_ context.Context, _ string, _ ...any) (conn.OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCalls++
	if s.queryFailEvery > 0 && s.queryCalls%s.queryFailEvery == 0 {
		return conn.OpResult{Duration: s.duration}, fmt.Errorf("%w: simulated query failure", conn.ErrOperation)
	}
	return conn.OpResult{Duration: s.duration, Rows: s.queryRows}, nil
}

func stubFactory(h *stubHandle) conn.Factory {
	return func() (conn.Handle, error) { return h, nil }
}
