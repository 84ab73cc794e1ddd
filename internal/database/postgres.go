// Package database implements the conn.Handle boundary on PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/FairForge/loadforge/internal/conn"
)

// Params identifies one target database.
type Params struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	Security conn.Security
}

// Postgres is a single-session conn.Handle backed by lib/pq. One Postgres
// value belongs to one worker; the pool is pinned to a single connection
// so every operation rides the same session, the way a real client would.
type Postgres struct {
	params Params
	logger *zap.Logger
	db     *sql.DB
}

// NewPostgres creates an unopened handle.
func NewPostgres(params Params, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{params: params, logger: logger}
}

// Factory adapts NewPostgres to the conn.Factory shape so the engine can
// mint one fresh handle per worker.
func Factory(params Params, logger *zap.Logger) conn.Factory {
	return func() (conn.Handle, error) {
		return NewPostgres(params, logger), nil
	}
}

// dsn renders connection parameters for lib/pq, switching exhaustively on
// the security variant.
func (p *Postgres) dsn() (string, error) {
	base := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		p.params.Host, p.params.Port, p.params.User, p.params.Password, p.params.Database)

	sec := p.params.Security
	switch sec.Mode {
	case conn.SecurityNone, "":
		return base + " sslmode=disable", nil
	case conn.SecurityTLS:
		if sec.InsecureSkipVerify {
			return base + " sslmode=require", nil
		}
		if sec.RootCAPath != "" {
			return fmt.Sprintf("%s sslmode=verify-full sslrootcert=%s", base, sec.RootCAPath), nil
		}
		return base + " sslmode=verify-full", nil
	case conn.SecurityWallet:
		return fmt.Sprintf("%s sslmode=verify-ca sslrootcert=%s/ca.crt sslcert=%s/client.crt sslkey=%s/client.key",
			base, sec.WalletDir, sec.WalletDir, sec.WalletDir), nil
	default:
		return "", fmt.Errorf("unsupported security mode %q", sec.Mode)
	}
}

// Open establishes the session. Driver-level Initialize must have
// happened first.
func (p *Postgres) Open(ctx context.Context) error {
	if _, err := conn.ActiveSettings(); err != nil {
		return fmt.Errorf("%w: %v", conn.ErrConnection, err)
	}
	if p.db != nil {
		return nil
	}

	dsn, err := p.dsn()
	if err != nil {
		return fmt.Errorf("%w: %v", conn.ErrConnection, err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("%w: open database: %v", conn.ErrConnection, err)
	}

	// One session per handle.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: ping: %v", conn.ErrConnection, err)
	}

	p.db = db
	return nil
}

// Close releases the session. Idempotent.
func (p *Postgres) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	if err != nil {
		return fmt.Errorf("%w: close: %v", conn.ErrConnection, err)
	}
	return nil
}

// Setup creates the payload table the harness writes and reads.
func (p *Postgres) Setup(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("%w: handle not open", conn.ErrConnection)
	}
	queries := []string{
		`CREATE TABLE IF NOT EXISTS bench_payloads (
			id BIGSERIAL PRIMARY KEY,
			chunk TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bench_payloads_created ON bench_payloads(created_at)`,
	}
	for _, q := range queries {
		if _, err := p.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("%w: create table: %v", conn.ErrOperation, err)
		}
	}
	return nil
}

// Reset empties the payload table for a fresh run.
func (p *Postgres) Reset(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("%w: handle not open", conn.ErrConnection)
	}
	if _, err := p.db.ExecContext(ctx, `TRUNCATE bench_payloads RESTART IDENTITY`); err != nil {
		return fmt.Errorf("%w: truncate: %v", conn.ErrOperation, err)
	}
	return nil
}

// Write stores one payload row.
func (p *Postgres) Write(ctx context.Context, payload []byte) (conn.OpResult, error) {
	if p.db == nil {
		return conn.OpResult{}, fmt.Errorf("%w: handle not open", conn.ErrConnection)
	}

	start := time.Now()
	_, err := p.db.ExecContext(ctx, `INSERT INTO bench_payloads (chunk) VALUES ($1)`, string(payload))
	res := conn.OpResult{Duration: time.Since(start)}
	if err != nil {
		return res, fmt.Errorf("%w: insert: %v", conn.ErrOperation, err)
	}
	res.Bytes = int64(len(payload))
	res.Rows = 1
	return res, nil
}

// WriteBatch lands all payloads in one COPY inside a single transaction,
// so the batch is atomic: either every row commits or none does.
func (p *Postgres) WriteBatch(ctx context.Context, payloads [][]byte) (conn.OpResult, error) {
	if p.db == nil {
		return conn.OpResult{}, fmt.Errorf("%w: handle not open", conn.ErrConnection)
	}

	start := time.Now()
	res := conn.OpResult{}

	txn, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		res.Duration = time.Since(start)
		return res, fmt.Errorf("%w: begin: %v", conn.ErrOperation, err)
	}

	stmt, err := txn.PrepareContext(ctx, pq.CopyIn("bench_payloads", "chunk"))
	if err != nil {
		_ = txn.Rollback()
		res.Duration = time.Since(start)
		return res, fmt.Errorf("%w: copy prepare: %v", conn.ErrOperation, err)
	}

	var bytes int64
	for _, row := range payloads {
		if _, err := stmt.ExecContext(ctx, string(row)); err != nil {
			_ = stmt.Close()
			_ = txn.Rollback()
			res.Duration = time.Since(start)
			return res, fmt.Errorf("%w: copy row: %v", conn.ErrOperation, err)
		}
		bytes += int64(len(row))
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = txn.Rollback()
		res.Duration = time.Since(start)
		return res, fmt.Errorf("%w: copy flush: %v", conn.ErrOperation, err)
	}
	if err := stmt.Close(); err != nil {
		_ = txn.Rollback()
		res.Duration = time.Since(start)
		return res, fmt.Errorf("%w: copy close: %v", conn.ErrOperation, err)
	}
	if err := txn.Commit(); err != nil {
		res.Duration = time.Since(start)
		return res, fmt.Errorf("%w: commit: %v", conn.ErrOperation, err)
	}

	res.Duration = time.Since(start)
	res.Bytes = bytes
	res.Rows = int64(len(payloads))
	return res, nil
}

// Read fetches one existing payload row, with selector mapped uniformly
// onto the current row population.
func (p *Postgres) Read(ctx context.Context, selector int64) (conn.OpResult, error) {
	if p.db == nil {
		return conn.OpResult{}, fmt.Errorf("%w: handle not open", conn.ErrConnection)
	}
	if selector < 0 {
		selector = -selector
	}

	start := time.Now()
	var chunk string
	err := p.db.QueryRowContext(ctx,
		`SELECT chunk FROM bench_payloads
		 OFFSET ($1 % GREATEST((SELECT COUNT(*) FROM bench_payloads), 1))
		 LIMIT 1`, selector).Scan(&chunk)
	res := conn.OpResult{Duration: time.Since(start)}

	if err == sql.ErrNoRows {
		return res, fmt.Errorf("%w: no data found to read", conn.ErrOperation)
	}
	if err != nil {
		return res, fmt.Errorf("%w: select: %v", conn.ErrOperation, err)
	}
	res.Bytes = int64(len(chunk))
	res.Rows = 1
	return res, nil
}

// Query executes arbitrary SQL and counts the rows returned. The timing
// includes result iteration so large result sets are measured honestly.
func (p *Postgres) Query(ctx context.Context, text string, args ...any) (conn.OpResult, error) {
	if p.db == nil {
		return conn.OpResult{}, fmt.Errorf("%w: handle not open", conn.ErrConnection)
	}

	start := time.Now()
	rows, err := p.db.QueryContext(ctx, text, args...)
	if err != nil {
		return conn.OpResult{Duration: time.Since(start)}, fmt.Errorf("%w: query: %v", conn.ErrOperation, err)
	}
	defer func() { _ = rows.Close() }()

	var count int64
	for rows.Next() {
		count++
	}
	res := conn.OpResult{Duration: time.Since(start), Rows: count}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("%w: rows: %v", conn.ErrOperation, err)
	}
	return res, nil
}
