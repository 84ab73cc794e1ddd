package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FairForge/loadforge/internal/conn"
)

func TestPostgres_DSN(t *testing.T) {
	base := Params{Host: "db.internal", Port: 5432, Database: "bench", User: "loader", Password: "secret"}

	t.Run("no security", func(t *testing.T) {
		p := NewPostgres(base, zap.NewNop())
		dsn, err := p.dsn()
		require.NoError(t, err)
		assert.Equal(t, "host=db.internal port=5432 user=loader password=secret dbname=bench sslmode=disable", dsn)
	})

	t.Run("tls with pinned ca", func(t *testing.T) {
		params := base
		params.Security = conn.Security{Mode: conn.SecurityTLS, RootCAPath: "/etc/certs/ca.pem"}
		dsn, err := NewPostgres(params, zap.NewNop()).dsn()
		require.NoError(t, err)
		assert.Contains(t, dsn, "sslmode=verify-full")
		assert.Contains(t, dsn, "sslrootcert=/etc/certs/ca.pem")
	})

	t.Run("tls skip-verify downgrades to require", func(t *testing.T) {
		params := base
		params.Security = conn.Security{Mode: conn.SecurityTLS, InsecureSkipVerify: true}
		dsn, err := NewPostgres(params, zap.NewNop()).dsn()
		require.NoError(t, err)
		assert.Contains(t, dsn, "sslmode=require")
	})

	t.Run("wallet maps to client certs", func(t *testing.T) {
		params := base
		params.Security = conn.Security{Mode: conn.SecurityWallet, WalletDir: "/etc/wallet"}
		dsn, err := NewPostgres(params, zap.NewNop()).dsn()
		require.NoError(t, err)
		assert.Contains(t, dsn, "sslmode=verify-ca")
		assert.Contains(t, dsn, "sslcert=/etc/wallet/client.crt")
		assert.Contains(t, dsn, "sslkey=/etc/wallet/client.key")
	})

	t.Run("unknown mode rejected", func(t *testing.T) {
		params := base
		params.Security = conn.Security{Mode: "spnego"}
		_, err := NewPostgres(params, zap.NewNop()).dsn()
		assert.Error(t, err)
	})
}

func TestPostgres_OperationsRequireOpen(t *testing.T) {
	p := NewPostgres(GetTestParams(), zap.NewNop())
	ctx := context.Background()

	_, err := p.Write(ctx, []byte("x"))
	assert.ErrorIs(t, err, conn.ErrConnection)

	_, err = p.Read(ctx, 1)
	assert.ErrorIs(t, err, conn.ErrConnection)

	_, err = p.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, conn.ErrConnection)

	assert.NoError(t, p.Close(), "close is idempotent even when never opened")
}

func TestPostgres_Integration(t *testing.T) {
	// Needs a reachable Postgres (TEST_DB_* env).
	if testing.Short() {
		t.Skip("Skipping database tests in short mode")
	}

	require.NoError(t, conn.Initialize(conn.Settings{}))

	p := NewPostgres(GetTestParams(), zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.Open(ctx); err != nil {
		t.Skipf("no test database available: %v", err)
	}
	defer func() { _ = p.Close() }()

	require.NoError(t, p.Setup(ctx))
	require.NoError(t, p.Reset(ctx))

	wr, err := p.Write(ctx, []byte("hello-payload"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("hello-payload")), wr.Bytes)
	assert.Greater(t, wr.Duration, time.Duration(0))

	br, err := p.WriteBatch(ctx, [][]byte{[]byte("a"), []byte("bb"), []byte("ccc")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), br.Rows)
	assert.Equal(t, int64(6), br.Bytes)

	rr, err := p.Read(ctx, 12345)
	require.NoError(t, err)
	assert.Greater(t, rr.Bytes, int64(0))

	qr, err := p.Query(ctx, "SELECT id FROM bench_payloads")
	require.NoError(t, err)
	assert.Equal(t, int64(4), qr.Rows)
}
