package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FairForge/loadforge/internal/conn"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "low", cfg.Run.Profile)
	assert.Equal(t, 0.5, cfg.Run.ReadRatio)
	assert.Equal(t, conn.SecurityNone, cfg.Security.Mode)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loadforge.yaml")
	content := `
database:
  host: db.prod.internal
  port: 6432
  name: bench
  user: loader
security:
  mode: tls
  root_ca_path: /etc/certs/ca.pem
run:
  profile: custom
  connections: 8
  ops_per_second: 100
  duration_seconds: 30
  read_ratio: 0.7
  bulk_rows: 5000
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.prod.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, conn.SecurityTLS, cfg.Security.Mode)
	assert.Equal(t, "/etc/certs/ca.pem", cfg.Security.RootCAPath)
	assert.Equal(t, "custom", cfg.Run.Profile)
	assert.Equal(t, 8, cfg.Run.Connections)
	assert.Equal(t, 0.7, cfg.Run.ReadRatio)
	assert.Equal(t, 5000, cfg.Run.BulkRows)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOADFORGE_DB_HOST", "env-host")
	t.Setenv("LOADFORGE_DB_PORT", "9999")
	t.Setenv("LOADFORGE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 9999, cfg.Database.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_InvalidSecurityRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("security:\n  mode: wallet\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/loadforge.yaml")
	assert.Error(t, err)
}
