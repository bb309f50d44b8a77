package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	require.Equal(t, DefaultHTTPAddr, cfg.Server.Addr)
	require.Equal(t, DefaultPGDatabase, cfg.Postgres.Database)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, DefaultFallbackReply, cfg.Assistant.FallbackReply)
	require.False(t, cfg.Translate.Enabled())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9090"

[postgres]
host = "db.internal"
password = "secret"

[translate]
project_id = "proj-1"
api_key = "key-1"

[assistant]
fallback_reply = "custom fallback"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "db.internal", cfg.Postgres.Host)
	require.True(t, cfg.Translate.Enabled())
	require.Equal(t, "custom fallback", cfg.Assistant.FallbackReply)

	// Untouched sections keep their defaults.
	require.Equal(t, DefaultPGPort, cfg.Postgres.Port)
	require.Equal(t, DefaultCallTimeoutSec, cfg.Assistant.TimeoutSeconds)
}

func TestPostgresDSN(t *testing.T) {
	t.Parallel()

	dsn := PostgresConfig{
		Host:     "localhost",
		Port:     5433,
		User:     "relay",
		Password: "pw",
		Database: "relay",
		SSLMode:  "disable",
	}.DSN()
	require.Equal(t, "postgres://relay:pw@localhost:5433/relay?sslmode=disable", dsn)
}
