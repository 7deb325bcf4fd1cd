package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "", cfg.Storage.SQLitePath)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_File(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
log_level: debug

server:
  listen_addr: "127.0.0.1:9191"
  shutdown_timeout: 3s

storage:
  sqlite_path: "/var/lib/providermap/audit.db"

metrics:
  enabled: false
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9191", cfg.Server.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/var/lib/providermap/audit.db", cfg.Storage.SQLitePath)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server:\n  listen_addr: \":9000\"\n"), 0644))

	t.Setenv("PROVIDERMAP_SERVER_LISTEN_ADDR", ":9999")
	t.Setenv("PROVIDERMAP_STORAGE_SQLITE_PATH", "audit.db")

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.ListenAddr)
	assert.Equal(t, "audit.db", cfg.Storage.SQLitePath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Server.ListenAddr = " "
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.ShutdownTimeout = 0
	assert.Error(t, cfg.Validate())
}
