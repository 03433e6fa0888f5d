package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 1, cfg.IDMin)
	assert.Equal(t, 9999, cfg.IDMax)
	assert.Equal(t, "disk", cfg.MediaBackend)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "SERVER_PORT: \"9000\"\nDB_DRIVER: postgres\nID_MAX: 500\nMEDIA_DIR: /var/media\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("RESET_DB", "true")

	cfg := Load()

	assert.Equal(t, "9100", cfg.ServerPort, "env overrides file")
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 500, cfg.IDMax)
	assert.Equal(t, "/var/media", cfg.MediaDir)
	assert.True(t, cfg.ResetDB)
}

func TestLoad_InvalidNumbersKeepDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ID_MAX", "lots")
	t.Setenv("RESET_DB", "maybe")

	cfg := Load()

	assert.Equal(t, 9999, cfg.IDMax)
	assert.False(t, cfg.ResetDB)
}

func TestLogger_Level(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"

	logger := cfg.Logger()

	require.NotNil(t, logger)
	assert.True(t, logger.Handler().Enabled(t.Context(), -4))
}
