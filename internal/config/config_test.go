package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Deep)
	assert.Empty(t, cfg.OptionsFile)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\noptions_file: copy.yaml\ndeep: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "copy.yaml", cfg.OptionsFile)
	assert.False(t, cfg.Deep)

	t.Setenv("RECORD_COPIER_LOG_LEVEL", "error")
	t.Setenv("RECORD_COPIER_DEEP", "true")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.Deep)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RECORD_COPIER_OPTIONS=from-dotenv.yaml\n"), 0o644))
	t.Setenv("RECORD_COPIER_OPTIONS", "")
	require.NoError(t, os.Unsetenv("RECORD_COPIER_OPTIONS"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.yaml", cfg.OptionsFile)
}

func TestLoad_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	t.Setenv("RECORD_COPIER_DEEP", "sometimes")
	_, err = Load("")
	require.ErrorContains(t, err, "RECORD_COPIER_DEEP")
}

func TestConfig_Level(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).Level())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warning"}).Level())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).Level())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "chatty"}).Level())
}
