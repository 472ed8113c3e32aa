package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbxpress/internal/config"
)

func TestNewLogger_ConsoleOnly(t *testing.T) {
	cfg := config.DefaultLoggingConfig()
	cfg.ApplyDefaults()

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_NothingEnabled(t *testing.T) {
	cfg := config.DefaultLoggingConfig()
	cfg.Console.Enabled = false
	cfg.ApplyDefaults()

	// No outputs still yields a usable (discarding) logger.
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	logger.Info("goes nowhere")
}

func TestNewLogger_FileOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := config.DefaultLoggingConfig()
	cfg.Console.Enabled = false
	cfg.File.Enabled = true
	cfg.Dir = dir
	cfg.ApplyDefaults()

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	logger.Info("hello file")
	logger.Error("hello errors")
	require.NoError(t, Shutdown())

	main, err := os.ReadFile(filepath.Join(dir, "pcbxpress.log"))
	require.NoError(t, err)
	assert.Contains(t, string(main), "hello file")
	assert.Contains(t, string(main), "hello errors")

	// Only warnings and errors reach the error file.
	errs, err := os.ReadFile(filepath.Join(dir, "errors.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(errs), "hello file")
	assert.Contains(t, string(errs), "hello errors")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}
