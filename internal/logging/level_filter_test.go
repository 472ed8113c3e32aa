package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFilter_DropsBelowMinimum(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(NewLevelFilter(handler, slog.LevelWarn))
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestLevelFilter_Enabled(t *testing.T) {
	handler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})
	filter := NewLevelFilter(handler, slog.LevelWarn)

	ctx := context.Background()
	assert.False(t, filter.Enabled(ctx, slog.LevelDebug))
	assert.False(t, filter.Enabled(ctx, slog.LevelInfo))
	assert.True(t, filter.Enabled(ctx, slog.LevelWarn))
	assert.True(t, filter.Enabled(ctx, slog.LevelError))
}

func TestLevelFilter_WithAttrsAndGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	filter := NewLevelFilter(handler, slog.LevelWarn)

	logger := slog.New(filter.WithAttrs([]slog.Attr{slog.String("component", "gateway")}))
	logger.Warn("collision")
	assert.Contains(t, buf.String(), "component=gateway")

	buf.Reset()
	logger = slog.New(filter.WithGroup("request"))
	logger.Error("failed", "id", "123")
	assert.Contains(t, buf.String(), "request.id=123")
}
