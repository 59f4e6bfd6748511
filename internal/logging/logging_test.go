package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CovidDash/internal/config"
)

func TestLevelFromString(t *testing.T) {
	cases := map[string]slog.Level{
		"error":   slog.LevelError,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"trace":   slog.LevelDebug,
	}
	for in, want := range cases {
		assert.Equal(t, want, levelFromString(in), in)
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "component", "api")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown component=api")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestOpenConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := Open(config.LoggingConfig{Level: "info"}, &buf)
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closeFn())
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "coviddash.log")
	var console bytes.Buffer

	logger, closeFn, err := Open(config.LoggingConfig{Level: "debug", Path: path}, &console)
	require.NoError(t, err)
	logger.Debug("to file")
	require.NoError(t, closeFn())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "msg=\"to file\"")
	assert.Empty(t, console.String())
}
