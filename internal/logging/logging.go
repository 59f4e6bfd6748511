package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"

	"CovidDash/internal/config"
)

// New creates a text slog.Logger writing to w with provided level string.
func New(level string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

// Open builds the application logger. With a log path configured the
// output goes to that file (appended); otherwise to console. The returned
// close func is never nil.
func Open(cfg config.LoggingConfig, console io.Writer) (*slog.Logger, func() error, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return New(cfg.Level, console), func() error { return nil }, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, errors.Annotatef(err, "create log dir %s", dir)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Annotatef(err, "open log file %s", path)
	}
	return New(cfg.Level, f), f.Close, nil
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
