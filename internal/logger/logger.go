// Package logger sets up the host's structured log. A full-screen TUI owns the
// terminal, so records go to a rotating file.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level string // debug, info, warn, error; default info
	Path  string // environment variables are expanded

	// Writer replaces the rotating file when set.
	Writer io.Writer
}

// Logger is a slog.Logger that also counts warnings for the status line.
type Logger struct {
	*slog.Logger
	file  *lumberjack.Logger
	warns *atomic.Int64
}

// ParseLevel maps a config string to a slog level. Unknown names yield info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func New(opt Options) (*Logger, error) {
	l := &Logger{warns: new(atomic.Int64)}

	w := opt.Writer
	if w == nil {
		path := os.ExpandEnv(opt.Path)
		if path == "" {
			return nil, errors.New("log path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "create log directory")
		}
		l.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
		w = l.file
	}

	inner := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(opt.Level)})
	l.Logger = slog.New(&countingHandler{inner: inner, warns: l.warns})
	return l, nil
}

// Warnings returns how many records at warn level or above were written.
func (l *Logger) Warnings() int64 { return l.warns.Load() }

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// countingHandler wraps another handler to count warnings.
type countingHandler struct {
	inner slog.Handler
	warns *atomic.Int64
}

func (h *countingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *countingHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.warns.Add(1)
	}
	return h.inner.Handle(ctx, r)
}

func (h *countingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &countingHandler{inner: h.inner.WithAttrs(attrs), warns: h.warns}
}

func (h *countingHandler) WithGroup(name string) slog.Handler {
	return &countingHandler{inner: h.inner.WithGroup(name), warns: h.warns}
}
