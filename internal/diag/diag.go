// Package diag provides the engine's optional trace logging, built on
// log/slog the same way an httplog-style wrapper would for its
// own request tracing: a thin constructor plus a couple of named helpers,
// not a custom logging abstraction.
package diag

import (
	"context"
	"io"
	"log/slog"
)

// Logger traces synthesis-engine activity: namespace entry, enforced
// operators, call depth. Nil is a valid Logger (every method on it is a
// no-op), so callers that don't want tracing can simply leave it unset.
type Logger struct {
	slog *slog.Logger
}

// New builds a Logger writing structured trace records to w at the given
// level (typically slog.LevelDebug for synthesis tracing).
func New(w io.Writer, level slog.Level) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{slog: slog.New(h)}
}

// Discard returns a Logger that drops everything, for callers that want a
// non-nil Logger without conditionally checking for nil everywhere.
func Discard() *Logger {
	return New(io.Discard, slog.LevelError)
}

func (l *Logger) Namespace(ctx context.Context, tag string) {
	if l == nil {
		return
	}
	l.slog.DebugContext(ctx, "enter namespace", "tag", tag)
}

func (l *Logger) Constraint(ctx context.Context, op string, tag string) {
	if l == nil {
		return
	}
	l.slog.DebugContext(ctx, "enforce", "op", op, "namespace", tag)
}

func (l *Logger) Call(ctx context.Context, fn string, depth int) {
	if l == nil {
		return
	}
	l.slog.DebugContext(ctx, "call", "fn", fn, "depth", depth)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l == nil {
		return
	}
	l.slog.WarnContext(ctx, msg, args...)
}
