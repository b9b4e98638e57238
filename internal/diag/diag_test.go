package diag_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"leolang.dev/synth/internal/diag"
)

func TestNamespaceWritesATraceRecord(t *testing.T) {
	var buf bytes.Buffer
	l := diag.New(&buf, slog.LevelDebug)

	l.Namespace(context.Background(), "circuit/add@1:1")

	out := buf.String()
	if !strings.Contains(out, "enter namespace") || !strings.Contains(out, "circuit/add@1:1") {
		t.Errorf("expected a namespace trace record, got %q", out)
	}
}

func TestDiscardDoesNotPanic(t *testing.T) {
	l := diag.Discard()

	l.Namespace(context.Background(), "tag")
	l.Constraint(context.Background(), "add", "tag")
	l.Call(context.Background(), "fn", 1)
	l.Warn(context.Background(), "uh oh")
}

func TestNilLoggerIsANoop(t *testing.T) {
	var l *diag.Logger
	// None of these should panic.
	l.Namespace(context.Background(), "tag")
	l.Constraint(context.Background(), "add", "tag")
	l.Call(context.Background(), "fn", 1)
	l.Warn(context.Background(), "uh oh")
}
