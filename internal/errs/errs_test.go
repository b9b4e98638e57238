package errs_test

import (
	"errors"
	"strings"
	"testing"

	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/source"
)

func TestErrorWithoutSpanFormatsCodeAndMessage(t *testing.T) {
	err := errs.UndefinedIdentifierErr("foo", source.NoSpan)
	if got, want := err.Error(), "UndefinedIdentifier: foo"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestErrorUnwrapExposesCause(t *testing.T) {
	cause := errors.New("bad decimal")
	err := errs.BadLiteralErr("0x", cause, source.NoSpan)

	if !errors.Is(err, cause) {
		t.Fatal("errors.Is did not find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "0x") {
		t.Errorf("error message %q does not mention the literal", err.Error())
	}
}

func TestPositionReportsTheOriginatingSpan(t *testing.T) {
	err := errs.RecursionLimitErr(256, source.NoSpan)
	if err.Position() != source.NoSpan {
		t.Errorf("got %v, want source.NoSpan", err.Position())
	}
}

func TestCodeStringFallsBackToUnknown(t *testing.T) {
	if got, want := errs.Code(9999).String(), "Unknown"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
