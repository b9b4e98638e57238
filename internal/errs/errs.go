// Package errs defines the synthesis engine's diagnostics. The shape follows
// cuelang.org/go/cue/errors: a small interface carrying a position plus a
// plain message, rather than a tree of wrapped fmt.Errorf calls, so that a
// driver can print "span: code: message" uniformly regardless of which stage of
// the engine raised it.
package errs

import (
	"fmt"

	"leolang.dev/synth/internal/source"
)

// Code enumerates every diagnostic the engine can raise. It is intentionally
// flat (not a type hierarchy) so callers can switch on it directly.
type Code int

const (
	_ Code = iota
	UndefinedIdentifier
	UndefinedArray
	UndefinedCircuit
	UndefinedMemberAccess
	ExpectedCircuitMember
	IncompatibleTypes
	InvalidSpread
	InvalidIndex
	IndexOutOfBounds
	IndexOverflow
	InvalidLength
	UnexpectedArray
	ConditionalBoolean
	InvalidStaticAccess
	InvalidMemberAccess
	FunctionNoReturn
	CannotEnforce
	BadLiteral
	RecursionLimit
	NotACircuit
	NotAFunction
	TypeMismatch
	NonConstantComparison
	NonConstantLoopBound
	NonConstantReturn
)

var names = map[Code]string{
	UndefinedIdentifier:    "UndefinedIdentifier",
	UndefinedArray:         "UndefinedArray",
	UndefinedCircuit:       "UndefinedCircuit",
	UndefinedMemberAccess:  "UndefinedMemberAccess",
	ExpectedCircuitMember:  "ExpectedCircuitMember",
	IncompatibleTypes:      "IncompatibleTypes",
	InvalidSpread:          "InvalidSpread",
	InvalidIndex:           "InvalidIndex",
	IndexOutOfBounds:       "IndexOutOfBounds",
	IndexOverflow:          "IndexOverflow",
	InvalidLength:          "InvalidLength",
	UnexpectedArray:        "UnexpectedArray",
	ConditionalBoolean:     "ConditionalBoolean",
	InvalidStaticAccess:    "InvalidStaticAccess",
	InvalidMemberAccess:    "InvalidMemberAccess",
	FunctionNoReturn:       "FunctionNoReturn",
	CannotEnforce:          "CannotEnforce",
	BadLiteral:             "BadLiteral",
	RecursionLimit:         "RecursionLimit",
	NotACircuit:            "NotACircuit",
	NotAFunction:           "NotAFunction",
	TypeMismatch:           "TypeMismatch",
	NonConstantComparison:  "NonConstantComparison",
	NonConstantLoopBound:   "NonConstantLoopBound",
	NonConstantReturn:      "NonConstantReturn",
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "Unknown"
}

// Error is the engine's diagnostic type. It always carries the Span of the
// expression or statement that triggered it.
type Error struct {
	Code  Code
	Span  source.Span
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.Span.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Span, e.Code, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.msg)
}

// Position reports the originating Span, mirroring cue/errors.Error's
// Position method.
func (e *Error) Position() source.Span { return e.Span }

// Unwrap exposes the underlying cause, if any, so errors.Is/As keep working
// across e.g. a BadLiteral wrapping an apd parse error.
func (e *Error) Unwrap() error { return e.cause }

func new_(code Code, span source.Span, msg string) *Error {
	return &Error{Code: code, Span: span, msg: msg}
}

func wrap(code Code, span source.Span, msg string, cause error) *Error {
	return &Error{Code: code, Span: span, msg: msg, cause: cause}
}

func UndefinedIdentifierErr(name string, span source.Span) *Error {
	return new_(UndefinedIdentifier, span, name)
}

func UndefinedArrayErr(got string, span source.Span) *Error {
	return new_(UndefinedArray, span, got)
}

func UndefinedCircuitErr(name string, span source.Span) *Error {
	return new_(UndefinedCircuit, span, name)
}

func UndefinedMemberAccessErr(circuit, member string, span source.Span) *Error {
	return new_(UndefinedMemberAccess, span, fmt.Sprintf("%s.%s", circuit, member))
}

func ExpectedCircuitMemberErr(field string, span source.Span) *Error {
	return new_(ExpectedCircuitMember, span, field)
}

func IncompatibleTypesErr(op string, span source.Span) *Error {
	return new_(IncompatibleTypes, span, op)
}

func InvalidSpreadErr(got string, span source.Span) *Error {
	return new_(InvalidSpread, span, got)
}

func InvalidIndexErr(got string, span source.Span) *Error {
	return new_(InvalidIndex, span, got)
}

func IndexOutOfBoundsErr(from, to, length int, span source.Span) *Error {
	return new_(IndexOutOfBounds, span, fmt.Sprintf("[%d..%d) of length %d", from, to, length))
}

func IndexOverflowErr(span source.Span) *Error {
	return new_(IndexOverflow, span, "index does not fit in a host usize")
}

func InvalidLengthErr(expected, got int, span source.Span) *Error {
	return new_(InvalidLength, span, fmt.Sprintf("expected %d, got %d", expected, got))
}

func UnexpectedArrayErr(expected, got string, span source.Span) *Error {
	return new_(UnexpectedArray, span, fmt.Sprintf("expected %s, found array %s", expected, got))
}

func ConditionalBooleanErr(got string, span source.Span) *Error {
	return new_(ConditionalBoolean, span, got)
}

func InvalidStaticAccessErr(got string, span source.Span) *Error {
	return new_(InvalidStaticAccess, span, got)
}

func InvalidMemberAccessErr(name string, span source.Span) *Error {
	return new_(InvalidMemberAccess, span, name)
}

func FunctionNoReturnErr(name string, span source.Span) *Error {
	return new_(FunctionNoReturn, span, name)
}

func CannotEnforceErr(op string, cause error, span source.Span) *Error {
	return wrap(CannotEnforce, span, op, cause)
}

func BadLiteralErr(literal string, cause error, span source.Span) *Error {
	return wrap(BadLiteral, span, literal, cause)
}

func RecursionLimitErr(depth int, span source.Span) *Error {
	return new_(RecursionLimit, span, fmt.Sprintf("exceeded recursion limit of %d", depth))
}

func NotACircuitErr(got string, span source.Span) *Error {
	return new_(NotACircuit, span, got)
}

func NotAFunctionErr(got string, span source.Span) *Error {
	return new_(NotAFunction, span, got)
}

func TypeMismatchErr(expected, got string, span source.Span) *Error {
	return new_(TypeMismatch, span, fmt.Sprintf("expected %s, found %s", expected, got))
}

func NonConstantComparisonErr(op string, span source.Span) *Error {
	return new_(NonConstantComparison, span, op)
}

func NonConstantLoopBoundErr(span source.Span) *Error {
	return new_(NonConstantLoopBound, span, "loop bounds must be compile-time constants")
}

func NonConstantReturnErr(span source.Span) *Error {
	return new_(NonConstantReturn, span, "a branch under a non-constant condition cannot return early")
}
