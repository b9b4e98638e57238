// Package source carries the minimal position information the synthesis
// engine needs from the parser it consumes: a byte-range span plus the line
// it starts on. The engine never constructs a Span itself except in tests;
// every Span on a live Expression comes from the resolved AST.
package source

import "fmt"

// Span is a source-code location: a line number plus a start/end byte
// offset within that line. Every diagnostic and every constraint-system
// namespace the engine derives incorporates the Span of the expression it
// guards.
type Span struct {
	Line  int
	Start int
	End   int
}

// NoSpan is used by tests and synthetic values that have no source origin.
var NoSpan = Span{}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Start)
}

// IsValid reports whether s was derived from an actual source location.
func (s Span) IsValid() bool {
	return s.Line > 0
}
