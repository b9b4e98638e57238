package gnarkapi_test

import (
	"testing"

	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/sink/gnarkapi"
)

// TestNewCircuitCarriesProgram checks the adapter stores what Define needs
// without invoking frontend.Compile, which this test suite has no business
// driving (that belongs to whatever "leo build" binary eventually links this
// package against a real curve).
func TestNewCircuitCarriesProgram(t *testing.T) {
	prog := &ast.Program{Entry: "main"}
	c := gnarkapi.NewCircuit(prog)

	if c.Program != prog {
		t.Fatalf("NewCircuit did not retain the program pointer")
	}
	if c.Log == nil {
		t.Fatalf("NewCircuit should default to a discard logger")
	}
}
