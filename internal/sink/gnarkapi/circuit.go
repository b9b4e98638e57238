package gnarkapi

import (
	"context"

	"github.com/consensys/gnark/frontend"

	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/diag"
	"leolang.dev/synth/internal/eval"
)

// Circuit adapts a resolved Leo program into a gnark frontend.Circuit: its
// Define method wires this package's Sink into a fresh synthesis engine and
// runs the program's entry function, so the engine's gadget calls land as
// real R1CS constraints over BLS12-377 instead of sinktest's in-memory
// stand-in. This is what a "leo build"-style driver hands to
// frontend.Compile/groth16.Setup; cmd/synthfixture deliberately stays on
// sinktest since driving frontend.Compile itself needs the Go toolchain.
type Circuit struct {
	Program *ast.Program
	Log     *diag.Logger
}

// NewCircuit builds a gnark circuit around an already-resolved program. The
// program's entry function is evaluated with no arguments, matching
// cmd/synthfixture's sinktest-backed runner.
func NewCircuit(program *ast.Program) *Circuit {
	return &Circuit{Program: program, Log: diag.Discard()}
}

// Define implements frontend.Circuit.
func (c *Circuit) Define(api frontend.API) error {
	sk := New(api)
	engine := eval.New(sk, nil, nil, c.Log)
	engine.Wire(c.Program)

	entryCall := ast.FunctionCall{
		Callee: ast.NewIdentifierExpr(ast.Identifier{Name: c.Program.Entry}),
	}
	frame := eval.Frame{FileScope: eval.ProgramFileScope}
	_, err := engine.Eval(context.Background(), frame, nil, entryCall)
	return err
}

var _ frontend.Circuit = (*Circuit)(nil)
