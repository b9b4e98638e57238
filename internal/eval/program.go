package eval

import (
	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/scope"
	"leolang.dev/synth/internal/value"
)

// ProgramFileScope is the scope-key prefix every top-level program binding
// (circuit type names, free function names) lives under. A resolved Leo
// program is always a single file in this engine's model — multi-file
// module resolution is the parser's job, finished before the engine ever
// sees a Program.
const ProgramFileScope = "file"

// Wire populates an already-constructed Engine with prog's definitions:
// every circuit and function name is bound into file scope (so a plain
// identifier lookup resolves it like any other file-scope binding), and
// every circuit method is registered into the function arena but
// deliberately left unbound in Scope — methods are only reachable through
// CircuitMemberAccess/CircuitStaticAccess on a value of that circuit's type,
// per CircuitInstantiator's member-resolution rules. This two-step
// construction (build the Engine around its sink, then load a program into
// it) mirrors how a gnark circuit's Define method receives an
// already-constructed frontend.API rather than building its own.
func (e *Engine) Wire(prog *ast.Program) {
	e.Defs = value.NewDefStore()
	e.Scope = scope.New()
	e.methodIDs = make(map[methodKey]int)

	for i := range prog.Circuits {
		c := &prog.Circuits[i]
		id := e.Defs.AddCircuit(c)
		e.Scope.Store(scope.Key(ProgramFileScope, c.Name), value.CircuitDefinition{ID: id})
	}

	for i := range prog.Functions {
		f := &prog.Functions[i]
		id := e.Defs.AddFunction(f)
		e.Scope.Store(scope.Key(ProgramFileScope, f.Name), value.Function{DefID: id})
	}

	for _, c := range prog.Circuits {
		for _, m := range c.Methods {
			fn := m.Def
			id := e.Defs.AddFunction(&fn)
			e.methodIDs[methodKey{Circuit: c.Name, Method: fn.Name}] = id
		}
	}
}
