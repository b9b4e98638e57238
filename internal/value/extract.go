package value

import (
	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/source"
)

// ExtractCircuit asserts v is a CircuitDefinition.
func ExtractCircuit(v Value, span source.Span) (CircuitDefinition, error) {
	if c, ok := v.(CircuitDefinition); ok {
		return c, nil
	}
	return CircuitDefinition{}, errs.NotACircuitErr(v.Display(), span)
}

// ExtractFunction asserts v is a Function. A Static
// wrapper is transparently unwrapped: static access already validated the
// staticness, so by the time a Function reaches a call site it is always
// legitimate to invoke regardless of how it was reached.
func ExtractFunction(v Value, span source.Span) (Function, error) {
	switch x := v.(type) {
	case Function:
		return x, nil
	case Static:
		return ExtractFunction(x.Inner, span)
	}
	return Function{}, errs.NotAFunctionErr(v.Display(), span)
}
