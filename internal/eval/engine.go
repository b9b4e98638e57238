// Package eval is the synthesis engine's core: ExpressionEvaluator,
// StatementEnforcer, FunctionCallFrame, and CircuitInstantiator, wired
// together through a single Engine the way cuelang.org/go/internal/core/adt
// threads every evaluation rule through one shared OpContext rather than
// passing a dozen loose arguments down every call. The Engine never
// constructs constraints itself; every arithmetic/boolean/selection op
// bottoms out in the sink.ConstraintSink it was built with, and an
// Unresolved literal is only ever parsed once its expected type is known.
package eval

import (
	"context"

	"leolang.dev/synth/internal/diag"
	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/scope"
	"leolang.dev/synth/internal/sink"
	"leolang.dev/synth/internal/source"
	"leolang.dev/synth/internal/value"
)

// DefaultRecursionLimit bounds FunctionCallFrame nesting; exceeding it raises
// RecursionLimitErr rather than overflowing the host Go stack.
const DefaultRecursionLimit = 256

// methodKey addresses one circuit method by (circuit name, method name), the
// key Wire's methodIDs index is built over.
type methodKey struct {
	Circuit string
	Method  string
}

// Engine holds everything evaluation needs: where constraints go, where
// definitions and bindings live, and how deep the current call stack is.
type Engine struct {
	Sink  sink.ConstraintSink
	Defs  *value.DefStore
	Scope *scope.Table
	Log   *diag.Logger

	RecursionLimit int
	depth          int

	// methodIDs maps a circuit method to its index in Defs' function arena.
	// Methods are never bound directly into Scope (only reachable through
	// their circuit), so this index is how CircuitMemberAccess/
	// CircuitStaticAccess find a method's FunctionDef.
	methodIDs map[methodKey]int
}

// New constructs an Engine with the default recursion limit. Callers that
// need deterministic, repeatable scope/def-store wiring across a single
// program's functions build one Engine and reuse it for every call.
func New(sk sink.ConstraintSink, defs *value.DefStore, scp *scope.Table, log *diag.Logger) *Engine {
	return &Engine{
		Sink:           sk,
		Defs:           defs,
		Scope:          scp,
		Log:            log,
		RecursionLimit: DefaultRecursionLimit,
		methodIDs:      make(map[methodKey]int),
	}
}

// enterCall increments the call-depth counter and checks it against
// RecursionLimit. Every FunctionCallFrame invocation
// brackets its body between enterCall/exitCall.
func (e *Engine) enterCall(ctx context.Context, fnName string, span source.Span) error {
	e.depth++
	if e.depth > e.RecursionLimit {
		e.depth--
		return errs.RecursionLimitErr(e.RecursionLimit, span)
	}
	e.Log.Call(ctx, fnName, e.depth)
	return nil
}

func (e *Engine) exitCall() {
	e.depth--
}

// namespace derives a sink.Namespace tagged with span, matching the
// ConstraintSystem::ns pattern most R1CS builders thread through
// every enforced operation so two identical-looking ternaries in the same
// function never collide on wire names.
func (e *Engine) namespace(ctx context.Context, tag string, span source.Span) sink.Namespace {
	full := tag + "@" + span.String()
	e.Log.Namespace(ctx, full)
	return e.Sink.Namespace(full)
}
