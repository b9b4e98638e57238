// Package sink defines the engine's narrow boundary onto the constraint
// system and gadget library the engine treats as external collaborators:
// "the gadget library for fields/groups/integers/booleans" and "curve
// arithmetic primitives" are consumed through this interface, never
// implemented in this module. internal/sink/gnarkapi adapts a real
// github.com/consensys/gnark frontend.API (plus gnark-crypto's BLS12-377
// field element) to it; internal/sink/sinktest provides a toy in-memory
// implementation for engine unit tests that do not need a real curve.
package sink

import "math/big"

// Variable is an opaque handle to an allocated wire, or a raw Go constant
// (*big.Int, bool, Point) standing in for one. gnark's own frontend.API
// accepts exactly this mix of real circuit variables and plain constants
// wherever a Variable is expected, which is why this interface is just
// `interface{}` rather than a dedicated wrapper type — a ConstraintSink
// implementation is trusted to type-switch it the same way gnark does.
type Variable interface{}

// Point is a constant affine curve point: the canonical representation
// both the engine's value.Group and a ConstraintSink's Gadgets share for
// constant group elements, so no conversion is needed at the boundary.
type Point struct {
	X, Y *big.Int
}

// Namespace scopes the wire/constraint names a ConstraintSink allocates
// underneath a tag, so that e.g. two "select a or b" ternaries in the same
// function don't collide. It mirrors the role ConstraintSystem::ns plays in
// comparable libraries in other constraint-system frameworks.
type Namespace interface {
	// Tag returns the namespace's fully-qualified name, for diagnostics.
	Tag() string
}

// ConstraintSink is the write-only surface the engine emits constraints
// through: allocate-input-wire, allocate-witness-wire,
// enforce(linear, linear, linear), plus a namespace constructor and the
// gadget operations arithmetic/boolean/selection dispatch needs.
type ConstraintSink interface {
	// AllocateInput creates a new public (input) wire.
	AllocateInput(name string) Variable
	// AllocateWitness creates a new private (witness) wire.
	AllocateWitness(name string) Variable
	// Enforce posts the rank-1 constraint a*b == c.
	Enforce(a, b, c Variable)
	// Namespace derives a uniquely-tagged child namespace; every call with
	// the same tag from the same sink instance must be idempotent-free
	// (tags already encode the span, so collisions are a caller bug, not
	// something the sink needs to paper over).
	Namespace(tag string) Namespace

	Gadgets
}

// Gadgets is the arithmetic/boolean/selection gadget surface the evaluator
// dispatches to for every operation, constant operands included (an
// implementation folds those itself). Add, Sub, Mul, DivUnsafe, And, Or and
// Select match the name and argument order of github.com/consensys/gnark's
// frontend.API; Not, Pow, IsEqual and ToConstant have no frontend.API method
// of that name, and the real backend (gnarkapi) builds them from other API
// calls.
type Gadgets interface {
	Add(a, b Variable) Variable
	Sub(a, b Variable) Variable
	Mul(a, b Variable) Variable
	// DivUnsafe divides a by b using a constrained inverse; the backend is
	// responsible for making division by zero unsatisfiable rather than a
	// panic, matching gnark's own naming/semantics for this method.
	DivUnsafe(a, b Variable) Variable
	// Pow raises a constant or allocated integer a to constant exponent e.
	// Only ever called for Integer operands — groups/fields reject pow
	// before reaching the sink.
	Pow(a Variable, e uint64) Variable

	Not(a Variable) Variable
	And(a, b Variable) Variable
	Or(a, b Variable) Variable

	IsEqual(a, b Variable) Variable
	Select(cond, a, b Variable) Variable

	// ToConstant reports whether v is a compile-time constant the engine's
	// host can read back directly (and its value, as a Go value: bool,
	// *big.Int, or a sink.Point for group points), or false if
	// v is a genuinely allocated wire.
	ToConstant(v Variable) (value any, isConst bool)
}
