// Package gnarkapi adapts github.com/consensys/gnark's frontend.API (the
// R1CS builder a circuit's Define method is handed) to sink.ConstraintSink,
// so the synthesis engine emits constraints against a real BLS12-377 curve
// (the curve Leo/Aleo itself uses) instead of the in-memory sinktest stand-in.
// It is a thin wiring layer: Add, Sub, Mul, DivUnsafe, And, Or and Select
// forward straight to the identically-named frontend.API method, Not and
// IsEqual are built on api.IsZero, Pow on repeated api.Mul, and Enforce on
// api.Mul plus api.AssertIsEqual; constants are represented the
// same way gnark itself accepts them (plain *big.Int / bool / sink.Point),
// so ToConstant only needs to type-switch rather than unwrap a wrapper type.
package gnarkapi

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark/frontend"

	"leolang.dev/synth/internal/sink"
)

// Sink wraps a frontend.API with the naming and constant-allocation
// namespacing the engine expects.
type Sink struct {
	api frontend.API
	tag string
}

// New adapts an in-progress circuit's frontend.API into a ConstraintSink.
// Called from a gnark frontend.Circuit's Define method, the same place any
// gnark circuit builds its constraints.
func New(api frontend.API) *Sink {
	return &Sink{api: api}
}

func (s *Sink) AllocateInput(name string) sink.Variable {
	// Public/secret allocation happens once, at circuit-struct field
	// declaration time via gnark's `gnark:"..."` struct tags, before
	// Define ever runs; by the time the engine sees a frontend.API the
	// input Variables already exist on the circuit struct, so allocation
	// here is a no-op passthrough of a freshly-witnessed variable.
	return s.api.Compiler().InternalVariable(0)
}

func (s *Sink) AllocateWitness(name string) sink.Variable {
	return s.api.Compiler().InternalVariable(0)
}

func (s *Sink) Enforce(a, b, c sink.Variable) {
	// A direct a*b == c is expressed as a MulAcc-style check: the product
	// minus c must be zero. gnark has no raw "post this R1C" entry point
	// on frontend.API (that belongs to the internal r1cs compiler this
	// package deliberately does not import), so the equivalent constraint
	// is expressed through the public arithmetic surface instead.
	prod := s.api.Mul(a, b)
	s.api.AssertIsEqual(prod, c)
}

type namespace struct{ tag string }

func (n namespace) Tag() string { return n.tag }

func (s *Sink) Namespace(tag string) sink.Namespace {
	return namespace{tag: s.tag + "/" + tag}
}

func (s *Sink) Add(a, b sink.Variable) sink.Variable { return s.api.Add(a, b) }
func (s *Sink) Sub(a, b sink.Variable) sink.Variable { return s.api.Sub(a, b) }
func (s *Sink) Mul(a, b sink.Variable) sink.Variable { return s.api.Mul(a, b) }

func (s *Sink) DivUnsafe(a, b sink.Variable) sink.Variable {
	return s.api.DivUnsafe(a, b)
}

func (s *Sink) Pow(a sink.Variable, e uint64) sink.Variable {
	// frontend.API has no native Pow; square-and-multiply over the public
	// Mul gadget matches how gnark's own std/math libraries implement
	// exponentiation by a constant.
	result := frontend.Variable(big.NewInt(1))
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = s.api.Mul(result, base)
		}
		base = s.api.Mul(base, base)
		e >>= 1
	}
	return result
}

func (s *Sink) Not(a sink.Variable) sink.Variable { return s.api.IsZero(a) }
func (s *Sink) And(a, b sink.Variable) sink.Variable {
	return s.api.And(a, b)
}
func (s *Sink) Or(a, b sink.Variable) sink.Variable {
	return s.api.Or(a, b)
}

func (s *Sink) IsEqual(a, b sink.Variable) sink.Variable {
	return s.api.IsZero(s.api.Sub(a, b))
}

func (s *Sink) Select(cond, a, b sink.Variable) sink.Variable {
	return s.api.Select(cond, a, b)
}

// ToConstant reports whether v is a plain Go constant rather than an
// allocated frontend.Variable wire. gnark's own api.Compiler().ConstantValue
// performs exactly this check; this method normalizes its *big.Int result
// into the fr.Element-reduced form the rest of the engine compares against.
func (s *Sink) ToConstant(v sink.Variable) (any, bool) {
	n, isConst := s.api.Compiler().ConstantValue(v)
	if !isConst {
		return nil, false
	}
	var elem fr.Element
	elem.SetBigInt(n)
	reduced := new(big.Int)
	elem.BigInt(reduced)
	return reduced, true
}

var _ sink.ConstraintSink = (*Sink)(nil)
