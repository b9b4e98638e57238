// Package sinktest is a toy in-memory sink.ConstraintSink used by engine
// unit tests that want to exercise allocation/selection/arithmetic wiring
// without pulling in a real curve. It folds constant operands directly
// (mirroring what a real gnark builder does internally) and otherwise
// allocates an opaque wire with no tracked value — solving witnesses is
// explicitly out of this module's scope, so a test sink has no need to
// carry one either.
package sinktest

import (
	"fmt"
	"math/big"

	"leolang.dev/synth/internal/sink"
)

// Wire is an allocated, non-constant variable.
type Wire struct {
	id   int
	name string
}

// Sink is the in-memory ConstraintSink.
type Sink struct {
	nextID      int
	constraints int
	tag         string
}

func New() *Sink { return &Sink{} }

// Constraints reports how many Enforce calls have been recorded. Wire
// allocations and folded operations are not counted.
func (s *Sink) Constraints() int { return s.constraints }

func (s *Sink) AllocateInput(name string) sink.Variable {
	s.nextID++
	return &Wire{id: s.nextID, name: name}
}

func (s *Sink) AllocateWitness(name string) sink.Variable {
	s.nextID++
	return &Wire{id: s.nextID, name: name}
}

func (s *Sink) Enforce(a, b, c sink.Variable) {
	s.constraints++
}

type namespace struct{ tag string }

func (n namespace) Tag() string { return n.tag }

func (s *Sink) Namespace(tag string) sink.Namespace {
	return namespace{tag: s.tag + "/" + tag}
}

func asInt(v sink.Variable) (*big.Int, bool) {
	n, ok := v.(*big.Int)
	return n, ok
}

func asBool(v sink.Variable) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func (s *Sink) Add(a, b sink.Variable) sink.Variable {
	if x, ok := asInt(a); ok {
		if y, ok := asInt(b); ok {
			return new(big.Int).Add(x, y)
		}
	}
	s.nextID++
	return &Wire{id: s.nextID, name: "add"}
}

func (s *Sink) Sub(a, b sink.Variable) sink.Variable {
	if x, ok := asInt(a); ok {
		if y, ok := asInt(b); ok {
			return new(big.Int).Sub(x, y)
		}
	}
	s.nextID++
	return &Wire{id: s.nextID, name: "sub"}
}

func (s *Sink) Mul(a, b sink.Variable) sink.Variable {
	if x, ok := asInt(a); ok {
		if y, ok := asInt(b); ok {
			return new(big.Int).Mul(x, y)
		}
	}
	s.nextID++
	return &Wire{id: s.nextID, name: "mul"}
}

func (s *Sink) DivUnsafe(a, b sink.Variable) sink.Variable {
	if x, ok := asInt(a); ok {
		if y, ok := asInt(b); ok && y.Sign() != 0 {
			q := new(big.Int)
			q.Quo(x, y)
			return q
		}
	}
	s.nextID++
	return &Wire{id: s.nextID, name: "div"}
}

func (s *Sink) Pow(a sink.Variable, e uint64) sink.Variable {
	if x, ok := asInt(a); ok {
		return new(big.Int).Exp(x, new(big.Int).SetUint64(e), nil)
	}
	s.nextID++
	return &Wire{id: s.nextID, name: "pow"}
}

func (s *Sink) Not(a sink.Variable) sink.Variable {
	if x, ok := asBool(a); ok {
		return !x
	}
	s.nextID++
	return &Wire{id: s.nextID, name: "not"}
}

func (s *Sink) And(a, b sink.Variable) sink.Variable {
	if x, ok := asBool(a); ok {
		if y, ok := asBool(b); ok {
			return x && y
		}
	}
	s.nextID++
	return &Wire{id: s.nextID, name: "and"}
}

func (s *Sink) Or(a, b sink.Variable) sink.Variable {
	if x, ok := asBool(a); ok {
		if y, ok := asBool(b); ok {
			return x || y
		}
	}
	s.nextID++
	return &Wire{id: s.nextID, name: "or"}
}

func (s *Sink) IsEqual(a, b sink.Variable) sink.Variable {
	if x, ok := asInt(a); ok {
		if y, ok := asInt(b); ok {
			return x.Cmp(y) == 0
		}
	}
	if x, ok := asBool(a); ok {
		if y, ok := asBool(b); ok {
			return x == y
		}
	}
	if px, ok := a.(sink.Point); ok {
		if py, ok := b.(sink.Point); ok {
			return px.X.Cmp(py.X) == 0 && px.Y.Cmp(py.Y) == 0
		}
	}
	s.nextID++
	return &Wire{id: s.nextID, name: "eq"}
}

func (s *Sink) Select(cond, a, b sink.Variable) sink.Variable {
	if c, ok := asBool(cond); ok {
		if c {
			return a
		}
		return b
	}
	s.nextID++
	return &Wire{id: s.nextID, name: "select"}
}

func (s *Sink) ToConstant(v sink.Variable) (any, bool) {
	switch x := v.(type) {
	case *big.Int:
		return x, true
	case bool:
		return x, true
	case sink.Point:
		return x, true
	case *Wire:
		return nil, false
	default:
		panic(fmt.Sprintf("sinktest: unrecognized variable %T", v))
	}
}

var _ sink.ConstraintSink = (*Sink)(nil)
