package value_test

import (
	"math/big"
	"testing"

	"leolang.dev/synth/internal/value"
)

func TestDisplayInteger(t *testing.T) {
	v := value.Integer{IntKind: value.U8, Const: big.NewInt(5)}
	if got, want := v.Display(), "5u8"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisplayAllocatedIntegerHasNoConstant(t *testing.T) {
	v := value.Integer{IntKind: value.I16}
	if got, want := v.Display(), "[allocated i16]"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisplayArrayJoinsElements(t *testing.T) {
	a := value.Array{
		Values: []value.Value{
			value.Integer{IntKind: value.U8, Const: big.NewInt(1)},
			value.Integer{IntKind: value.U8, Const: big.NewInt(2)},
		},
	}
	if got, want := a.Display(), "[1u8, 2u8]"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisplayCircuitInstanceListsMembers(t *testing.T) {
	c := value.CircuitInstance{
		Name: "Point",
		Members: []value.Member{
			{Name: "x", Value: value.Integer{IntKind: value.U8, Const: big.NewInt(1)}},
			{Name: "y", Value: value.Integer{IntKind: value.U8, Const: big.NewInt(2)}},
		},
	}
	if got, want := c.Display(), "Point {x: 1u8, y: 2u8}"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisplayGroup(t *testing.T) {
	g := value.Group{Const: &value.GroupPoint{X: big.NewInt(1), Y: big.NewInt(2)}}
	if got, want := g.Display(), "(1, 2)group"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
