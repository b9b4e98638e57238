package value

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/source"
)

// literalCtx parses decimal literal text with graceful overflow/format
// diagnostics, the same role github.com/cockroachdb/apd/v3 plays in
// cuelang.org/go/internal/core/adt for CUE's own numeric literals, instead
// of hand-rolled strconv range checks.
var literalCtx = newLiteralContext()

func newLiteralContext() apd.Context {
	ctx := apd.BaseContext
	ctx.Precision = 128
	return ctx
}

// ParseLiteral parses a raw literal string against a concrete type T,
// producing the matching Value kind. Called directly for typed literals
// (integer, field, group, scalar) and via ResolveType/ResolveTypes (an
// Unresolved value promoted once its context or peer is known).
func ParseLiteral(literal string, t ast.Type, span source.Span) (Value, error) {
	switch tt := t.(type) {
	case ast.TInteger:
		kind, ok := ParseIntegerKind(tt.String())
		if !ok {
			return nil, errs.BadLiteralErr(literal, nil, span)
		}
		return parseInteger(literal, kind, span)
	case ast.TField:
		n, err := parseDecimal(literal, span)
		if err != nil {
			return nil, err
		}
		return Field{Const: n}, nil
	case ast.TScalar:
		n, err := parseDecimal(literal, span)
		if err != nil {
			return nil, err
		}
		return Scalar{Const: n}, nil
	case ast.TGroup:
		return parseGroup(literal, span)
	case ast.TBoolean:
		switch literal {
		case "true":
			b := true
			return Boolean{Const: &b}, nil
		case "false":
			b := false
			return Boolean{Const: &b}, nil
		}
		return nil, errs.BadLiteralErr(literal, nil, span)
	case ast.TAddress:
		return Address{Const: literal}, nil
	}
	return nil, errs.TypeMismatchErr(t.String(), "implicit literal "+literal, span)
}

func parseDecimal(literal string, span source.Span) (*big.Int, error) {
	d, _, err := literalCtx.NewFromString(literal)
	if err != nil {
		return nil, errs.BadLiteralErr(literal, err, span)
	}
	var coeff apd.Decimal
	if _, err := literalCtx.RoundToIntegralExact(&coeff, d); err != nil {
		return nil, errs.BadLiteralErr(literal, err, span)
	}
	n := new(big.Int)
	if _, ok := n.SetString(coeff.Text('f'), 10); !ok {
		return nil, errs.BadLiteralErr(literal, nil, span)
	}
	return n, nil
}

func parseInteger(literal string, kind IntegerKind, span source.Span) (Value, error) {
	n, err := parseDecimal(literal, span)
	if err != nil {
		return nil, err
	}
	bits := kind.Bits()
	if kind.Signed() {
		max := new(big.Int).Lsh(big.NewInt(1), bits-1)
		min := new(big.Int).Neg(max)
		if n.Cmp(min) < 0 || n.Cmp(max) >= 0 {
			return nil, errs.BadLiteralErr(literal, nil, span)
		}
	} else {
		if n.Sign() < 0 {
			return nil, errs.BadLiteralErr(literal, nil, span)
		}
		max := new(big.Int).Lsh(big.NewInt(1), bits)
		if n.Cmp(max) >= 0 {
			return nil, errs.BadLiteralErr(literal, nil, span)
		}
	}
	return Integer{IntKind: kind, Const: n}, nil
}

// parseGroup accepts the concrete-coordinate form the (out-of-scope)
// parser/curve layer is expected to have already normalized a group literal
// into: "x,y" for an explicit affine point. A bare scalar (no comma) would
// require curve arithmetic (scalar-times-generator) to resolve to a point;
// that arithmetic is the external gadget library's job, not this engine's,
// so it is rejected here rather than silently guessed at.
func parseGroup(literal string, span source.Span) (Value, error) {
	parts := strings.SplitN(literal, ",", 2)
	if len(parts) != 2 {
		return nil, errs.BadLiteralErr(literal, nil, span)
	}
	x, err := parseDecimal(strings.TrimSpace(parts[0]), span)
	if err != nil {
		return nil, err
	}
	y, err := parseDecimal(strings.TrimSpace(parts[1]), span)
	if err != nil {
		return nil, err
	}
	return Group{Const: &GroupPoint{X: x, Y: y}}, nil
}
