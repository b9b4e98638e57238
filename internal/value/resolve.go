package value

import (
	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/source"
)

// ResolveType reconciles v against expected:
//
//  1. empty expected -> no constraint.
//  2. singleton expected=[T]: promote an Unresolved literal to T, recurse
//     into arrays against T's inner dimension, or else require v's kind to
//     match T.
//  3. multi-element expected (tuple destructuring) is handled by the
//     statement enforcer, not here.
func ResolveType(v Value, expected []ast.Type, span source.Span) (Value, error) {
	if len(expected) == 0 {
		return v, nil
	}
	if len(expected) > 1 {
		// Tuple-destructure context; StatementEnforcer handles this
		// element-wise before ever calling ResolveType on a scalar value.
		return v, nil
	}

	t := expected[0]

	if u, ok := v.(Unresolved); ok {
		return ParseLiteral(u.Literal, t, span)
	}

	if arr, ok := t.(ast.TArray); ok {
		values, ok := v.(Array)
		if !ok {
			return v, errs.UnexpectedArrayErr(t.String(), v.Display(), span)
		}
		inner := []ast.Type{ast.InnerDimension(arr)}
		resolved := make([]Value, len(values.Values))
		for i, e := range values.Values {
			r, err := ResolveType(e, inner, span)
			if err != nil {
				return v, err
			}
			resolved[i] = r
		}
		if len(arr.Dims) > 0 && arr.Dims[0] != len(resolved) {
			return v, errs.InvalidLengthErr(arr.Dims[0], len(resolved), span)
		}
		return Array{Values: resolved}, nil
	}

	if v.Kind() == KindString {
		// Strings fall outside the resolvable Type grammar;
		// treat them as untyped constants that satisfy any expectation.
		return v, nil
	}

	if !kindMatches(v, t) {
		return v, errs.TypeMismatchErr(t.String(), v.Display(), span)
	}
	return v, nil
}

func kindMatches(v Value, t ast.Type) bool {
	switch tt := t.(type) {
	case ast.TBoolean:
		return v.Kind() == KindBoolean
	case ast.TAddress:
		return v.Kind() == KindAddress
	case ast.TField:
		return v.Kind() == KindField
	case ast.TGroup:
		return v.Kind() == KindGroup
	case ast.TScalar:
		return v.Kind() == KindScalar
	case ast.TInteger:
		n, ok := v.(Integer)
		if !ok {
			return false
		}
		want, _ := integerKindFromType(tt)
		return n.IntKind == want
	case ast.TArray:
		_, ok := v.(Array)
		return ok
	case ast.TTuple:
		_, ok := v.(Tuple)
		return ok
	case ast.TCircuit, ast.TSelf:
		_, ok := v.(CircuitInstance)
		return ok
	}
	return false
}

func integerKindFromType(t ast.TInteger) (IntegerKind, bool) {
	suffix := t.String()
	return ParseIntegerKind(suffix)
}

// ResolveTypes is the peer-wise promotion binary operators need for
// binary-operation operands: an Unresolved operand is promoted to its
// concrete peer's kind; if both are Unresolved, they promote to
// expected[0] when expected is a singleton (otherwise both stay
// Unresolved, which the caller must treat as an error — two genuinely
// untyped peers with no context cannot be resolved).
func ResolveTypes(a, b Value, expected []ast.Type, span source.Span) (Value, Value, error) {
	_, aUnresolved := a.(Unresolved)
	_, bUnresolved := b.(Unresolved)

	switch {
	case aUnresolved && bUnresolved:
		if len(expected) == 1 {
			ra, err := ResolveType(a, expected, span)
			if err != nil {
				return a, b, err
			}
			rb, err := ResolveType(b, expected, span)
			if err != nil {
				return a, b, err
			}
			return ra, rb, nil
		}
		return a, b, nil
	case aUnresolved:
		ra, err := promoteToPeer(a.(Unresolved), b, span)
		return ra, b, err
	case bUnresolved:
		rb, err := promoteToPeer(b.(Unresolved), a, span)
		return a, rb, err
	default:
		return a, b, nil
	}
}

// promoteToPeer resolves an Unresolved literal to the kind of a concrete
// peer value, per the original's ConstrainedValue::from_other.
func promoteToPeer(u Unresolved, peer Value, span source.Span) (Value, error) {
	t, ok := typeOfConcrete(peer)
	if !ok {
		return u, errs.TypeMismatchErr("concrete numeric type", peer.Display(), span)
	}
	return ParseLiteral(u.Literal, t, span)
}

// typeOfConcrete recovers the ast.Type that a concrete numeric/group Value
// corresponds to, so an Unresolved peer can be parsed against it.
func typeOfConcrete(v Value) (ast.Type, bool) {
	switch x := v.(type) {
	case Integer:
		return ast.TInteger{Width: int(x.IntKind.Bits()), Signed: x.IntKind.Signed()}, true
	case Field:
		return ast.TField{}, true
	case Group:
		return ast.TGroup{}, true
	case Scalar:
		return ast.TScalar{}, true
	}
	return nil, false
}
