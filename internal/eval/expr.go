package eval

import (
	"context"

	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/value"
)

// Eval is the ExpressionEvaluator: it walks every resolved expression form
// the expression grammar enumerates and produces a Value, delegating every
// non-constant arithmetic/boolean/selection step to the Engine's sink.
// expected carries the type context a literal or ternary branch should
// resolve against; nil/empty means "no constraint yet".
func (e *Engine) Eval(ctx context.Context, frame Frame, expected []ast.Type, expr ast.Expression) (value.Value, error) {
	span := expr.Span()

	switch ex := expr.(type) {
	case ast.IdentifierExpr:
		v, ok := e.Scope.Resolve(frame.FileScope, frame.FnScope, ex.Ident.Name)
		if !ok {
			return nil, errs.UndefinedIdentifierErr(ex.Ident.Name, span)
		}
		return v, nil

	case ast.IntegerLit:
		kind, ok := value.ParseIntegerKind(ex.IntKind.String())
		if !ok {
			return nil, errs.BadLiteralErr(ex.Literal, nil, span)
		}
		return value.ParseLiteral(ex.Literal, ast.TInteger{Width: int(kind.Bits()), Signed: kind.Signed()}, span)

	case ast.FieldLit:
		return value.ParseLiteral(ex.Literal, ast.TField{}, span)

	case ast.GroupLit:
		return value.ParseLiteral(ex.Literal, ast.TGroup{}, span)

	case ast.ScalarLit:
		return value.ParseLiteral(ex.Literal, ast.TScalar{}, span)

	case ast.BooleanLit:
		b := ex.Value
		return value.Boolean{Const: &b}, nil

	case ast.AddressLit:
		return value.Address{Const: ex.Literal}, nil

	case ast.StringLit:
		return value.String{Const: ex.Literal}, nil

	case ast.Implicit:
		u := value.Unresolved{Literal: ex.Literal}
		resolved, err := value.ResolveType(u, expected, span)
		if err != nil {
			return nil, err
		}
		return resolved, nil

	case ast.Binary:
		return e.evalBinary(ctx, frame, expected, ex)

	case ast.Not:
		v, err := e.Eval(ctx, frame, []ast.Type{ast.TBoolean{}}, ex.Inner)
		if err != nil {
			return nil, err
		}
		b, ok := v.(value.Boolean)
		if !ok {
			return nil, errs.IncompatibleTypesErr("!", span)
		}
		bv, _, _, err := variableOf(b, span)
		if err != nil {
			return nil, err
		}
		return e.foldResult(value.KindBoolean, 0, e.Sink.Not(bv)), nil

	case ast.IfElse:
		return e.evalIfElse(ctx, frame, expected, ex)

	case ast.ArrayLit:
		return e.evalArrayLit(ctx, frame, expected, ex)

	case ast.ArrayAccess:
		return e.evalArrayAccess(ctx, frame, ex)

	case ast.CircuitLit:
		return e.evalCircuitLit(ctx, frame, ex)

	case ast.CircuitMemberAccess:
		return e.evalCircuitMemberAccess(ctx, frame, ex)

	case ast.CircuitStaticAccess:
		return e.evalCircuitStaticAccess(ctx, frame, ex)

	case ast.FunctionCall:
		return e.evalFunctionCall(ctx, frame, ex)
	}

	return nil, errs.IncompatibleTypesErr("unhandled expression", span)
}

// evalBinary evaluates both operands and folds/gadgets the operator between
// them. Arithmetic operators (+ - * / **) pass expected down into both
// operands, the same way a declared let type or enclosing expected
// propagates through any other subexpression — this is what lets an
// Unresolved/Implicit operand (an untyped literal, or a ternary whose
// branches are themselves untyped literals) resolve against the type the
// surrounding context already demands. Relational and equality operators
// (< <= > >= == && ||) instead evaluate both sides with no expected type at
// all: their own result type never depends on the operand type, so the
// only thing expected could do here is wrongly force two already-concrete
// operands to agree with a type neither of them is being assigned to.
func (e *Engine) evalBinary(ctx context.Context, frame Frame, expected []ast.Type, b ast.Binary) (value.Value, error) {
	span := b.Span()
	operandExpected := expected
	switch b.Op {
	case ast.OpAnd, ast.OpOr, ast.OpEq, ast.OpGe, ast.OpGt, ast.OpLe, ast.OpLt:
		operandExpected = nil
	}

	l, err := e.Eval(ctx, frame, operandExpected, b.Left)
	if err != nil {
		return nil, err
	}
	r, err := e.Eval(ctx, frame, operandExpected, b.Right)
	if err != nil {
		return nil, err
	}
	l, r, err = value.ResolveTypes(l, r, operandExpected, span)
	if err != nil {
		return nil, err
	}
	ns := e.namespace(ctx, "binop:"+b.Op.String(), span)
	e.Log.Constraint(ctx, b.Op.String(), ns.Tag())
	return e.arith(opKind(b.Op), l, r, span)
}

func (e *Engine) evalIfElse(ctx context.Context, frame Frame, expected []ast.Type, ie ast.IfElse) (value.Value, error) {
	span := ie.Span()
	cv, err := e.Eval(ctx, frame, []ast.Type{ast.TBoolean{}}, ie.Cond)
	if err != nil {
		return nil, err
	}
	cond, ok := cv.(value.Boolean)
	if !ok {
		return nil, errs.ConditionalBooleanErr(cv.Display(), span)
	}
	thenV, err := e.Eval(ctx, frame, expected, ie.Then)
	if err != nil {
		return nil, err
	}
	elseV, err := e.Eval(ctx, frame, expected, ie.Else)
	if err != nil {
		return nil, err
	}
	e.namespace(ctx, "select", span)
	return e.selectValue(cond, thenV, elseV, span)
}

func (e *Engine) evalArrayLit(ctx context.Context, frame Frame, expected []ast.Type, al ast.ArrayLit) (value.Value, error) {
	var innerExpected []ast.Type
	if len(expected) == 1 {
		if arr, ok := expected[0].(ast.TArray); ok {
			innerExpected = []ast.Type{ast.InnerDimension(arr)}
		}
	}

	var values []value.Value
	for _, el := range al.Elements {
		if el.Spread {
			ident, ok := el.Expr.(ast.IdentifierExpr)
			if !ok {
				return nil, errs.InvalidSpreadErr(el.Expr.Span().String(), el.Expr.Span())
			}
			v, err := e.Eval(ctx, frame, nil, ident)
			if err != nil {
				return nil, err
			}
			arr, ok := v.(value.Array)
			if !ok {
				return nil, errs.InvalidSpreadErr(v.Display(), el.Expr.Span())
			}
			values = append(values, arr.Values...)
			continue
		}
		v, err := e.Eval(ctx, frame, innerExpected, el.Expr)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return value.Array{Values: values}, nil
}

func (e *Engine) evalArrayAccess(ctx context.Context, frame Frame, aa ast.ArrayAccess) (value.Value, error) {
	span := aa.Span()
	av, err := e.Eval(ctx, frame, nil, aa.Array)
	if err != nil {
		return nil, err
	}
	arr, ok := av.(value.Array)
	if !ok {
		return nil, errs.UndefinedArrayErr(av.Display(), span)
	}

	constIndex := func(expr ast.Expression, fallback int) (int, error) {
		if expr == nil {
			return fallback, nil
		}
		v, err := e.Eval(ctx, frame, nil, expr)
		if err != nil {
			return 0, err
		}
		n, ok := v.(value.Integer)
		if !ok || n.Const == nil {
			return 0, errs.InvalidIndexErr(v.Display(), span)
		}
		if !n.Const.IsInt64() {
			return 0, errs.IndexOverflowErr(span)
		}
		return int(n.Const.Int64()), nil
	}

	if !aa.Index.IsRange {
		idx, err := constIndex(aa.Index.Index, 0)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(arr.Values) {
			return nil, errs.IndexOutOfBoundsErr(idx, idx+1, len(arr.Values), span)
		}
		return arr.Values[idx], nil
	}

	from, err := constIndex(aa.Index.From, 0)
	if err != nil {
		return nil, err
	}
	to, err := constIndex(aa.Index.To, len(arr.Values))
	if err != nil {
		return nil, err
	}
	if from < 0 || to > len(arr.Values) || from > to {
		return nil, errs.IndexOutOfBoundsErr(from, to, len(arr.Values), span)
	}
	sub := make([]value.Value, to-from)
	copy(sub, arr.Values[from:to])
	return value.Array{Values: sub}, nil
}

// circuitTypeValue resolves a circuit-type-naming expression (ordinarily a
// bare IdentifierExpr naming the circuit, or the `Self` identifier) to a
// CircuitDefinition. Wire binds every circuit name into file scope the same
// way a free function's name is; it does not bind `Self`.
func (e *Engine) circuitTypeValue(ctx context.Context, frame Frame, expr ast.Expression) (value.CircuitDefinition, error) {
	v, err := e.Eval(ctx, frame, nil, expr)
	if err != nil {
		return value.CircuitDefinition{}, err
	}
	return value.ExtractCircuit(v, expr.Span())
}
