package eval

import (
	"math/big"

	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/sink"
	"leolang.dev/synth/internal/source"
	"leolang.dev/synth/internal/value"
)

// variableOf unwraps a scalar Value into the sink.Variable representation
// its constant or wire carries, alongside enough kind information to rebuild
// a Value of the same shape from a result Variable. Array/Tuple/
// CircuitInstance/etc. have no single Variable and are rejected here; their
// arithmetic (none) and selection (structural, see selectValue) are handled
// one level up.
func variableOf(v value.Value, span source.Span) (sink.Variable, value.Kind, value.IntegerKind, error) {
	switch x := v.(type) {
	case value.Boolean:
		if x.Const != nil {
			return *x.Const, value.KindBoolean, 0, nil
		}
		return x.Wire, value.KindBoolean, 0, nil
	case value.Integer:
		if x.Const != nil {
			return x.Const, value.KindInteger, x.IntKind, nil
		}
		return x.Wire, value.KindInteger, x.IntKind, nil
	case value.Field:
		if x.Const != nil {
			return x.Const, value.KindField, 0, nil
		}
		return x.Wire, value.KindField, 0, nil
	case value.Scalar:
		if x.Const != nil {
			return x.Const, value.KindScalar, 0, nil
		}
		return x.Wire, value.KindScalar, 0, nil
	case value.Group:
		if x.Const != nil {
			return *x.Const, value.KindGroup, 0, nil
		}
		return x.Wire, value.KindGroup, 0, nil
	}
	return nil, 0, 0, errs.IncompatibleTypesErr(v.Kind().String(), span)
}

// foldResult rebuilds a Value of the given kind from a sink.Variable result,
// asking the sink whether the result folded back down to a constant (gnark's
// own builder, and sinktest, both constant-fold when every input was a
// constant) rather than tracking foldability separately in this package.
func (e *Engine) foldResult(kind value.Kind, intKind value.IntegerKind, result sink.Variable) value.Value {
	if c, ok := e.Sink.ToConstant(result); ok {
		switch kind {
		case value.KindBoolean:
			b := c.(bool)
			return value.Boolean{Const: &b}
		case value.KindInteger:
			n := c.(*big.Int)
			return value.Integer{IntKind: intKind, Const: n}
		case value.KindField:
			n := c.(*big.Int)
			return value.Field{Const: n}
		case value.KindScalar:
			n := c.(*big.Int)
			return value.Scalar{Const: n}
		case value.KindGroup:
			p := c.(sink.Point)
			return value.Group{Const: &p}
		}
	}
	switch kind {
	case value.KindBoolean:
		return value.Boolean{Wire: result}
	case value.KindInteger:
		return value.Integer{IntKind: intKind, Wire: result}
	case value.KindField:
		return value.Field{Wire: result}
	case value.KindScalar:
		return value.Scalar{Wire: result}
	case value.KindGroup:
		return value.Group{Wire: result}
	}
	panic("unreachable value kind in foldResult")
}

// arith dispatches one arithmetic/boolean/equality/relational binary
// operator over already peer-type-resolved operands.
func (e *Engine) arith(op opKind, l, r value.Value, span source.Span) (value.Value, error) {
	switch op {
	case opAnd, opOr:
		return e.boolOp(op, l, r, span)
	case opEq:
		return e.equality(l, r, span)
	case opGe, opGt, opLe, opLt:
		return e.relational(op, l, r, span)
	default:
		return e.numericOp(op, l, r, span)
	}
}

type opKind int

const (
	opAdd opKind = iota
	opSub
	opMul
	opDiv
	opPow
	opAnd
	opOr
	opEq
	opGe
	opGt
	opLe
	opLt
)

func (e *Engine) boolOp(op opKind, l, r value.Value, span source.Span) (value.Value, error) {
	lb, ok1 := l.(value.Boolean)
	rb, ok2 := r.(value.Boolean)
	if !ok1 || !ok2 {
		return nil, errs.IncompatibleTypesErr("&&/||", span)
	}
	lv, _, _, err := variableOf(lb, span)
	if err != nil {
		return nil, err
	}
	rv, _, _, err := variableOf(rb, span)
	if err != nil {
		return nil, err
	}
	var result sink.Variable
	if op == opAnd {
		result = e.Sink.And(lv, rv)
	} else {
		result = e.Sink.Or(lv, rv)
	}
	return e.foldResult(value.KindBoolean, 0, result), nil
}

func (e *Engine) equality(l, r value.Value, span source.Span) (value.Value, error) {
	if l.Kind() != r.Kind() {
		return nil, errs.IncompatibleTypesErr("==", span)
	}
	switch l.Kind() {
	case value.KindAddress:
		eq := l.(value.Address).Const == r.(value.Address).Const
		return value.Boolean{Const: &eq}, nil
	case value.KindString:
		eq := l.(value.String).Const == r.(value.String).Const
		return value.Boolean{Const: &eq}, nil
	case value.KindInteger:
		li, ri := l.(value.Integer), r.(value.Integer)
		if li.IntKind != ri.IntKind {
			return nil, errs.IncompatibleTypesErr("==", span)
		}
	}
	lv, kind, _, err := variableOf(l, span)
	if err != nil {
		return nil, err
	}
	rv, _, _, err := variableOf(r, span)
	if err != nil {
		return nil, err
	}
	_ = kind
	result := e.Sink.IsEqual(lv, rv)
	return e.foldResult(value.KindBoolean, 0, result), nil
}

// relational enforces that <,<=,>,>= are only meaningful between
// compile-time constants. The gadget interface has no
// less-than primitive (gnark itself only offers bit-comparison helpers built
// from many constraints), so rather than silently emitting a costly
// comparison circuit, a non-constant operand is rejected outright.
func (e *Engine) relational(op opKind, l, r value.Value, span source.Span) (value.Value, error) {
	ln, lok := constNumeric(l)
	rn, rok := constNumeric(r)
	if !lok || !rok {
		return nil, errs.NonConstantComparisonErr(opSymbol(op), span)
	}
	cmp := ln.Cmp(rn)
	var result bool
	switch op {
	case opGe:
		result = cmp >= 0
	case opGt:
		result = cmp > 0
	case opLe:
		result = cmp <= 0
	case opLt:
		result = cmp < 0
	}
	return value.Boolean{Const: &result}, nil
}

func constNumeric(v value.Value) (*big.Int, bool) {
	switch x := v.(type) {
	case value.Integer:
		if x.Const != nil {
			return x.Const, true
		}
	case value.Field:
		if x.Const != nil {
			return x.Const, true
		}
	case value.Scalar:
		if x.Const != nil {
			return x.Const, true
		}
	}
	return nil, false
}

func opSymbol(op opKind) string {
	switch op {
	case opGe:
		return ">="
	case opGt:
		return ">"
	case opLe:
		return "<="
	case opLt:
		return "<"
	}
	return "?"
}

func (e *Engine) numericOp(op opKind, l, r value.Value, span source.Span) (value.Value, error) {
	if l.Kind() != r.Kind() {
		return nil, errs.IncompatibleTypesErr(opSymbol2(op), span)
	}
	kind := l.Kind()
	if kind == value.KindGroup {
		return e.groupOp(op, l.(value.Group), r.(value.Group), span)
	}
	if kind != value.KindInteger && kind != value.KindField && kind != value.KindScalar {
		return nil, errs.IncompatibleTypesErr(opSymbol2(op), span)
	}
	if op == opPow && kind != value.KindInteger {
		return nil, errs.IncompatibleTypesErr("**", span)
	}
	if kind == value.KindInteger && op != opPow && l.(value.Integer).IntKind != r.(value.Integer).IntKind {
		return nil, errs.IncompatibleTypesErr(opSymbol2(op), span)
	}

	var intKind value.IntegerKind
	if i, ok := l.(value.Integer); ok {
		intKind = i.IntKind
	}

	lv, _, _, err := variableOf(l, span)
	if err != nil {
		return nil, err
	}
	rv, _, _, err := variableOf(r, span)
	if err != nil {
		return nil, err
	}

	var result sink.Variable
	switch op {
	case opAdd:
		result = e.Sink.Add(lv, rv)
	case opSub:
		result = e.Sink.Sub(lv, rv)
	case opMul:
		result = e.Sink.Mul(lv, rv)
	case opDiv:
		result = e.Sink.DivUnsafe(lv, rv)
	case opPow:
		exp, ok := constNumeric(r)
		if !ok || !exp.IsUint64() {
			return nil, errs.IncompatibleTypesErr("** requires a constant exponent", span)
		}
		result = e.Sink.Pow(lv, exp.Uint64())
	default:
		return nil, errs.IncompatibleTypesErr(opSymbol2(op), span)
	}
	return e.foldResult(kind, intKind, result), nil
}

// groupOp only supports point addition/subtraction; scalar multiplication of
// a group element requires curve arithmetic this engine delegates entirely
// to the external gadget library and never performs on raw coordinates, so
// anything but +/- is rejected here rather than guessed at.
func (e *Engine) groupOp(op opKind, l, r value.Group, span source.Span) (value.Value, error) {
	if op != opAdd && op != opSub {
		return nil, errs.IncompatibleTypesErr(opSymbol2(op)+" on group", span)
	}
	lv, _, _, err := variableOf(l, span)
	if err != nil {
		return nil, err
	}
	rv, _, _, err := variableOf(r, span)
	if err != nil {
		return nil, err
	}
	var result sink.Variable
	if op == opAdd {
		result = e.Sink.Add(lv, rv)
	} else {
		result = e.Sink.Sub(lv, rv)
	}
	return e.foldResult(value.KindGroup, 0, result), nil
}

func opSymbol2(op opKind) string {
	switch op {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "/"
	case opPow:
		return "**"
	}
	return "?"
}

// selectValue implements the ternary conditional structurally: scalar kinds
// delegate to sink.Select; compound kinds (Array/Tuple/CircuitInstance)
// recurse member-by-member, since a ConstraintSink only ever selects between
// two single wires.
func (e *Engine) selectValue(cond value.Boolean, a, b value.Value, span source.Span) (value.Value, error) {
	if a.Kind() != b.Kind() {
		return nil, errs.IncompatibleTypesErr("ternary branches", span)
	}
	condVar, _, _, err := variableOf(cond, span)
	if err != nil {
		return nil, err
	}

	switch a.Kind() {
	case value.KindBoolean, value.KindInteger, value.KindField, value.KindGroup, value.KindScalar:
		av, kind, intKind, err := variableOf(a, span)
		if err != nil {
			return nil, err
		}
		bv, _, _, err := variableOf(b, span)
		if err != nil {
			return nil, err
		}
		result := e.Sink.Select(condVar, av, bv)
		return e.foldResult(kind, intKind, result), nil
	case value.KindArray:
		aa, bb := a.(value.Array), b.(value.Array)
		if len(aa.Values) != len(bb.Values) {
			return nil, errs.InvalidLengthErr(len(aa.Values), len(bb.Values), span)
		}
		out := make([]value.Value, len(aa.Values))
		for i := range aa.Values {
			v, err := e.selectValue(cond, aa.Values[i], bb.Values[i], span)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return value.Array{Values: out}, nil
	case value.KindTuple:
		aa, bb := a.(value.Tuple), b.(value.Tuple)
		if len(aa.Values) != len(bb.Values) {
			return nil, errs.InvalidLengthErr(len(aa.Values), len(bb.Values), span)
		}
		out := make([]value.Value, len(aa.Values))
		for i := range aa.Values {
			v, err := e.selectValue(cond, aa.Values[i], bb.Values[i], span)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return value.Tuple{Values: out}, nil
	case value.KindCircuitInstance:
		aa, bb := a.(value.CircuitInstance), b.(value.CircuitInstance)
		if aa.Name != bb.Name || len(aa.Members) != len(bb.Members) {
			return nil, errs.IncompatibleTypesErr("ternary branches", span)
		}
		members := make([]value.Member, len(aa.Members))
		for i := range aa.Members {
			v, err := e.selectValue(cond, aa.Members[i].Value, bb.Members[i].Value, span)
			if err != nil {
				return nil, err
			}
			members[i] = value.Member{Name: aa.Members[i].Name, Value: v}
		}
		return value.CircuitInstance{Name: aa.Name, Members: members}, nil
	}
	return nil, errs.IncompatibleTypesErr("ternary branches", span)
}
