package eval

import (
	"context"
	"math/big"
	"reflect"

	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/scope"
	"leolang.dev/synth/internal/value"
)

// Enforce is the StatementEnforcer: it drives the ExpressionEvaluator from
// a statement list, returning the function's Return payload the first time
// a ReturnStmt is reached (nil if control falls off the end without one).
// Conditional/For bodies are walked with the same Frame as their parent —
// there is no per-block child scope, matching ScopeTable's flat, tiering-
// only-by-prefix design. A For body's Let simply shadows (by later Store
// winning) whatever the same name held in the enclosing function scope; a
// Conditional branch under a non-constant condition instead runs against a
// scope fork that enforceConditionalSelect discards once both branches have
// been folded back into one merged write.
func (e *Engine) Enforce(ctx context.Context, frame Frame, stmts []ast.Statement) (*value.Return, error) {
	for _, stmt := range stmts {
		ret, err := e.enforceOne(ctx, frame, stmt)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
	}
	return nil, nil
}

func (e *Engine) enforceOne(ctx context.Context, frame Frame, stmt ast.Statement) (*value.Return, error) {
	switch s := stmt.(type) {
	case ast.Let:
		return nil, e.enforceLet(ctx, frame, s)
	case ast.Assign:
		return nil, e.enforceAssign(ctx, frame, s)
	case ast.Conditional:
		return e.enforceConditional(ctx, frame, s)
	case ast.For:
		return e.enforceFor(ctx, frame, s)
	case ast.ReturnStmt:
		return e.enforceReturn(ctx, frame, s)
	case ast.ExprStatement:
		_, err := e.Eval(ctx, frame, nil, s.Value)
		return nil, err
	}
	return nil, errs.IncompatibleTypesErr("unhandled statement", stmt.Span())
}

func (e *Engine) enforceLet(ctx context.Context, frame Frame, l ast.Let) error {
	var expected []ast.Type
	if l.Type != nil {
		expected = []ast.Type{l.Type}
	}
	v, err := e.Eval(ctx, frame, expected, l.Value)
	if err != nil {
		return err
	}
	if len(l.Names) == 1 {
		e.Scope.Store(scope.Key(frame.FnScope, l.Names[0]), v)
		return nil
	}

	ret, ok := v.(value.Return)
	if !ok {
		return errs.InvalidLengthErr(len(l.Names), 1, l.Span())
	}
	if len(ret.Values) != len(l.Names) {
		return errs.InvalidLengthErr(len(l.Names), len(ret.Values), l.Span())
	}
	for i, name := range l.Names {
		e.Scope.Store(scope.Key(frame.FnScope, name), ret.Values[i])
	}
	return nil
}

func (e *Engine) enforceAssign(ctx context.Context, frame Frame, a ast.Assign) error {
	v, err := e.Eval(ctx, frame, nil, a.Value)
	if err != nil {
		return err
	}

	switch target := a.Target.(type) {
	case ast.IdentifierExpr:
		key, ok := e.Scope.ResolveKey(frame.FileScope, frame.FnScope, target.Ident.Name)
		if !ok {
			return errs.UndefinedIdentifierErr(target.Ident.Name, a.Span())
		}
		e.Scope.Store(key, v)
		return nil

	case ast.CircuitMemberAccess:
		return e.enforceCircuitFieldAssign(ctx, frame, target, v)

	case ast.ArrayAccess:
		return e.enforceArrayElementAssign(ctx, frame, target, v)
	}
	return errs.InvalidMemberAccessErr(a.Target.Span().String(), a.Span())
}

// enforceCircuitFieldAssign implements the receiver-field write-through: the
// circuit instance is re-read from whichever scope tier last bound it,
// mutated in place (Members is a fresh slice, never aliasing the old
// instance's), and stored back under that same key.
func (e *Engine) enforceCircuitFieldAssign(ctx context.Context, frame Frame, target ast.CircuitMemberAccess, v value.Value) error {
	ident, ok := target.Circuit.(ast.IdentifierExpr)
	if !ok {
		return errs.InvalidMemberAccessErr(target.Member.Name, target.Span())
	}
	key, ok := e.Scope.ResolveKey(frame.FileScope, frame.FnScope, ident.Ident.Name)
	if !ok {
		return errs.UndefinedIdentifierErr(ident.Ident.Name, target.Span())
	}
	current, ok := e.Scope.Get(key)
	if !ok {
		return errs.UndefinedIdentifierErr(ident.Ident.Name, target.Span())
	}
	inst, ok := current.(value.CircuitInstance)
	if !ok {
		return errs.InvalidMemberAccessErr(target.Member.Name, target.Span())
	}
	members := make([]value.Member, len(inst.Members))
	copy(members, inst.Members)
	found := false
	for i, m := range members {
		if m.Name == target.Member.Name {
			members[i] = value.Member{Name: m.Name, Value: v}
			found = true
			break
		}
	}
	if !found {
		return errs.UndefinedMemberAccessErr(inst.Name, target.Member.Name, target.Span())
	}
	e.Scope.Store(key, value.CircuitInstance{Name: inst.Name, Members: members})
	return nil
}

func (e *Engine) enforceArrayElementAssign(ctx context.Context, frame Frame, target ast.ArrayAccess, v value.Value) error {
	ident, ok := target.Array.(ast.IdentifierExpr)
	if !ok {
		return errs.InvalidIndexErr(target.Array.Span().String(), target.Span())
	}
	key, ok := e.Scope.ResolveKey(frame.FileScope, frame.FnScope, ident.Ident.Name)
	if !ok {
		return errs.UndefinedIdentifierErr(ident.Ident.Name, target.Span())
	}
	current, ok := e.Scope.Get(key)
	if !ok {
		return errs.UndefinedIdentifierErr(ident.Ident.Name, target.Span())
	}
	arr, ok := current.(value.Array)
	if !ok {
		return errs.UndefinedArrayErr(current.Display(), target.Span())
	}
	if target.Index.IsRange {
		return errs.InvalidIndexErr("range", target.Span())
	}
	idxVal, err := e.Eval(ctx, frame, nil, target.Index.Index)
	if err != nil {
		return err
	}
	idx, ok := idxVal.(value.Integer)
	if !ok || idx.Const == nil || !idx.Const.IsInt64() {
		return errs.InvalidIndexErr(idxVal.Display(), target.Span())
	}
	i := int(idx.Const.Int64())
	if i < 0 || i >= len(arr.Values) {
		return errs.IndexOutOfBoundsErr(i, i+1, len(arr.Values), target.Span())
	}
	values := make([]value.Value, len(arr.Values))
	copy(values, arr.Values)
	values[i] = v
	e.Scope.Store(key, value.Array{Values: values})
	return nil
}

// enforceConditional implements StatementEnforcer's Conditional rule. A
// compile-time-constant condition takes the fast path: only the taken
// branch actually runs, since there is nothing to hide from the prover
// either way. A wire-valued condition cannot skip a branch — doing so would
// make the constraint set itself depend on a secret — so both branches run
// to completion against their own shadow-scope fork, and every name either
// branch actually touched is merged back into the real scope via
// enforceConditionalSelect, never by picking one branch's Assigns over the
// other's.
func (e *Engine) enforceConditional(ctx context.Context, frame Frame, c ast.Conditional) (*value.Return, error) {
	cv, err := e.Eval(ctx, frame, []ast.Type{ast.TBoolean{}}, c.Cond)
	if err != nil {
		return nil, err
	}
	cond, ok := cv.(value.Boolean)
	if !ok {
		return nil, errs.ConditionalBooleanErr(cv.Display(), c.Span())
	}
	if cond.Const != nil {
		if *cond.Const {
			return e.Enforce(ctx, frame, c.Then)
		}
		return e.Enforce(ctx, frame, c.Else)
	}
	return e.enforceConditionalSelect(ctx, frame, c, cond)
}

// enforceConditionalSelect runs both of a wire-conditioned if/else's
// branches against independent forks of the current scope, then folds the
// two forks back into one: for every name the base scope already held,
// Sink.Select(cond, thenValue, elseValue) picks the live value, and that
// selected value — never either branch's raw Assign — is what ends up
// back in the real scope. Names introduced fresh by only one branch (a Let
// local to that block) are dropped when the fork is discarded, matching
// ordinary block scoping. A Return reached inside either branch can't be
// lowered this way (skipping the rest of the function conditionally is
// host control flow, not a constraint), so it is rejected outright.
func (e *Engine) enforceConditionalSelect(ctx context.Context, frame Frame, c ast.Conditional, cond value.Boolean) (*value.Return, error) {
	base := e.Scope.Snapshot()

	e.Scope.Restore(base)
	thenRet, err := e.Enforce(ctx, frame, c.Then)
	if err != nil {
		return nil, err
	}
	afterThen := e.Scope.Snapshot()

	e.Scope.Restore(base)
	elseRet, err := e.Enforce(ctx, frame, c.Else)
	if err != nil {
		return nil, err
	}
	afterElse := e.Scope.Snapshot()

	if thenRet != nil || elseRet != nil {
		return nil, errs.NonConstantReturnErr(c.Span())
	}

	merged := make(map[string]value.Value, len(base))
	for key, baseVal := range base {
		thenVal, elseVal := afterThen[key], afterElse[key]
		if reflect.DeepEqual(thenVal, baseVal) && reflect.DeepEqual(elseVal, baseVal) {
			merged[key] = baseVal
			continue
		}
		selected, err := e.selectValue(cond, thenVal, elseVal, c.Span())
		if err != nil {
			return nil, err
		}
		merged[key] = selected
	}
	e.Scope.Restore(merged)
	return nil, nil
}

// enforceFor requires both loop bounds to be compile-time constants (the
// synthesized circuit has a fixed constraint count, so the number of
// unrolled iterations must be known at compile time), per
// NonConstantLoopBoundErr.
func (e *Engine) enforceFor(ctx context.Context, frame Frame, f ast.For) (*value.Return, error) {
	fromVal, err := e.Eval(ctx, frame, nil, f.From)
	if err != nil {
		return nil, err
	}
	toVal, err := e.Eval(ctx, frame, nil, f.To)
	if err != nil {
		return nil, err
	}
	from, ok1 := fromVal.(value.Integer)
	to, ok2 := toVal.(value.Integer)
	if !ok1 || !ok2 || from.Const == nil || to.Const == nil {
		return nil, errs.NonConstantLoopBoundErr(f.Span())
	}

	start, end := from.Const.Int64(), to.Const.Int64()
	for i := start; i < end; i++ {
		iv := value.Integer{IntKind: from.IntKind, Const: big.NewInt(i)}
		e.Scope.Store(scope.Key(frame.FnScope, f.Var), iv)
		ret, err := e.Enforce(ctx, frame, f.Body)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
	}
	return nil, nil
}

func (e *Engine) enforceReturn(ctx context.Context, frame Frame, r ast.ReturnStmt) (*value.Return, error) {
	values := make([]value.Value, len(r.Values))
	for i, expr := range r.Values {
		v, err := e.Eval(ctx, frame, nil, expr)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	ret := value.Return{Values: values}
	return &ret, nil
}
