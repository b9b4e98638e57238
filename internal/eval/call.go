package eval

import (
	"context"

	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/scope"
	"leolang.dev/synth/internal/value"
)

// evalFunctionCall is FunctionCallFrame: resolve the callee (a free
// function, a static method, or a bound instance method), bind arguments
// into a new function scope, run the body through the StatementEnforcer,
// and unwrap its Return. A called function's scope key is its own name:
// this engine does not give concurrent/recursive calls to the same
// function distinct scope frames,
// so a function that both recurses and mutates a parameter through Assign
// can, in principle, alias across call depths. That risk is accepted, not
// silently patched, in exchange for not needing a fresh frame per call.
func (e *Engine) evalFunctionCall(ctx context.Context, frame Frame, fc ast.FunctionCall) (value.Value, error) {
	span := fc.Span()

	var fn value.Function
	var self *value.CircuitInstance

	switch callee := fc.Callee.(type) {
	case ast.CircuitMemberAccess:
		cv, err := e.Eval(ctx, frame, nil, callee.Circuit)
		if err != nil {
			return nil, err
		}
		inst, ok := cv.(value.CircuitInstance)
		if !ok {
			return nil, errs.NotAFunctionErr(cv.Display(), span)
		}
		def, ok := e.Defs.FindCircuitByName(inst.Name)
		if !ok {
			return nil, errs.UndefinedCircuitErr(inst.Name, span)
		}
		circuitDef := e.Defs.Circuit(def.ID)
		m, ok := findMethod(circuitDef.Methods, callee.Member.Name)
		if !ok {
			return nil, errs.UndefinedMemberAccessErr(inst.Name, callee.Member.Name, span)
		}
		if m.Static {
			return nil, errs.InvalidStaticAccessErr(callee.Member.Name, span)
		}
		fnID, ok := e.methodIDs[methodKey{Circuit: inst.Name, Method: callee.Member.Name}]
		if !ok {
			return nil, errs.UndefinedMemberAccessErr(inst.Name, callee.Member.Name, span)
		}
		fn = value.Function{OwnerCircuit: inst.Name, DefID: fnID}
		inst2 := inst
		self = &inst2

	default:
		v, err := e.Eval(ctx, frame, nil, fc.Callee)
		if err != nil {
			return nil, err
		}
		fn, err = value.ExtractFunction(v, span)
		if err != nil {
			return nil, err
		}
	}

	def := e.Defs.Function(fn.DefID)

	if err := e.enterCall(ctx, def.Name, span); err != nil {
		return nil, err
	}
	defer e.exitCall()

	if len(fc.Arguments) != len(def.Parameters) {
		return nil, errs.InvalidLengthErr(len(def.Parameters), len(fc.Arguments), span)
	}

	callFrame := Frame{FileScope: frame.FileScope, FnScope: def.Name}

	if self != nil {
		e.Scope.Store(scope.Key(callFrame.FnScope, "self"), *self)
	}
	for i, param := range def.Parameters {
		argVal, err := e.Eval(ctx, frame, []ast.Type{param.Type}, fc.Arguments[i])
		if err != nil {
			return nil, err
		}
		e.Scope.Store(scope.Key(callFrame.FnScope, param.Name), argVal)
	}

	ret, err := e.Enforce(ctx, callFrame, def.Body)
	if err != nil {
		return nil, err
	}

	if self != nil {
		if updated, ok := e.Scope.Get(scope.Key(callFrame.FnScope, "self")); ok {
			if inst, ok := updated.(value.CircuitInstance); ok {
				e.writeBack(frame, fc.Callee, inst)
			}
		}
	}

	if ret == nil {
		if len(def.Returns) > 0 {
			return nil, errs.FunctionNoReturnErr(def.Name, span)
		}
		return value.Return{}, nil
	}

	retVal := *ret
	if len(retVal.Values) == 1 {
		return retVal.Values[0], nil
	}
	return retVal, nil
}

// writeBack propagates a method's mutations of `self` back into whichever
// binding the receiver expression was originally read from, so
// `x.mutate(); x.field` observes the mutation. Only a bare identifier
// receiver can be written back to; a receiver that is itself a temporary
// (e.g. the result of another call) has nowhere to write to and is silently
// dropped, matching value semantics for non-addressable expressions.
func (e *Engine) writeBack(frame Frame, calleeExpr ast.Expression, inst value.CircuitInstance) {
	ma, ok := calleeExpr.(ast.CircuitMemberAccess)
	if !ok {
		return
	}
	ident, ok := ma.Circuit.(ast.IdentifierExpr)
	if !ok {
		return
	}
	key, ok := e.Scope.ResolveKey(frame.FileScope, frame.FnScope, ident.Ident.Name)
	if !ok {
		return
	}
	e.Scope.Store(key, inst)
}
