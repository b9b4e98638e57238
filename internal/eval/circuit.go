package eval

import (
	"context"

	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/value"
)

// evalCircuitLit is CircuitInstantiator's literal-construction rule: fields
// are evaluated in the literal's own order (so earlier initializers can be
// referenced... they can't, Leo circuit literals have no field-to-field
// visibility, but evaluation order still must be deterministic) and then
// reassembled into the circuit definition's declared field order, so two
// instances built from permuted-but-equal literals always compare/Display
// identically.
func (e *Engine) evalCircuitLit(ctx context.Context, frame Frame, cl ast.CircuitLit) (value.Value, error) {
	span := cl.Span()
	def, ok := e.Defs.FindCircuitByName(cl.Name.Name)
	if !ok {
		return nil, errs.UndefinedCircuitErr(cl.Name.Name, span)
	}
	circuitDef := e.Defs.Circuit(def.ID)

	provided := make(map[string]value.Value, len(cl.Fields))
	for _, f := range cl.Fields {
		fieldDef, ok := findField(circuitDef.Fields, f.Name)
		if !ok {
			return nil, errs.InvalidMemberAccessErr(f.Name, span)
		}
		v, err := e.Eval(ctx, frame, []ast.Type{fieldDef.Type}, f.Expression)
		if err != nil {
			return nil, err
		}
		provided[f.Name] = v
	}

	members := make([]value.Member, len(circuitDef.Fields))
	for i, fd := range circuitDef.Fields {
		v, ok := provided[fd.Name]
		if !ok {
			return nil, errs.ExpectedCircuitMemberErr(fd.Name, span)
		}
		members[i] = value.Member{Name: fd.Name, Value: v}
	}

	return value.CircuitInstance{Name: circuitDef.Name, Members: members}, nil
}

func findField(fields []ast.CircuitFieldDef, name string) (ast.CircuitFieldDef, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return ast.CircuitFieldDef{}, false
}

func findMethod(methods []ast.CircuitMethodDef, name string) (ast.CircuitMethodDef, bool) {
	for _, m := range methods {
		if m.Def.Name == name {
			return m, true
		}
	}
	return ast.CircuitMethodDef{}, false
}

// evalCircuitMemberAccess reads a data field off a circuit instance. Method
// access (`foo.method()`) never reaches here directly — FunctionCall
// special-cases a CircuitMemberAccess callee before evaluating it as a plain
// member read, since a bound method isn't a Value the circuit instance
// carries as one of its Members.
func (e *Engine) evalCircuitMemberAccess(ctx context.Context, frame Frame, ma ast.CircuitMemberAccess) (value.Value, error) {
	span := ma.Span()
	cv, err := e.Eval(ctx, frame, nil, ma.Circuit)
	if err != nil {
		return nil, err
	}
	inst, ok := cv.(value.CircuitInstance)
	if !ok {
		return nil, errs.InvalidMemberAccessErr(ma.Member.Name, span)
	}
	m, ok := inst.Find(ma.Member.Name)
	if !ok {
		return nil, errs.UndefinedMemberAccessErr(inst.Name, ma.Member.Name, span)
	}
	return m.Value, nil
}

// evalCircuitStaticAccess resolves `Circuit::member`: the member must name a
// static method, never a data field (circuits have no static data, so an
// unknown member is UndefinedMemberAccess regardless) and never an instance
// method — naming one here is InvalidMemberAccess, since an instance method
// needs a receiver and simply isn't reachable through `Circuit::` at all.
func (e *Engine) evalCircuitStaticAccess(ctx context.Context, frame Frame, sa ast.CircuitStaticAccess) (value.Value, error) {
	span := sa.Span()
	def, err := e.circuitTypeValue(ctx, frame, sa.Circuit)
	if err != nil {
		return nil, err
	}
	circuitDef := e.Defs.Circuit(def.ID)
	m, ok := findMethod(circuitDef.Methods, sa.Member.Name)
	if !ok {
		return nil, errs.UndefinedMemberAccessErr(circuitDef.Name, sa.Member.Name, span)
	}
	if !m.Static {
		return nil, errs.InvalidMemberAccessErr(sa.Member.Name, span)
	}
	fnID, ok := e.methodIDs[methodKey{circuitDef.Name, sa.Member.Name}]
	if !ok {
		return nil, errs.UndefinedMemberAccessErr(circuitDef.Name, sa.Member.Name, span)
	}
	return value.Static{Inner: value.Function{OwnerCircuit: circuitDef.Name, DefID: fnID}}, nil
}
