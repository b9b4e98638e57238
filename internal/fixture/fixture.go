// Package fixture decodes a YAML description of a resolved Leo program into
// the engine's internal/ast types, for cmd/synthfixture and for engine
// tests that would rather write a circuit as data than as nested Go struct
// literals. It mirrors a cuetxtar-style pattern of
// driving tests off on-disk fixtures rather than hand-built ASTs, adapted
// from txtar-plus-Go-structs to a single YAML document since a Leo program
// fixture is naturally tree-shaped rather than multi-file-archive-shaped.
//
// The schema only covers the expression/statement forms a hand-written test
// fixture plausibly needs; anything more exotic (nested spreads inside
// circuit literals, deeply nested ternaries-of-ternaries) is easier and
// clearer to build directly against internal/ast in Go.
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/source"
)

// Program is the top-level YAML document shape.
type Program struct {
	Circuits  []Circuit  `yaml:"circuits"`
	Functions []Function `yaml:"functions"`
	Entry     string     `yaml:"entry"`
}

type Circuit struct {
	Name    string   `yaml:"name"`
	Fields  []Field  `yaml:"fields"`
	Methods []Method `yaml:"methods"`
}

type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type Method struct {
	Static bool     `yaml:"static"`
	Def    Function `yaml:"def"`
}

type Function struct {
	Name       string      `yaml:"name"`
	Parameters []Parameter `yaml:"parameters"`
	Returns    []string    `yaml:"returns"`
	Body       []Stmt      `yaml:"body"`
}

type Parameter struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Stmt is a tagged union over the statement kinds in internal/ast/stmt.go.
// Exactly one of its fields should be set, selected by Kind.
type Stmt struct {
	Kind string `yaml:"kind"`

	Names []string `yaml:"names,omitempty"`
	Type  string   `yaml:"type,omitempty"`
	Value *Expr    `yaml:"value,omitempty"`

	Target *Expr `yaml:"target,omitempty"`

	Cond *Expr  `yaml:"cond,omitempty"`
	Then []Stmt `yaml:"then,omitempty"`
	Else []Stmt `yaml:"else,omitempty"`

	Var  string `yaml:"var,omitempty"`
	From *Expr  `yaml:"from,omitempty"`
	To   *Expr  `yaml:"to,omitempty"`
	Body []Stmt `yaml:"loopBody,omitempty"`

	Values []Expr `yaml:"values,omitempty"`
}

// Expr is a tagged union over internal/ast/expr.go's expression kinds.
type Expr struct {
	Kind string `yaml:"kind"`

	Name    string `yaml:"name,omitempty"`
	Literal string `yaml:"literal,omitempty"`
	Bool    bool   `yaml:"bool,omitempty"`
	IntKind string `yaml:"intKind,omitempty"`

	Op          string `yaml:"op,omitempty"`
	Left, Right *Expr  `yaml:"left,omitempty"`
	Inner       *Expr  `yaml:"inner,omitempty"`

	Elements []ArrayElem `yaml:"elements,omitempty"`

	Array *Expr  `yaml:"array,omitempty"`
	Index *Expr  `yaml:"index,omitempty"`
	From  *Expr  `yaml:"indexFrom,omitempty"`
	To    *Expr  `yaml:"indexTo,omitempty"`
	IsRange bool `yaml:"isRange,omitempty"`

	Circuit string        `yaml:"circuit,omitempty"`
	Fields  []FieldInit   `yaml:"fields,omitempty"`
	Member  string        `yaml:"member,omitempty"`
	Receiver *Expr        `yaml:"receiver,omitempty"`

	Callee    *Expr  `yaml:"callee,omitempty"`
	Arguments []Expr `yaml:"arguments,omitempty"`

	IfCond *Expr `yaml:"ifCond,omitempty"`
	IfThen *Expr `yaml:"ifThen,omitempty"`
	IfElse *Expr `yaml:"ifElse,omitempty"`
}

type ArrayElem struct {
	Spread bool  `yaml:"spread,omitempty"`
	Expr   *Expr `yaml:"expr"`
}

type FieldInit struct {
	Name string `yaml:"name"`
	Expr *Expr  `yaml:"expr"`
}

// Parse decodes raw YAML bytes into a Program.
func Parse(data []byte) (*Program, error) {
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return &p, nil
}

// Build converts a decoded Program into internal/ast.Program, the shape the
// engine actually consumes.
func (p *Program) Build() (*ast.Program, error) {
	out := &ast.Program{Entry: p.Entry}
	for _, c := range p.Circuits {
		cd, err := c.build()
		if err != nil {
			return nil, err
		}
		out.Circuits = append(out.Circuits, cd)
	}
	for _, f := range p.Functions {
		fd, err := f.build()
		if err != nil {
			return nil, err
		}
		out.Functions = append(out.Functions, fd)
	}
	return out, nil
}

func (c Circuit) build() (ast.CircuitDef, error) {
	def := ast.CircuitDef{Name: c.Name}
	for _, f := range c.Fields {
		t, err := parseType(f.Type)
		if err != nil {
			return def, err
		}
		def.Fields = append(def.Fields, ast.CircuitFieldDef{Name: f.Name, Type: t})
	}
	for _, m := range c.Methods {
		fd, err := m.Def.build()
		if err != nil {
			return def, err
		}
		def.Methods = append(def.Methods, ast.CircuitMethodDef{Static: m.Static, Def: fd})
	}
	return def, nil
}

func (f Function) build() (ast.FunctionDef, error) {
	def := ast.FunctionDef{Name: f.Name}
	for _, p := range f.Parameters {
		t, err := parseType(p.Type)
		if err != nil {
			return def, err
		}
		def.Parameters = append(def.Parameters, ast.Parameter{Name: p.Name, Type: t})
	}
	for _, r := range f.Returns {
		t, err := parseType(r)
		if err != nil {
			return def, err
		}
		def.Returns = append(def.Returns, t)
	}
	for _, s := range f.Body {
		st, err := s.build()
		if err != nil {
			return def, err
		}
		def.Body = append(def.Body, st)
	}
	return def, nil
}

// parseType maps a short type name ("u8", "field", "bool", "group",
// "scalar", "address", "Self", or a bare circuit name) to an ast.Type. Array
// and tuple types are deliberately not expressible in this short form; a
// fixture needing one should be hand-authored in Go against internal/ast.
func parseType(name string) (ast.Type, error) {
	switch name {
	case "bool":
		return ast.TBoolean{}, nil
	case "address":
		return ast.TAddress{}, nil
	case "field":
		return ast.TField{}, nil
	case "group":
		return ast.TGroup{}, nil
	case "scalar":
		return ast.TScalar{}, nil
	case "Self":
		return ast.TSelf{}, nil
	}
	if kind, ok := integerKind(name); ok {
		return kind, nil
	}
	return ast.TCircuit{Name: name}, nil
}

func integerKind(name string) (ast.TInteger, bool) {
	widths := map[string]int{"8": 8, "16": 16, "32": 32, "64": 64, "128": 128}
	if len(name) < 2 {
		return ast.TInteger{}, false
	}
	signed := name[0] == 'i'
	if !signed && name[0] != 'u' {
		return ast.TInteger{}, false
	}
	w, ok := widths[name[1:]]
	if !ok {
		return ast.TInteger{}, false
	}
	return ast.TInteger{Width: w, Signed: signed}, true
}

func (s Stmt) build() (ast.Statement, error) {
	span := source.NoSpan
	switch s.Kind {
	case "let":
		v, err := s.Value.build()
		if err != nil {
			return nil, err
		}
		var t ast.Type
		if s.Type != "" {
			var err error
			t, err = parseType(s.Type)
			if err != nil {
				return nil, err
			}
		}
		return ast.Let{Names: s.Names, Type: t, Value: v}, nil

	case "assign":
		target, err := s.Target.build()
		if err != nil {
			return nil, err
		}
		v, err := s.Value.build()
		if err != nil {
			return nil, err
		}
		return ast.Assign{Target: target, Value: v}, nil

	case "if":
		cond, err := s.Cond.build()
		if err != nil {
			return nil, err
		}
		thenStmts, err := buildStmts(s.Then)
		if err != nil {
			return nil, err
		}
		elseStmts, err := buildStmts(s.Else)
		if err != nil {
			return nil, err
		}
		return ast.Conditional{Cond: cond, Then: thenStmts, Else: elseStmts}, nil

	case "for":
		from, err := s.From.build()
		if err != nil {
			return nil, err
		}
		to, err := s.To.build()
		if err != nil {
			return nil, err
		}
		body, err := buildStmts(s.Body)
		if err != nil {
			return nil, err
		}
		return ast.For{Var: s.Var, From: from, To: to, Body: body}, nil

	case "return":
		values := make([]ast.Expression, len(s.Values))
		for i := range s.Values {
			v, err := s.Values[i].build()
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return ast.ReturnStmt{Values: values}, nil

	case "expr":
		v, err := s.Value.build()
		if err != nil {
			return nil, err
		}
		return ast.ExprStatement{Value: v}, nil
	}
	return nil, fmt.Errorf("fixture: unknown statement kind %q at %s", s.Kind, span)
}

func buildStmts(stmts []Stmt) ([]ast.Statement, error) {
	out := make([]ast.Statement, len(stmts))
	for i, s := range stmts {
		st, err := s.build()
		if err != nil {
			return nil, err
		}
		out[i] = st
	}
	return out, nil
}

var binOps = map[string]ast.BinOp{
	"+": ast.OpAdd, "-": ast.OpSub, "*": ast.OpMul, "/": ast.OpDiv, "**": ast.OpPow,
	"&&": ast.OpAnd, "||": ast.OpOr, "==": ast.OpEq,
	">=": ast.OpGe, ">": ast.OpGt, "<=": ast.OpLe, "<": ast.OpLt,
}

func (e *Expr) build() (ast.Expression, error) {
	if e == nil {
		return nil, fmt.Errorf("fixture: nil expression")
	}
	switch e.Kind {
	case "ident":
		return ast.NewIdentifierExpr(ast.Identifier{Name: e.Name}), nil
	case "int":
		kind, ok := integerKind(e.IntKind)
		if !ok {
			return nil, fmt.Errorf("fixture: bad integer kind %q", e.IntKind)
		}
		return ast.IntegerLit{IntKind: kind, Literal: e.Literal}, nil
	case "field":
		return ast.FieldLit{Literal: e.Literal}, nil
	case "group":
		return ast.GroupLit{Literal: e.Literal}, nil
	case "scalar":
		return ast.ScalarLit{Literal: e.Literal}, nil
	case "bool":
		return ast.BooleanLit{Value: e.Bool}, nil
	case "address":
		return ast.AddressLit{Literal: e.Literal}, nil
	case "string":
		return ast.StringLit{Literal: e.Literal}, nil
	case "implicit":
		return ast.Implicit{Literal: e.Literal}, nil
	case "binary":
		op, ok := binOps[e.Op]
		if !ok {
			return nil, fmt.Errorf("fixture: unknown operator %q", e.Op)
		}
		l, err := e.Left.build()
		if err != nil {
			return nil, err
		}
		r, err := e.Right.build()
		if err != nil {
			return nil, err
		}
		return ast.Binary{Op: op, Left: l, Right: r}, nil
	case "not":
		inner, err := e.Inner.build()
		if err != nil {
			return nil, err
		}
		return ast.Not{Inner: inner}, nil
	case "ternary":
		cond, err := e.IfCond.build()
		if err != nil {
			return nil, err
		}
		then, err := e.IfThen.build()
		if err != nil {
			return nil, err
		}
		els, err := e.IfElse.build()
		if err != nil {
			return nil, err
		}
		return ast.IfElse{Cond: cond, Then: then, Else: els}, nil
	case "array":
		elems := make([]ast.SpreadElement, len(e.Elements))
		for i, el := range e.Elements {
			ex, err := el.Expr.build()
			if err != nil {
				return nil, err
			}
			elems[i] = ast.SpreadElement{Spread: el.Spread, Expr: ex}
		}
		return ast.ArrayLit{Elements: elems}, nil
	case "index":
		arr, err := e.Array.build()
		if err != nil {
			return nil, err
		}
		if e.IsRange {
			var from, to ast.Expression
			if e.From != nil {
				from, err = e.From.build()
				if err != nil {
					return nil, err
				}
			}
			if e.To != nil {
				to, err = e.To.build()
				if err != nil {
					return nil, err
				}
			}
			return ast.ArrayAccess{Array: arr, Index: ast.RangeOrIndex{IsRange: true, From: from, To: to}}, nil
		}
		idx, err := e.Index.build()
		if err != nil {
			return nil, err
		}
		return ast.ArrayAccess{Array: arr, Index: ast.RangeOrIndex{Index: idx}}, nil
	case "circuitLit":
		fields := make([]ast.CircuitFieldInit, len(e.Fields))
		for i, f := range e.Fields {
			ex, err := f.Expr.build()
			if err != nil {
				return nil, err
			}
			fields[i] = ast.CircuitFieldInit{Name: f.Name, Expression: ex}
		}
		return ast.CircuitLit{Name: ast.Identifier{Name: e.Circuit}, Fields: fields}, nil
	case "member":
		recv, err := e.Receiver.build()
		if err != nil {
			return nil, err
		}
		return ast.CircuitMemberAccess{Circuit: recv, Member: ast.Identifier{Name: e.Member}}, nil
	case "static":
		recv, err := e.Receiver.build()
		if err != nil {
			return nil, err
		}
		return ast.CircuitStaticAccess{Circuit: recv, Member: ast.Identifier{Name: e.Member}}, nil
	case "call":
		callee, err := e.Callee.build()
		if err != nil {
			return nil, err
		}
		args := make([]ast.Expression, len(e.Arguments))
		for i := range e.Arguments {
			a, err := e.Arguments[i].build()
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return ast.FunctionCall{Callee: callee, Arguments: args}, nil
	}
	return nil, fmt.Errorf("fixture: unknown expression kind %q", e.Kind)
}
