package value

import (
	"fmt"
	"strings"
)

// Display produces the diagnostic string for v. It must match what the
// original Leo compiler's Display impl produces for error interpolation
// (e.g. "1u8 + 1u16"): literal value, then (for numerics) the kind suffix.
func Display(v Value) string {
	return v.Display()
}

func (b Boolean) Display() string {
	if b.Const != nil {
		return fmt.Sprintf("%t", *b.Const)
	}
	return "[allocated bool]"
}

func (n Integer) Display() string {
	if n.Const != nil {
		return fmt.Sprintf("%s%s", n.Const.String(), n.IntKind)
	}
	return fmt.Sprintf("[allocated %s]", n.IntKind)
}

func (f Field) Display() string {
	if f.Const != nil {
		return fmt.Sprintf("%sfield", f.Const.String())
	}
	return "[allocated field]"
}

func (g Group) Display() string {
	if g.Const != nil {
		return fmt.Sprintf("(%s, %s)group", g.Const.X.String(), g.Const.Y.String())
	}
	return "[allocated group]"
}

func (s Scalar) Display() string {
	if s.Const != nil {
		return fmt.Sprintf("%sscalar", s.Const.String())
	}
	return "[allocated scalar]"
}

func (a Array) Display() string {
	parts := make([]string, len(a.Values))
	for i, e := range a.Values {
		parts[i] = e.Display()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (t Tuple) Display() string {
	parts := make([]string, len(t.Values))
	for i, e := range t.Values {
		parts[i] = e.Display()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (c CircuitInstance) Display() string {
	parts := make([]string, len(c.Members))
	for i, m := range c.Members {
		parts[i] = fmt.Sprintf("%s: %s", m.Name, m.Value.Display())
	}
	return c.Name + " {" + strings.Join(parts, ", ") + "}"
}

func (c CircuitDefinition) Display() string { return fmt.Sprintf("circuit#%d", c.ID) }

func (f Function) Display() string {
	if f.OwnerCircuit != "" {
		return fmt.Sprintf("%s::fn#%d", f.OwnerCircuit, f.DefID)
	}
	return fmt.Sprintf("fn#%d", f.DefID)
}

func (s Static) Display() string { return "static " + s.Inner.Display() }

func (u Unresolved) Display() string { return u.Literal }

func (r Return) Display() string {
	parts := make([]string, len(r.Values))
	for i, v := range r.Values {
		parts[i] = v.Display()
	}
	return "return (" + strings.Join(parts, ", ") + ")"
}

func (a Address) Display() string { return a.Const }

func (s String) Display() string { return fmt.Sprintf("%q", s.Const) }
