// Package scope implements ScopeTable: a flat name→Value mapping with
// hierarchical mangled keys. There is no nesting data
// structure — nesting is encoded entirely in the key string, and a later
// store to the same key silently wins over an earlier one.
package scope

import "leolang.dev/synth/internal/value"

// Key composes a parent scope and a child segment into a single mangled
// key, scope(parent, child) = parent + "_" + child.
func Key(parent, child string) string {
	return parent + "_" + child
}

// Table is the engine's single flat scope map. File scope, function scope,
// and circuit-member scope are all just different key prefixes into the
// same Table — there is no separate storage per logical scope.
type Table struct {
	entries map[string]value.Value
}

func New() *Table {
	return &Table{entries: make(map[string]value.Value)}
}

// Store binds key to v. A second Store to the same key overwrites the
// first — ScopeTable performs no removal and keeps no history.
func (t *Table) Store(key string, v value.Value) {
	t.entries[key] = v
}

// Get looks up key directly (no tiering — callers combine this with Key to
// probe function scope, file scope, and bare name in order).
func (t *Table) Get(key string) (value.Value, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Resolve performs the three-tier identifier lookup the language fixes as a
// hard contract: function scope, then file scope, then the bare name (for
// imported symbols). fileScope/functionScope are scope-key prefixes, not
// bare names themselves.
func (t *Table) Resolve(fileScope, functionScope, name string) (value.Value, bool) {
	if v, ok := t.Get(Key(functionScope, name)); ok {
		return v, true
	}
	if v, ok := t.Get(Key(fileScope, name)); ok {
		return v, true
	}
	if v, ok := t.Get(name); ok {
		return v, true
	}
	return nil, false
}

// ResolveKey performs the same three-tier search as Resolve but returns the
// winning key instead of the value, so an assignment can write back to
// whichever tier an identifier was actually bound in rather than always
// shadowing it at function scope.
func (t *Table) ResolveKey(fileScope, functionScope, name string) (string, bool) {
	if _, ok := t.Get(Key(functionScope, name)); ok {
		return Key(functionScope, name), true
	}
	if _, ok := t.Get(Key(fileScope, name)); ok {
		return Key(fileScope, name), true
	}
	if _, ok := t.Get(name); ok {
		return name, true
	}
	return "", false
}

// Snapshot returns an independent copy of the table's current bindings.
// StatementEnforcer's conditional branch-merge is the only caller that needs
// to fork the table and compare the fork against the original afterward.
func (t *Table) Snapshot() map[string]value.Value {
	cp := make(map[string]value.Value, len(t.entries))
	for k, v := range t.entries {
		cp[k] = v
	}
	return cp
}

// Restore replaces the table's entries with a copy of snap, so a caller
// holding onto snap (e.g. a snapshot taken earlier) can reuse it for a
// second Restore without a prior Store having mutated it out from under
// them.
func (t *Table) Restore(snap map[string]value.Value) {
	cp := make(map[string]value.Value, len(snap))
	for k, v := range snap {
		cp[k] = v
	}
	t.entries = cp
}
