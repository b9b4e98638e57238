package scope_test

import (
	"testing"

	"leolang.dev/synth/internal/scope"
	"leolang.dev/synth/internal/value"
)

func boolValue(b bool) value.Value {
	return value.Boolean{Const: &b}
}

func TestResolveTiersFunctionOverFileOverBare(t *testing.T) {
	tbl := scope.New()
	tbl.Store("bare", boolValue(false))
	tbl.Store(scope.Key("file", "bare"), boolValue(false))
	tbl.Store(scope.Key("file", "x"), boolValue(false))
	tbl.Store(scope.Key("fn", "x"), boolValue(true))

	got, ok := tbl.Resolve("file", "fn", "x")
	if !ok {
		t.Fatal("expected x to resolve")
	}
	if b := got.(value.Boolean); b.Const == nil || !*b.Const {
		t.Errorf("expected function-scope binding to win, got %v", got.Display())
	}
}

func TestResolveFallsBackToBareName(t *testing.T) {
	tbl := scope.New()
	tbl.Store("imported", boolValue(true))

	got, ok := tbl.Resolve("file", "fn", "imported")
	if !ok {
		t.Fatal("expected imported to resolve via bare name")
	}
	if b := got.(value.Boolean); b.Const == nil || !*b.Const {
		t.Errorf("expected bare-name binding, got %v", got.Display())
	}
}

func TestResolveUndefined(t *testing.T) {
	tbl := scope.New()
	if _, ok := tbl.Resolve("file", "fn", "nope"); ok {
		t.Error("expected undefined name to not resolve")
	}
}

func TestResolveKeyMatchesResolveTier(t *testing.T) {
	tbl := scope.New()
	tbl.Store(scope.Key("file", "x"), boolValue(false))

	key, ok := tbl.ResolveKey("file", "fn", "x")
	if !ok || key != scope.Key("file", "x") {
		t.Fatalf("expected ResolveKey to return file-scope key, got %q, %v", key, ok)
	}

	tbl.Store(key, boolValue(true))
	got, _ := tbl.Resolve("file", "fn", "x")
	if b := got.(value.Boolean); !*b.Const {
		t.Error("expected write-back through ResolveKey to be observable")
	}
}
