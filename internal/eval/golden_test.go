package eval_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/diag"
	"leolang.dev/synth/internal/eval"
	"leolang.dev/synth/internal/fixture"
	"leolang.dev/synth/internal/sink/sinktest"
)

// TestGolden runs every testdata/*.txtar archive: "in.yaml" is parsed as a
// program fixture and run through its entry function; the Display() of the
// result must match "want.txt" verbatim. This mirrors
// cuetxtar-driven eval tests (internal/core/adt/eval_test.go), trading the
// multi-file cuetxtar.TxTarTest harness for a plain txtar.Parse since each
// fixture here is a single small program rather than a multi-file module.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("no golden archives found")
	}

	for _, path := range archives {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}
			in := fileContent(ar, "in.yaml")
			want := strings.TrimSpace(string(fileContent(ar, "want.txt")))

			doc, err := fixture.Parse(in)
			if err != nil {
				t.Fatalf("parse fixture: %v", err)
			}
			prog, err := doc.Build()
			if err != nil {
				t.Fatalf("build program: %v", err)
			}

			sk := sinktest.New()
			engine := eval.New(sk, nil, nil, diag.Discard())
			engine.Wire(prog)

			callExpr := ast.FunctionCall{Callee: ast.NewIdentifierExpr(ast.Identifier{Name: doc.Entry})}
			frame := eval.Frame{FileScope: eval.ProgramFileScope}
			result, err := engine.Eval(context.Background(), frame, nil, callExpr)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}

			if got := result.Display(); got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func fileContent(ar *txtar.Archive, name string) []byte {
	for _, f := range ar.Files {
		if f.Name == name {
			return f.Data
		}
	}
	return nil
}
