// Command synthfixture is a developer diagnostic, not the Leo CLI driver:
// it loads a YAML-described resolved program, runs its entry function
// through the synthesis engine against the in-memory sinktest backend, and
// reports the result and the number of constraints enforced. It never writes a .lvk
// file or touches a real curve — github.com/spf13/cobra/pflag give it the
// same flag-parsing shape the rest of the domain stack's CLIs use, without
// pulling in any project/file-layout conventions a real Leo CLI would need.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"leolang.dev/synth/internal/ast"
	"leolang.dev/synth/internal/diag"
	"leolang.dev/synth/internal/errs"
	"leolang.dev/synth/internal/eval"
	"leolang.dev/synth/internal/fixture"
	"leolang.dev/synth/internal/sink/sinktest"
)

func main() {
	if err := mainErr(); err != nil {
		fmt.Fprintln(os.Stderr, "synthfixture:", err)
		os.Exit(1)
	}
}

// mainErr builds and runs the root command, returning its error instead of
// exiting, so a test binary (cmd/synthfixture/main_test.go, via
// testscript.RunMain) can drive it in-process without forking a subprocess
// per invocation.
func mainErr() error {
	var verbose bool

	root := &cobra.Command{
		Use:   "synthfixture <fixture.yaml>",
		Short: "Run a resolved Leo program fixture through the synthesis engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], verbose)
		},
	}
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace synthesis at debug level")

	return root.ExecuteContext(context.Background())
}

func run(ctx context.Context, path string, verbose bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := fixture.Parse(data)
	if err != nil {
		return err
	}
	prog, err := doc.Build()
	if err != nil {
		return err
	}
	entryName := prog.Entry
	if entryName == "" {
		return fmt.Errorf("fixture has no entry function")
	}

	var log *diag.Logger
	if verbose {
		log = diag.New(os.Stderr, slog.LevelDebug)
	} else {
		log = diag.Discard()
	}

	sk := sinktest.New()
	engine := eval.New(sk, nil, nil, log)
	engine.Wire(prog)

	entryCall := ast.FunctionCall{
		Callee: ast.NewIdentifierExpr(ast.Identifier{Name: entryName}),
	}
	frame := eval.Frame{FileScope: eval.ProgramFileScope}

	result, err := engine.Eval(ctx, frame, nil, entryCall)
	if err != nil {
		if e, ok := err.(*errs.Error); ok {
			return fmt.Errorf("%s: %s", e.Position(), e.Error())
		}
		return err
	}

	fmt.Printf("result: %s\n", result.Display())
	fmt.Printf("constraints enforced: %d\n", sk.Constraints())
	return nil
}
