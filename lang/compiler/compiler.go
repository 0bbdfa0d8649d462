// Package compiler orchestrates the full pipeline (spec section 2):
// Source Reader, Lexer, Scope Builder, Closure Runtime, Reference
// Resolver, Type Checker and Emitter, each strictly sequential (spec
// section 5).
//
// The (*Result, *diag.List, error) contract mirrors the per-phase helpers
// in github.com/mna/nenuphar (parser.ParseFiles, resolver.ResolveFiles,
// compiler.CompileFiles): the returned error, if non-nil, is guaranteed
// to be the *diag.List-backed error produced by (*diag.List).Err.
package compiler

import (
	"bytes"

	"github.com/stillwwater/superini/lang/closure"
	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/emit"
	"github.com/stillwwater/superini/lang/resolve"
	"github.com/stillwwater/superini/lang/scope"
	"github.com/stillwwater/superini/lang/source"
	"github.com/stillwwater/superini/lang/token"
	"github.com/stillwwater/superini/lang/typecheck"
)

// Result is the outcome of a successful Compile: the rendered INI text
// and the Environment record it was rendered with (so a caller can check
// environment.output itself).
type Result struct {
	Output string
	Env    *scope.Environment
	GLUT   *scope.GLUT
}

// Compile runs the full pipeline over the file at path and everything it
// transitively includes. On success it returns a Result and a nil error;
// on any error-severity diagnostic it returns a nil Result and a non-nil
// error (spec section 7: "errors ... produce no output file"). Either
// way, every diagnostic collected (errors and warnings) is also returned,
// sorted by file and line, so the caller can report warnings even on
// success.
func Compile(path string) (*Result, *diag.List, error) {
	fset := token.NewFileSet()
	diags := &diag.List{}

	toks := source.Load(fset, path, diags)
	if diags.HasErrors() {
		diags.Sort()
		return nil, diags, diags.Err()
	}

	g := scope.Build(fset, toks, diags)
	if diags.HasErrors() {
		diags.Sort()
		return nil, diags, diags.Err()
	}

	env := scope.NewEnvironment()
	pending := closure.Run(g, env, diags)
	if diags.HasErrors() {
		diags.Sort()
		return nil, diags, diags.Err()
	}

	// Reference resolution must complete before eval runs (spec section 1),
	// even though eval is attached to scopes as a closure; only warnings
	// (W00/W01) can come out of this phase, so no error gate here.
	resolve.Run(g, diags)

	closure.RunEval(pending, diags)
	if diags.HasErrors() {
		diags.Sort()
		return nil, diags, diags.Err()
	}

	typecheck.Run(g, diags)
	if diags.HasErrors() {
		diags.Sort()
		return nil, diags, diags.Err()
	}

	var buf bytes.Buffer
	if err := emit.Write(&buf, g, env); err != nil {
		diags.Errorf("E99", token.Position{}, "", "writing output: %s", err)
		diags.Sort()
		return nil, diags, diags.Err()
	}

	diags.Sort()
	return &Result{Output: buf.String(), Env: env, GLUT: g}, diags, nil
}
