// Package closure implements the Closure Runtime (spec section 4.3): the
// dispatch table of internal, setenv, abstract, as, inline and eval,
// invoked once the GLUT is fully built, each mutating its caller scope in
// place.
//
// Dispatch is modeled as the Design Notes (section 9) prescribe: "tagged
// variants with an explicit dispatch table" rather than language-level
// dynamic dispatch, echoing github.com/mna/nenuphar's resolver.Mode-flag-
// driven, single-pass style (lang/resolver/resolver.go) applied to
// closures instead of AST nodes.
//
// eval is special-cased: spec section 1 calls out that "eval must run
// after references resolve but before emission", which conflicts with the
// generic pipeline position of the Closure Runtime (stage 4, before the
// stage-5 Reference Resolver). Run defers every eval invocation it
// encounters instead of executing it immediately; the caller (the
// compiler package) runs the resolver, then calls RunEval.
package closure

import (
	"strings"

	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/eval"
	"github.com/stillwwater/superini/lang/scope"
)

// Pending is a deferred eval invocation, recorded in the order it was
// encountered so RunEval can apply them in the same left-to-right,
// GLUT order the other closures ran in.
type Pending struct {
	Scope *scope.Scope
}

// apply is the signature every non-eval closure implements.
type apply func(caller *scope.Scope, args []string, g *scope.GLUT, env *scope.Environment, diags *diag.List)

var registry = map[string]apply{
	"internal": applyInternal,
	"setenv":   applySetenv,
	"abstract": applyAbstract,
	"as":       applyAs,
	"inline":   applyInline,
	"include":  applyInclude,
}

// Run invokes every scope's pending closures in GLUT order, left to right
// within a scope (spec section 4.3, "Ordering guarantees"), except eval,
// whose invocations are collected and returned instead of run.
func Run(g *scope.GLUT, env *scope.Environment, diags *diag.List) []Pending {
	var pending []Pending
	for _, s := range g.Scopes() {
		for _, call := range s.Closures {
			if call.Name == "eval" {
				pending = append(pending, Pending{Scope: s})
				continue
			}
			fn, ok := registry[call.Name]
			if !ok {
				diags.Errorf("E11", s.Trace.Pos, s.Name, "unknown closure %q", call.Name)
				continue
			}
			fn(s, call.Args, g, env, diags)
		}
	}
	return pending
}

// RunEval applies every deferred eval invocation, evaluating each item's
// rhs as an arithmetic expression (lang/eval) and replacing its Value
// with the stringified result, then re-running the type check on the
// rewritten value (spec section 4.3, "eval").
//
// Per spec section 4.3's conservative reading of the `:=` marker (Design
// Notes Open Question a), every item in an eval scope is evaluated, not
// only those written with `:=`.
func RunEval(pending []Pending, diags *diag.List) {
	for _, p := range pending {
		evalScope(p.Scope, diags)
	}
}

func evalScope(s *scope.Scope, diags *diag.List) {
	for _, key := range s.Keys() {
		item, _ := s.Get(key)
		result, err := eval.Eval(item.Value.Text)
		if err != nil {
			diags.Errorf("E13", item.Value.Trace.Pos, s.Name, "eval: %s", err)
			continue
		}
		newVal := item.Value.WithText(result)
		if !strings.ContainsAny(result, ".eE") {
			newVal.Type = preserveOrInferInt(newVal.Type)
		}
		s.Set(scope.Item{Key: item.Key, Value: newVal})
	}
}

func preserveOrInferInt(t scope.TypeTag) scope.TypeTag {
	if t == scope.TypeNone {
		return scope.TypeInt
	}
	return t
}

func applyInternal(caller *scope.Scope, _ []string, _ *scope.GLUT, _ *scope.Environment, _ *diag.List) {
	caller.Flags.Internal = true
}

func applySetenv(caller *scope.Scope, _ []string, _ *scope.GLUT, env *scope.Environment, _ *diag.List) {
	for _, key := range caller.Keys() {
		item, _ := caller.Get(key)
		env.Set(item.Key, item.Value.Text)
	}
}

func applyAbstract(caller *scope.Scope, args []string, _ *scope.GLUT, _ *scope.Environment, _ *diag.List) {
	caller.Flags.Abstract = true
	caller.AbstractKeys = append([]string(nil), args...)
}

func applyAs(caller *scope.Scope, args []string, g *scope.GLUT, _ *scope.Environment, diags *diag.List) {
	parent, ok := resolveParent(caller, args, g, diags)
	if !ok {
		return
	}
	checkAbstractCoverage(caller, parent, diags)
}

func applyInline(caller *scope.Scope, args []string, g *scope.GLUT, _ *scope.Environment, diags *diag.List) {
	parent, ok := resolveParent(caller, args, g, diags)
	if !ok {
		return
	}
	if !checkAbstractCoverage(caller, parent, diags) {
		return
	}

	caller.Flags.Internal = true
	vals := make([]string, 0, len(parent.AbstractKeys))
	for _, k := range parent.AbstractKeys {
		item, _ := caller.Get(k)
		vals = append(vals, item.Value.Text)
	}
	parent.Flags.InlineTarget = true
	parent.Set(scope.Item{
		Key: caller.Name,
		Value: scope.Value{
			Text:  strings.Join(vals, " "),
			Type:  scope.TypeStr,
			Trace: caller.Trace,
		},
	})
}

// applyInclude exists only so `include` dispatched here fails loudly
// instead of silently. lang/source.Load consumes include invocations on
// the __global__ header before the scope builder runs, so an include
// that reaches the runtime sits on some other header, which is invalid
// per spec section 4.3.1: "Only valid on the __global__ scope and only
// meaningful during the lex/build phase".
func applyInclude(caller *scope.Scope, _ []string, _ *scope.GLUT, _ *scope.Environment, diags *diag.List) {
	diags.Errorf("E12", caller.Trace.Pos, caller.Name, "include is only valid on the __global__ header at parse time")
}

func resolveParent(caller *scope.Scope, args []string, g *scope.GLUT, diags *diag.List) (*scope.Scope, bool) {
	if len(args) == 0 {
		diags.Errorf("E06", caller.Trace.Pos, caller.Name, "missing parent scope argument")
		return nil, false
	}
	parent, ok := g.Get(args[0])
	if !ok {
		diags.Errorf("E06", caller.Trace.Pos, caller.Name, "unknown parent scope %q", args[0])
		return nil, false
	}
	return parent, true
}

// checkAbstractCoverage requires every name in parent.AbstractKeys to
// exist as a classified item in caller (spec section 4.3, `as`/`inline`).
func checkAbstractCoverage(caller, parent *scope.Scope, diags *diag.List) bool {
	ok := true
	for _, k := range parent.AbstractKeys {
		if !caller.Has(k) {
			diags.Errorf("E06", caller.Trace.Pos, caller.Name, "missing abstract key %q required by %q", k, parent.Name)
			ok = false
		}
	}
	return ok
}
