package scope

import (
	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/lexer"
	"github.com/stillwwater/superini/lang/token"
)

// Build walks a classified token stream (already spliced for includes)
// and constructs the GLUT (spec section 4.2). It is a two-state machine,
// expect-any / inside-scope, except the initial state is always
// inside-scope with current = __global__, and there is no terminal state:
// EOF simply completes the GLUT.
func Build(fset *token.FileSet, toks []lexer.Tok, diags *diag.List) *GLUT {
	g := NewGLUT()
	current := g.Global()

	for _, t := range toks {
		switch t.Kind {
		case lexer.Blank, lexer.Comment, lexer.Illegal:
			continue

		case lexer.Header:
			pos := fset.Position(t.Pos)
			if t.Name == "" {
				// The explicit `[] :: ...` header re-targets __global__ to attach
				// closures to it; it does not create a second scope.
				current = g.Global()
				appendClosures(current, t.Closures)
				continue
			}
			s, ok := g.Create(t.Name, Trace{Pos: pos})
			if !ok {
				diags.Errorf("E09", pos, t.Name, "duplicate scope %q", t.Name)
				// recover: keep building into the existing scope so later
				// diagnostics in this phase still make sense.
				s, _ = g.Get(t.Name)
			}
			current = s
			appendClosures(current, t.Closures)

		case lexer.Item:
			pos := fset.Position(t.Pos)
			typ := TypeTag(t.TypeTag)
			if !t.HasType {
				typ = TypeTag(lexer.InferLiteralKind(t.RHS))
			}
			// Value.Text keeps the raw rhs, quotes and all: the resolver
			// (lang/resolve) scans the whole folded text as a single
			// target (spec section 9, Open Question c) and the emitter
			// (lang/emit) is what strips quotes for output.
			rhs := t.RHS
			item := Item{
				Key: t.Key,
				Value: Value{
					Text:   rhs,
					Type:   typ,
					IsEval: t.IsEval,
					Trace:  Trace{Pos: pos, Scope: current.Name},
				},
			}
			if !current.Insert(item) {
				diags.Errorf("E10", pos, current.Name, "duplicate key %q in scope %q", t.Key, current.Name)
			}

		case lexer.SymbolDecl:
			pos := fset.Position(t.Pos)
			item := Item{
				Key: t.Key,
				Value: Value{
					Type:  TypeTag(t.TypeTag),
					Trace: Trace{Pos: pos, Scope: current.Name},
				},
			}
			if !current.Insert(item) {
				diags.Errorf("E10", pos, current.Name, "duplicate key %q in scope %q", t.Key, current.Name)
			}
		}
	}
	return g
}

func appendClosures(s *Scope, invs []lexer.ClosureInvocation) {
	for _, inv := range invs {
		s.Closures = append(s.Closures, ClosureCall{Name: inv.Name, Args: inv.Args})
	}
}
