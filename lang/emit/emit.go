// Package emit implements the Emitter (spec section 4.6): serializing
// every surviving (non-internal) scope in the GLUT to canonical INI.
//
// Follows the same spirit as github.com/mna/nenuphar's lang/ast/printer.go:
// a one-line-per-node, io.Writer-based serialization with no intermediate
// string buffering of the whole program, generalized here from AST nodes
// to scopes and items.
package emit

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/stillwwater/superini/lang/lexer"
	"github.com/stillwwater/superini/lang/scope"
)

// Write serializes g to w: one `[name]` header per surviving scope,
// followed by its `key=value` items, a blank line between scopes. If
// env.Sorted is true, scopes are emitted in alphabetical order instead of
// GLUT insertion order (spec section 4.6). A scope with no items (most
// commonly __global__, when it only ever held closure invocations) is
// skipped entirely rather than emitted as a bare header, matching the
// spec's own worked examples.
func Write(w io.Writer, g *scope.GLUT, env *scope.Environment) error {
	scopes := g.Scopes()
	if env.Sorted {
		scopes = append([]*scope.Scope(nil), scopes...)
		slices.SortFunc(scopes, func(a, b *scope.Scope) int { return strings.Compare(a.Name, b.Name) })
	}

	first := true
	for _, s := range scopes {
		if s.Flags.Internal || s.Len() == 0 {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false

		if _, err := fmt.Fprintf(w, "[%s]\n", s.Name); err != nil {
			return err
		}
		for _, key := range s.Keys() {
			item, _ := s.Get(key)
			value := lexer.Unquote(item.Value.Text)
			if _, err := fmt.Fprintf(w, "%s=%s\n", item.Key, value); err != nil {
				return err
			}
		}
	}
	return nil
}
