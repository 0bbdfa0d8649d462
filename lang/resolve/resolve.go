// Package resolve implements the Reference Resolver (spec section 4.4):
// a single pass over every item's Value text replacing `SCOPE::KEY`
// substrings with the target's current literal value.
//
// Grounded on github.com/mna/nenuphar's lang/resolver.go in shape only
// (walk every node once, look bindings up, mutate in place, collect
// diagnostics, and never abort on a single miss): nenuphar's resolver
// binds identifiers to lexical scopes inside a function, while Super
// INI's resolver substitutes textual scope::key tokens, a much flatter
// problem with no recursion.
package resolve

import (
	"regexp"

	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/scope"
)

var refPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*::[A-Za-z_][A-Za-z0-9_]*`)

// Run walks every scope's items once and substitutes references.
// Resolution runs over every scope, including internal ones: internal
// only affects the emitter, a scope marked internal can still be the
// target of a scope::key reference from elsewhere (spec seed scenario 2).
func Run(g *scope.GLUT, diags *diag.List) {
	for _, s := range g.Scopes() {
		for _, key := range s.Keys() {
			item, _ := s.Get(key)
			resolved := resolveText(g, s.Name, item.Value.Trace, item.Value.Text, diags)
			if resolved != item.Value.Text {
				s.Set(scope.Item{Key: item.Key, Value: item.Value.WithText(resolved)})
			}
		}
	}
}

func resolveText(g *scope.GLUT, ownerScope string, trace scope.Trace, text string, diags *diag.List) string {
	return refPattern.ReplaceAllStringFunc(text, func(ref string) string {
		idx := indexSep(ref)
		scopeName, key := ref[:idx], ref[idx+2:]

		target, ok := g.Get(scopeName)
		if !ok {
			diags.Warnf("W00", trace.Pos, ownerScope, "unresolved scope reference %q", scopeName)
			return ref
		}
		item, ok := target.Get(key)
		if !ok {
			diags.Warnf("W01", trace.Pos, ownerScope, "unresolved key reference %q in scope %q", key, scopeName)
			return ref
		}
		return item.Value.Text
	})
}

func indexSep(ref string) int {
	for i := 0; i+1 < len(ref); i++ {
		if ref[i] == ':' && ref[i+1] == ':' {
			return i
		}
	}
	return -1
}
