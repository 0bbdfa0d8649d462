// Package typecheck implements the Type Checker (spec section 4.5): after
// references resolve and eval rewrites numeric results, every item with a
// declared type tag is validated against the table in that section.
package typecheck

import (
	"math"

	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/lexer"
	"github.com/stillwwater/superini/lang/scope"
)

// Run validates every typed item in g, reporting E07 for mismatches.
// Untyped items (scope.TypeNone) are never checked.
func Run(g *scope.GLUT, diags *diag.List) {
	for _, s := range g.Scopes() {
		for _, key := range s.Keys() {
			item, _ := s.Get(key)
			checkOne(s.Name, item, diags)
		}
	}
}

func checkOne(scopeName string, item scope.Item, diags *diag.List) {
	typ := item.Value.Type
	if typ == scope.TypeNone {
		return
	}

	text := item.Value.Text
	pos := item.Value.Trace.Pos
	fail := func() {
		diags.Errorf("E07", pos, scopeName, "key %q: value %q does not match declared type %q", item.Key, text, string(typ))
	}

	switch typ {
	case scope.TypeInt, scope.TypeI64:
		if _, err := lexer.ParseIntLiteral(text); err != nil {
			fail()
		}

	case scope.TypeI8:
		checkIntWidth(text, -128, 127, fail)
	case scope.TypeI16:
		checkIntWidth(text, -32768, 32767, fail)
	case scope.TypeI32:
		checkIntWidth(text, math.MinInt32, math.MaxInt32, fail)
	case scope.TypeU8:
		checkIntWidth(text, 0, 255, fail)

	case scope.TypeFloat:
		if !looksNumeric(text) {
			fail()
		}

	case scope.TypeF32:
		f, ok := parseNumeric(text)
		if !ok {
			fail()
			return
		}
		if math.IsInf(float64(float32(f)), 0) && !math.IsInf(f, 0) {
			fail()
		}

	case scope.TypeStr:
		// accepts everything, including quoted numerics (spec section 4.5).

	case scope.TypeBool:
		if text != "True" && text != "False" {
			fail()
		}
	}
}

func checkIntWidth(text string, lo, hi int64, fail func()) {
	v, err := lexer.ParseIntLiteral(text)
	if err != nil || v < lo || v > hi {
		fail()
	}
}

func looksNumeric(text string) bool {
	_, ok := parseNumeric(text)
	return ok
}

func parseNumeric(text string) (float64, bool) {
	if v, err := lexer.ParseIntLiteral(text); err == nil {
		return float64(v), true
	}
	if f, err := lexer.ParseFloatLiteral(text); err == nil {
		return f, true
	}
	return 0, false
}
