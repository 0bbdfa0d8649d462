package source

import (
	"path/filepath"

	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/lexer"
	"github.com/stillwwater/superini/lang/token"
)

// Load reads path, classifies it, and recursively splices in every file
// named by an `include` closure on its `__global__` header (spec section
// 4.3.1). The include invocation is consumed, stripped from the header's
// closure list, so the closure runtime never sees it; any other
// closures on the same header (e.g. `[] :: include :f, setenv`) survive
// untouched.
//
// A file already on the current include chain fails E08 rather than
// recursing forever (spec section 5, and Design Notes Open Question b).
func Load(fset *token.FileSet, path string, diags *diag.List) []lexer.Tok {
	toks, _ := load(fset, path, diags, nil)
	return toks
}

func load(fset *token.FileSet, path string, diags *diag.List, stack []string) ([]lexer.Tok, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, s := range stack {
		if s == abs {
			diags.Errorf("E08", token.Position{Filename: path}, "", "include cycle detected at %q", path)
			return nil, false
		}
	}

	lines, err := ReadFile(fset, path)
	if err != nil {
		diags.Errorf("E08", token.Position{Filename: path}, "", "missing input file %q: %s", path, err)
		return nil, false
	}

	toks := lexer.ClassifyFile(fset, lines, diags)
	stack = append(stack, abs)

	var out []lexer.Tok
	for _, t := range toks {
		if t.Kind != lexer.Header || t.Name != "" {
			out = append(out, t)
			continue
		}

		var remaining []lexer.ClosureInvocation
		var includeArgs []string
		for _, c := range t.Closures {
			if c.Name == "include" {
				includeArgs = append(includeArgs, c.Args...)
			} else {
				remaining = append(remaining, c)
			}
		}
		t.Closures = remaining
		out = append(out, t)

		for _, inc := range includeArgs {
			incPath := inc
			if !filepath.IsAbs(incPath) {
				incPath = filepath.Join(filepath.Dir(path), inc)
			}
			spliced, ok := load(fset, incPath, diags, stack)
			if ok {
				out = append(out, spliced...)
			}
		}
	}
	return out, true
}
