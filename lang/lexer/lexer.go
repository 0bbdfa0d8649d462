// Package lexer implements the Super INI line classifier: the lexer
// consumes the ordered lines produced by the source reader and yields a
// sequence of classified tokens (spec section 4.1), folding continuation
// lines first. It is adapted from github.com/mna/nenuphar's rune-at-a-time
// lang/scanner.Scanner, but is a single ClassifyFile pass that appends
// errors to a diag.List and operates line-at-a-time since Super INI has
// no need for column-accurate tokenization.
package lexer

import (
	"strings"

	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/token"
)

// Kind is the classification of one logical (continuation-folded) line.
type Kind int

const (
	Blank Kind = iota
	Comment
	Header
	Item
	SymbolDecl
	Illegal
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Header:
		return "header"
	case Item:
		return "item"
	case SymbolDecl:
		return "symbol declaration"
	default:
		return "illegal"
	}
}

// ClosureInvocation is one `name :arg0 :arg1 ...` entry from a header's
// `:: CLOSURE_LIST`.
type ClosureInvocation struct {
	Name string
	Args []string // symbol names, without their leading colon
}

// Tok is a single classified logical line.
type Tok struct {
	Kind Kind
	Pos  token.Pos
	Raw  string // the folded logical line text, for diagnostics

	// Header fields.
	Name     string
	Closures []ClosureInvocation

	// Item / SymbolDecl fields.
	Key     string
	HasType bool
	TypeTag string
	RHS     string
	IsEval  bool // key := rhs
}

// rawLine is a logical line still being assembled through continuation
// folding.
type rawLine struct {
	pos  token.Pos
	text string
}

// ClassifyFile folds continuations and classifies every logical line of a
// single file's lines into a Tok sequence. Diagnostics (E00 for bad
// continuations, and lexical errors for malformed headers/items) are
// appended to diags; ClassifyFile never stops early, it drains as many
// diagnostics as practical from this file (spec section 7).
func ClassifyFile(fset *token.FileSet, lines []token.Line, diags *diag.List) []Tok {
	var out []Tok
	var pending *rawLine
	anchorSet := false
	anchor := 0

	flush := func() {
		if pending != nil {
			out = append(out, classifyLogical(fset, *pending, diags))
			pending = nil
		}
	}

	for _, ln := range lines {
		trimmed := strings.TrimLeft(ln.Text, " \t")
		indent := len(ln.Text) - len(trimmed)
		isBlank := strings.TrimSpace(ln.Text) == ""
		isComment := !isBlank && trimmed[0] == ';'

		switch {
		case isBlank:
			flush()
			out = append(out, Tok{Kind: Blank, Pos: ln.Pos})
			anchorSet = false

		case isComment:
			flush()
			out = append(out, Tok{Kind: Comment, Pos: ln.Pos, Raw: ln.Text})
			anchorSet = false

		case indent > 0 && anchorSet && indent > anchor:
			// continuation of the pending logical line.
			if pending == nil {
				diags.Errorf("E00", fset.Position(ln.Pos), "", "undefined sequence: continuation line has no preceding logical line")
				continue
			}
			pending.text += " " + trimmed

		case indent > 0:
			// indented, but no anchor or not strictly greater than it.
			diags.Errorf("E00", fset.Position(ln.Pos), "", "undefined sequence: indented line does not continue a prior logical line")
			flush()
			pending = &rawLine{pos: ln.Pos, text: trimmed}
			anchor = indent
			anchorSet = true

		default:
			flush()
			pending = &rawLine{pos: ln.Pos, text: ln.Text}
			anchor = 0
			anchorSet = true
		}
	}
	flush()
	return out
}
