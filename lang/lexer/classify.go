package lexer

import (
	"strings"

	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/token"
)

func classifyLogical(fset *token.FileSet, raw rawLine, diags *diag.List) Tok {
	pos := fset.Position(raw.pos)
	text := strings.TrimSpace(raw.text)

	if strings.HasPrefix(text, "[") {
		return classifyHeader(raw.pos, pos, text, diags)
	}
	if strings.HasPrefix(text, ":") {
		return classifySymbolDecl(raw.pos, pos, text, diags)
	}
	return classifyItem(raw.pos, pos, text, diags)
}

// classifyHeader parses `[NAME] [:: CLOSURE_LIST]`.
func classifyHeader(p token.Pos, pp token.Position, text string, diags *diag.List) Tok {
	end := strings.IndexByte(text, ']')
	if end < 0 {
		diags.Errorf("E01", pp, "", "undefined sequence: unterminated scope header %q", text)
		return Tok{Kind: Illegal, Pos: p, Raw: text}
	}
	name := strings.TrimSpace(text[1:end])
	rest := strings.TrimSpace(text[end+1:])

	tok := Tok{Kind: Header, Pos: p, Raw: text, Name: name}
	if rest == "" {
		return tok
	}
	if !strings.HasPrefix(rest, "::") {
		diags.Errorf("E02", pp, name, "undefined sequence: expected '::' before closure list, got %q", rest)
		return tok
	}
	rest = strings.TrimSpace(rest[2:])
	if rest == "" {
		return tok
	}
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Fields(part)
		inv := ClosureInvocation{Name: fields[0]}
		for _, a := range fields[1:] {
			inv.Args = append(inv.Args, strings.TrimPrefix(a, ":"))
		}
		tok.Closures = append(tok.Closures, inv)
	}
	return tok
}

// classifySymbolDecl parses a bare item-position symbol `:KEY [:TYPE]`,
// used to declare a type anchor or abstract requirement with no value
// (spec section 3, "Symbol").
func classifySymbolDecl(p token.Pos, pp token.Position, text string, diags *diag.List) Tok {
	fields := strings.Fields(text)
	key := strings.TrimPrefix(fields[0], ":")
	if key == "" {
		diags.Errorf("E03", pp, "", "undefined sequence: empty symbol name in %q", text)
		return Tok{Kind: Illegal, Pos: p, Raw: text}
	}
	tok := Tok{Kind: SymbolDecl, Pos: p, Raw: text, Key: key}
	if len(fields) > 1 {
		tok.HasType = true
		tok.TypeTag = strings.TrimPrefix(fields[1], ":")
	}
	return tok
}

// classifyItem parses the three item forms: `key = rhs`, `key: TYPE = rhs`
// / `key :TYPE = rhs`, and `key := rhs`.
func classifyItem(p token.Pos, pp token.Position, text string, diags *diag.List) Tok {
	i := 0
	for i < len(text) && isIdentRune(rune(text[i])) {
		i++
	}
	if i == 0 {
		diags.Errorf("E04", pp, "", "undefined sequence: expected item key, got %q", text)
		return Tok{Kind: Illegal, Pos: p, Raw: text}
	}
	key := text[:i]
	rest := strings.TrimLeft(text[i:], " \t")

	tok := Tok{Kind: Item, Pos: p, Raw: text, Key: key}

	switch {
	case strings.HasPrefix(rest, ":="):
		tok.IsEval = true
		tok.RHS = strings.TrimSpace(rest[2:])

	case strings.HasPrefix(rest, ":"):
		rest = strings.TrimLeft(rest[1:], " \t")
		typeEnd := 0
		for typeEnd < len(rest) && isIdentRune(rune(rest[typeEnd])) {
			typeEnd++
		}
		if typeEnd == 0 {
			diags.Errorf("E05", pp, "", "undefined sequence: expected type tag after ':' in %q", text)
			return Tok{Kind: Illegal, Pos: p, Raw: text}
		}
		tok.HasType = true
		tok.TypeTag = rest[:typeEnd]
		rest = strings.TrimLeft(rest[typeEnd:], " \t")
		if !strings.HasPrefix(rest, "=") {
			diags.Errorf("E05", pp, "", "undefined sequence: expected '=' after type tag in %q", text)
			return Tok{Kind: Illegal, Pos: p, Raw: text}
		}
		tok.RHS = strings.TrimSpace(rest[1:])

	case strings.HasPrefix(rest, "="):
		tok.RHS = strings.TrimSpace(rest[1:])

	default:
		diags.Errorf("E04", pp, "", "undefined sequence: expected '=', ':=' or type tag after key %q", key)
		return Tok{Kind: Illegal, Pos: p, Raw: text}
	}
	return tok
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
