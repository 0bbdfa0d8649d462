package lexer

import (
	"strconv"
	"strings"
)

// LiteralKind classifies the textual shape of an untyped right-hand side,
// per spec section 4.1 ("Literal shapes"). It is also the tag used to
// fill Value.TypeTag when an item has no explicit type annotation.
type LiteralKind string

const (
	LitNone  LiteralKind = "none"
	LitInt   LiteralKind = "int"
	LitFloat LiteralKind = "float"
	LitBool  LiteralKind = "bool"
	LitStr   LiteralKind = "str"
)

// InferLiteralKind chooses the narrowest fitting tag for an untyped rhs,
// following spec section 4.1: decimal/hex/binary integers (with optional
// leading '-'), float literals (containing '.' or an exponent), True/False
// booleans, and otherwise a string (bare or double-quoted).
func InferLiteralKind(rhs string) LiteralKind {
	s := strings.TrimSpace(rhs)
	if s == "" {
		return LitStr
	}
	if s == "True" || s == "False" {
		return LitBool
	}
	if isQuoted(s) {
		return LitStr
	}
	if looksNumeric(s) {
		if looksInt(s) {
			return LitInt
		}
		return LitFloat
	}
	return LitStr
}

func isQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// Unquote strips one layer of surrounding double quotes, if present,
// interpreting Go-style escapes. If s isn't quoted, it's returned as-is.
func Unquote(s string) string {
	if !isQuoted(s) {
		return s
	}
	if uq, err := strconv.Unquote(s); err == nil {
		return uq
	}
	return s[1 : len(s)-1]
}

func looksNumeric(s string) bool {
	body := s
	if strings.HasPrefix(body, "-") {
		body = body[1:]
	}
	if body == "" {
		return false
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") ||
		strings.HasPrefix(body, "0b") || strings.HasPrefix(body, "0B") {
		return len(body) > 2 && isAllOfBase(body[2:], body[1])
	}
	seenDigit, seenDot, seenExp := false, false, false
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
			if i+1 < len(body) && (body[i+1] == '+' || body[i+1] == '-') {
				i++
			}
		default:
			return false
		}
	}
	return seenDigit
}

func isAllOfBase(s string, base byte) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch base {
		case 'b', 'B':
			if c != '0' && c != '1' {
				return false
			}
		default: // hex
			if !isHexDigit(c) {
				return false
			}
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func looksInt(s string) bool {
	body := s
	if strings.HasPrefix(body, "-") {
		body = body[1:]
	}
	return !strings.ContainsAny(body, ".eE") || (strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X"))
}

// ParseIntLiteral parses a decimal, 0x hex or 0b binary integer literal
// (optionally signed) into its int64 value. Adapted from
// github.com/mna/nenuphar's numberToInt (lang/scanner/number.go),
// generalized to accept the leading '-' Super INI literals allow that
// nenuphar's unsigned number scanner didn't need to.
func ParseIntLiteral(lit string) (int64, error) {
	neg := false
	if strings.HasPrefix(lit, "-") {
		neg = true
		lit = lit[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X"):
		base = 16
		lit = lit[2:]
	case strings.HasPrefix(lit, "0b") || strings.HasPrefix(lit, "0B"):
		base = 2
		lit = lit[2:]
	}
	v, err := strconv.ParseInt(lit, base, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}

// ParseFloatLiteral parses a float literal into its float64 value.
// Adapted from github.com/mna/nenuphar's numberToFloat (lang/scanner/number.go).
func ParseFloatLiteral(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}
