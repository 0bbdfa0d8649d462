package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/lexer"
	"github.com/stillwwater/superini/lang/token"
)

func classify(t *testing.T, text string) ([]lexer.Tok, *diag.List) {
	t.Helper()
	fset := token.NewFileSet()
	f := fset.AddFile("test.ini")

	var lines []token.Line
	for i, raw := range splitLines(text) {
		lines = append(lines, token.Line{Text: raw, Num: i + 1, Pos: f.AddLine()})
	}

	diags := &diag.List{}
	return lexer.ClassifyFile(fset, lines, diags), diags
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func TestClassifyHeader(t *testing.T) {
	toks, diags := classify(t, "[Weapons] :: abstract :damage :level")
	require.False(t, diags.HasErrors())
	require.Len(t, toks, 1)

	tok := toks[0]
	assert.Equal(t, lexer.Header, tok.Kind)
	assert.Equal(t, "Weapons", tok.Name)
	require.Len(t, tok.Closures, 1)
	assert.Equal(t, "abstract", tok.Closures[0].Name)
	assert.Equal(t, []string{"damage", "level"}, tok.Closures[0].Args)
}

func TestClassifyGlobalHeader(t *testing.T) {
	toks, diags := classify(t, "[] :: internal, setenv")
	require.False(t, diags.HasErrors())
	require.Len(t, toks, 1)

	tok := toks[0]
	assert.Equal(t, lexer.Header, tok.Kind)
	assert.Equal(t, "", tok.Name)
	require.Len(t, tok.Closures, 2)
	assert.Equal(t, "internal", tok.Closures[0].Name)
	assert.Equal(t, "setenv", tok.Closures[1].Name)
}

func TestClassifyItems(t *testing.T) {
	toks, diags := classify(t, "damage: i32 = 355\nlevel := 18\nname = \"Melltith\"")
	require.False(t, diags.HasErrors())
	require.Len(t, toks, 3)

	assert.Equal(t, lexer.Item, toks[0].Kind)
	assert.Equal(t, "damage", toks[0].Key)
	assert.True(t, toks[0].HasType)
	assert.Equal(t, "i32", toks[0].TypeTag)
	assert.Equal(t, "355", toks[0].RHS)

	assert.True(t, toks[1].IsEval)
	assert.Equal(t, "18", toks[1].RHS)

	assert.Equal(t, `"Melltith"`, toks[2].RHS)
}

func TestContinuationFolding(t *testing.T) {
	toks, diags := classify(t, "key = first\n  second\n  third")
	require.False(t, diags.HasErrors())
	require.Len(t, toks, 1)
	assert.Equal(t, "first second third", toks[0].RHS)
}

func TestContinuationWithoutAnchorFails(t *testing.T) {
	_, diags := classify(t, "  indented")
	require.True(t, diags.HasErrors())
	assert.Equal(t, "E00", diags.All()[0].Code)
}

func TestContinuationAtAnchorColumnFails(t *testing.T) {
	// spec section 8: a continuation indented to exactly the anchor column
	// fails E00; strictly greater succeeds. Both lines here start with an
	// indent of their own (establishing anchor=2 the first time around,
	// which is itself flagged E00 since no anchor preceded it) so the
	// comparison is the count of additional diagnostics the second line
	// adds (an E00, plus an E04 for the unfolded text).
	_, equal := classify(t, "  key = value\n  not a continuation")
	_, greater := classify(t, "  key = value\n    a continuation")

	assert.Greater(t, len(equal.All()), len(greater.All()))
}

func TestBlankAndComment(t *testing.T) {
	toks, diags := classify(t, "\n; a comment\nkey = 1")
	require.False(t, diags.HasErrors())
	require.Len(t, toks, 3)
	assert.Equal(t, lexer.Blank, toks[0].Kind)
	assert.Equal(t, lexer.Comment, toks[1].Kind)
	assert.Equal(t, lexer.Item, toks[2].Kind)
}

func TestInferLiteralKind(t *testing.T) {
	tests := []struct {
		rhs  string
		want lexer.LiteralKind
	}{
		{"355", lexer.LitInt},
		{"-18", lexer.LitInt},
		{"0x1F", lexer.LitInt},
		{"0b101", lexer.LitInt},
		{"3.14", lexer.LitFloat},
		{"1e10", lexer.LitFloat},
		{"True", lexer.LitBool},
		{"False", lexer.LitBool},
		{`"text"`, lexer.LitStr},
		{"bare text", lexer.LitStr},
	}
	for _, tt := range tests {
		t.Run(tt.rhs, func(t *testing.T) {
			assert.Equal(t, tt.want, lexer.InferLiteralKind(tt.rhs))
		})
	}
}

func TestParseIntLiteral(t *testing.T) {
	tests := []struct {
		lit  string
		want int64
	}{
		{"0", 0},
		{"255", 255},
		{"-1", -1},
		{"0x0F", 15},
		{"0b01111111", 127},
		{"0b10000000", 128},
	}
	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, err := lexer.ParseIntLiteral(tt.lit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "hello", lexer.Unquote(`"hello"`))
	assert.Equal(t, "bare", lexer.Unquote("bare"))
}
