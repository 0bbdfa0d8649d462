package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwwater/superini/lang/token"
)

func TestFileSetSingleFile(t *testing.T) {
	fset := token.NewFileSet()
	f := fset.AddFile("a.ini")

	p1 := f.AddLine()
	p2 := f.AddLine()
	p3 := f.AddLine()

	assert.Equal(t, token.Position{Filename: "a.ini", Line: 1}, fset.Position(p1))
	assert.Equal(t, token.Position{Filename: "a.ini", Line: 2}, fset.Position(p2))
	assert.Equal(t, token.Position{Filename: "a.ini", Line: 3}, fset.Position(p3))
	assert.Equal(t, 3, f.LineCount())
}

func TestFileSetMultipleFiles(t *testing.T) {
	fset := token.NewFileSet()
	a := fset.AddFile("a.ini")
	aPos := a.AddLine()

	b := fset.AddFile("b.ini")
	bPos := b.AddLine()

	assert.Equal(t, "a.ini", fset.Position(aPos).Filename)
	assert.Equal(t, "b.ini", fset.Position(bPos).Filename)

	require.Same(t, a, fset.File(aPos))
	require.Same(t, b, fset.File(bPos))
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "-", token.Position{}.String())
	assert.Equal(t, "a.ini:3", token.Position{Filename: "a.ini", Line: 3}.String())
	assert.Equal(t, "3", token.Position{Line: 3}.String())
}
