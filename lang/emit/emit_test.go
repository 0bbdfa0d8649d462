package emit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwwater/superini/lang/emit"
	"github.com/stillwwater/superini/lang/scope"
)

func TestEmitSkipsInternalAndEmptyScopes(t *testing.T) {
	g := scope.NewGLUT()
	// __global__ carries no items: must not appear in output.

	hidden, _ := g.Create("Constants", scope.Trace{})
	hidden.Flags.Internal = true
	hidden.Insert(scope.Item{Key: "max_level", Value: scope.Value{Text: "46"}})

	blade, _ := g.Create("Blade", scope.Trace{})
	blade.Insert(scope.Item{Key: "key", Value: scope.Value{Text: "46"}})

	var buf strings.Builder
	require.NoError(t, emit.Write(&buf, g, scope.NewEnvironment()))

	assert.Equal(t, "[Blade]\nkey=46\n", buf.String())
}

func TestEmitUnquotesStringValues(t *testing.T) {
	g := scope.NewGLUT()
	s, _ := g.Create("S", scope.Trace{})
	s.Insert(scope.Item{Key: "name", Value: scope.Value{Text: `"Melltith"`}})

	var buf strings.Builder
	require.NoError(t, emit.Write(&buf, g, scope.NewEnvironment()))

	assert.Equal(t, "[S]\nname=Melltith\n", buf.String())
}

func TestEmitSortedOrdersScopesAlphabetically(t *testing.T) {
	g := scope.NewGLUT()
	zebra, _ := g.Create("Zebra", scope.Trace{})
	zebra.Insert(scope.Item{Key: "key", Value: scope.Value{Text: "1"}})

	alpha, _ := g.Create("Alpha", scope.Trace{})
	alpha.Insert(scope.Item{Key: "key", Value: scope.Value{Text: "2"}})

	env := scope.NewEnvironment()
	env.Sorted = true

	var buf strings.Builder
	require.NoError(t, emit.Write(&buf, g, env))

	assert.Equal(t, "[Alpha]\nkey=2\n\n[Zebra]\nkey=1\n", buf.String())
}

func TestEmitBlankLineBetweenScopes(t *testing.T) {
	g := scope.NewGLUT()
	a, _ := g.Create("A", scope.Trace{})
	a.Insert(scope.Item{Key: "k", Value: scope.Value{Text: "1"}})
	b, _ := g.Create("B", scope.Trace{})
	b.Insert(scope.Item{Key: "k", Value: scope.Value{Text: "2"}})

	var buf strings.Builder
	require.NoError(t, emit.Write(&buf, g, scope.NewEnvironment()))

	assert.Equal(t, "[A]\nk=1\n\n[B]\nk=2\n", buf.String())
}
