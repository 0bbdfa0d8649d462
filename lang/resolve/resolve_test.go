package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/resolve"
	"github.com/stillwwater/superini/lang/scope"
)

func TestResolveSubstitutesReference(t *testing.T) {
	g := scope.NewGLUT()
	constants, _ := g.Create("Constants", scope.Trace{})
	constants.Insert(scope.Item{Key: "max_level", Value: scope.Value{Text: "46"}})

	blade, _ := g.Create("Blade", scope.Trace{})
	blade.Insert(scope.Item{Key: "key", Value: scope.Value{Text: "Constants::max_level"}})

	diags := &diag.List{}
	resolve.Run(g, diags)
	require.False(t, diags.HasErrors())

	item, _ := blade.Get("key")
	assert.Equal(t, "46", item.Value.Text)
}

func TestResolveUnknownScopeWarnsW00(t *testing.T) {
	g := scope.NewGLUT()
	s, _ := g.Create("A", scope.Trace{})
	s.Insert(scope.Item{Key: "key", Value: scope.Value{Text: "Missing::thing"}})

	diags := &diag.List{}
	resolve.Run(g, diags)

	require.False(t, diags.HasErrors())
	require.Len(t, diags.All(), 1)
	assert.Equal(t, "W00", diags.All()[0].Code)

	item, _ := s.Get("key")
	assert.Equal(t, "Missing::thing", item.Value.Text, "unresolved references are left verbatim")
}

func TestResolveUnknownKeyWarnsW01(t *testing.T) {
	g := scope.NewGLUT()
	a, _ := g.Create("A", scope.Trace{})
	a.Insert(scope.Item{Key: "other", Value: scope.Value{Text: "1"}})

	b, _ := g.Create("B", scope.Trace{})
	b.Insert(scope.Item{Key: "key", Value: scope.Value{Text: "A::missing"}})

	diags := &diag.List{}
	resolve.Run(g, diags)

	require.False(t, diags.HasErrors())
	require.Len(t, diags.All(), 1)
	assert.Equal(t, "W01", diags.All()[0].Code)
}

func TestResolveRunsOverInternalScopesToo(t *testing.T) {
	g := scope.NewGLUT()
	constants, _ := g.Create("Constants", scope.Trace{})
	constants.Flags.Internal = true
	constants.Insert(scope.Item{Key: "max_level", Value: scope.Value{Text: "46"}})

	blade, _ := g.Create("Blade", scope.Trace{})
	blade.Insert(scope.Item{Key: "key", Value: scope.Value{Text: "Constants::max_level"}})

	diags := &diag.List{}
	resolve.Run(g, diags)
	require.False(t, diags.HasErrors())

	item, _ := blade.Get("key")
	assert.Equal(t, "46", item.Value.Text)
}
