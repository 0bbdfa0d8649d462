package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwwater/superini/lang/diag"
	"github.com/stillwwater/superini/lang/scope"
	"github.com/stillwwater/superini/lang/typecheck"
)

func checkOne(t *testing.T, typ scope.TypeTag, text string) *diag.List {
	t.Helper()
	g := scope.NewGLUT()
	s, _ := g.Create("S", scope.Trace{})
	s.Insert(scope.Item{Key: "k", Value: scope.Value{Text: text, Type: typ}})

	diags := &diag.List{}
	typecheck.Run(g, diags)
	return diags
}

func TestU8Bounds(t *testing.T) {
	require.False(t, checkOne(t, scope.TypeU8, "255").HasErrors())
	require.True(t, checkOne(t, scope.TypeU8, "256").HasErrors())
	require.True(t, checkOne(t, scope.TypeU8, "-1").HasErrors())
}

func TestI8BinaryBounds(t *testing.T) {
	require.False(t, checkOne(t, scope.TypeI8, "0b01111111").HasErrors())
	require.True(t, checkOne(t, scope.TypeI8, "0b10000000").HasErrors())
}

func TestTypeMismatchE07(t *testing.T) {
	diags := checkOne(t, scope.TypeI32, `"355"`)
	require.True(t, diags.HasErrors())
	assert.Equal(t, "E07", diags.All()[0].Code)
}

func TestBoolRequiresExactLiteral(t *testing.T) {
	require.False(t, checkOne(t, scope.TypeBool, "True").HasErrors())
	require.False(t, checkOne(t, scope.TypeBool, "False").HasErrors())
	require.True(t, checkOne(t, scope.TypeBool, "true").HasErrors())
}

func TestStrAcceptsAnything(t *testing.T) {
	require.False(t, checkOne(t, scope.TypeStr, `"355"`).HasErrors())
	require.False(t, checkOne(t, scope.TypeStr, "anything at all").HasErrors())
}

func TestUntypedNeverChecked(t *testing.T) {
	require.False(t, checkOne(t, scope.TypeNone, "not a number").HasErrors())
}

func TestFloat(t *testing.T) {
	require.False(t, checkOne(t, scope.TypeFloat, "3.14").HasErrors())
	require.True(t, checkOne(t, scope.TypeFloat, "not a float").HasErrors())
}
