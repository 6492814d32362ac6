package prim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinGlyphsAreUnique(t *testing.T) {
	table := Builtin()
	seen := make(map[rune]Primitive)
	for _, p := range table.All() {
		g, ok := table.Glyph(p)
		if !ok {
			continue
		}
		if prev, dup := seen[g]; dup {
			t.Errorf("glyph %q shared by %s and %s", g, prev, p)
		}
		seen[g] = p
	}
}

func TestBuiltinNamesAreSet(t *testing.T) {
	table := Builtin()
	for _, p := range table.All() {
		assert.NotEmpty(t, table.Name(p), "primitive %d has no name", p)
		assert.Equal(t, table.Name(p), p.String())
	}
	assert.Equal(t, "invalid", Invalid.String())
}

func TestUserFacingFiltersHiddenPrimitives(t *testing.T) {
	table := Builtin()
	visible := UserFacing(table)

	hidden := []Primitive{Derivative, Integral, Occurrences, Rerank, Windows, Trace, Print, Now}
	for _, p := range hidden {
		assert.NotContains(t, visible, p, "%s should not be user facing", p)
	}
	assert.Contains(t, visible, Transpose)
	assert.Contains(t, visible, Identity)
}

func TestSignatureKinds(t *testing.T) {
	table := Builtin()

	sig := table.Signature(Add)
	require.True(t, sig.HasArgs)
	assert.Equal(t, 2, sig.Args)
	assert.False(t, sig.HasModifierArgs)

	sig = table.Signature(Under)
	require.True(t, sig.HasModifierArgs)
	assert.Equal(t, 2, sig.ModifierArgs)
	assert.False(t, sig.HasArgs)
}

func TestUnknownPrimitive(t *testing.T) {
	table := Builtin()
	_, ok := table.Glyph(Invalid)
	assert.False(t, ok)
	_, ok = table.Glyph(primitiveCount + 3)
	assert.False(t, ok)
	assert.Empty(t, table.Name(Invalid))
}

func TestLookup(t *testing.T) {
	table := Builtin()
	p, ok := table.Lookup('⍉')
	require.True(t, ok)
	assert.Equal(t, Transpose, p)

	_, ok = table.Lookup('x')
	assert.False(t, ok)
}
