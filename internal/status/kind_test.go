package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKindHasNameAndGlyph(t *testing.T) {
	glyphs := DefaultGlyphs()
	seen := map[string]bool{}
	for _, k := range Kinds() {
		assert.NotEmpty(t, glyphs.Glyph(k), k.String())
		assert.False(t, seen[glyphs.Glyph(k)], "duplicate glyph for %s", k)
		seen[glyphs.Glyph(k)] = true

		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	assert.Len(t, seen, 5)
}

func TestParseKindIsCaseInsensitive(t *testing.T) {
	k, err := ParseKind("  SUCCESS ")
	require.NoError(t, err)
	assert.Equal(t, Success, k)

	_, err = ParseKind("warning")
	assert.Error(t, err)
}

func TestWithOverrides(t *testing.T) {
	base := DefaultGlyphs()

	g, err := base.WithOverrides(map[string]string{"error": "x", "success": ""})
	require.NoError(t, err)
	assert.Equal(t, "x", g.Glyph(Error))
	assert.Equal(t, base.Glyph(Success), g.Glyph(Success))
	assert.Equal(t, "❌", base.Glyph(Error), "base table must not change")

	_, err = base.WithOverrides(map[string]string{"bogus": "?"})
	assert.Error(t, err)
}

func TestUnknownKind(t *testing.T) {
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Empty(t, DefaultGlyphs().Glyph(Kind(9)))
}

func TestSpinnerStyle(t *testing.T) {
	s, err := SpinnerStyle("")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Frames)

	_, err = SpinnerStyle("Line")
	require.NoError(t, err)

	_, err = SpinnerStyle("nope")
	assert.ErrorContains(t, err, "minidot")
}
