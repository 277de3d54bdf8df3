package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	in := Cursor{
		UpdatedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		ID:        "665f2a1b3c4d5e6f70818283",
	}

	out, err := ParseCursor(in.Encode())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.ID, out.ID)
	assert.True(t, in.UpdatedAt.Equal(out.UpdatedAt))
}

func TestParseCursorEmptyMeansFirstPage(t *testing.T) {
	out, err := ParseCursor("  ")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	for _, token := range []string{"%%%", "bm90LWEtY3Vyc29y", "OjppZA"} {
		_, err := ParseCursor(token)
		assert.ErrorIsf(t, err, ErrBadCursor, "token %q", token)
	}
}
