package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	require.Equal(t, DefaultLimit, NormalizeLimit(0))
	require.Equal(t, DefaultLimit, NormalizeLimit(-5))
	require.Equal(t, 42, NormalizeLimit(42))
	require.Equal(t, MaxLimit, NormalizeLimit(5000))
	require.Equal(t, 43, LimitWithBuffer(42))
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := Cursor{CreatedAt: time.Now().UTC().Truncate(time.Microsecond), ID: uuid.New()}

	parsed, err := ParseCursor(EncodeCursor(cursor))
	require.NoError(t, err)
	require.NotNil(t, parsed)
	require.True(t, cursor.CreatedAt.Equal(parsed.CreatedAt))
	require.Equal(t, cursor.ID, parsed.ID)
}

func TestParseCursorEmptyAndInvalid(t *testing.T) {
	parsed, err := ParseCursor("   ")
	require.NoError(t, err)
	require.Nil(t, parsed)

	_, err = ParseCursor("not-base64!!")
	require.Error(t, err)

	_, err = ParseCursor("bm8tcGlwZQ==") // "no-pipe"
	require.Error(t, err)
}
