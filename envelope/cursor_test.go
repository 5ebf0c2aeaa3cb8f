package envelope_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responsable/envelope"
)

func TestCursorEncode(t *testing.T) {
	// Arrange
	c := envelope.NewCursor(map[string]any{"id": 15}, true)

	// Act
	enc := c.Encode()

	// Assert
	require.NotContains(t, enc, "=")
	require.NotContains(t, enc, "+")
	require.NotContains(t, enc, "/")

	b, err := base64.RawURLEncoding.DecodeString(enc)
	require.Nil(t, err)
	require.JSONEq(t, `{"id":15,"_pointsToNextItems":true}`, string(b))
	require.Equal(t, enc, c.String())
}

func TestDecodeCursor(t *testing.T) {
	t.Run("Round-Trip", func(t *testing.T) {
		// Arrange
		c := envelope.NewCursor(map[string]any{"id": 42, "name": "widget"}, false)

		// Act
		actual, err := envelope.DecodeCursor(c.Encode())

		// Assert
		require.Nil(t, err)
		require.True(t, actual.PointsToPreviousItems())
		require.Equal(t, json.Number("42"), actual.Params["id"])
		require.Equal(t, "widget", actual.Params["name"])
		require.NotContains(t, actual.Params, "_pointsToNextItems")
	})

	t.Run("Padded", func(t *testing.T) {
		// Arrange
		enc := base64.URLEncoding.EncodeToString([]byte(`{"id":1,"_pointsToNextItems":true}`))

		// Act
		actual, err := envelope.DecodeCursor(enc)

		// Assert
		require.Nil(t, err)
		require.True(t, actual.PointsToNextItems)
	})

	for _, tc := range []struct {
		name string
		enc  string
	}{
		{"Not-Base64", "!!!"},
		{"Not-JSON", base64.RawURLEncoding.EncodeToString([]byte("nope"))},
		{"No-Direction", base64.RawURLEncoding.EncodeToString([]byte(`{"id":1}`))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := envelope.DecodeCursor(tc.enc)
			require.ErrorIs(t, err, envelope.ErrNotValid)
			require.Nil(t, actual)
		})
	}
}

func TestCursorParam(t *testing.T) {
	c := envelope.NewCursor(map[string]any{"id": 7}, true)

	val, err := c.Param("id")
	require.Nil(t, err)
	require.Equal(t, 7, val)

	val, err = c.Param("created_at")
	require.ErrorIs(t, err, envelope.ErrNotValid)
	require.Nil(t, val)
}
