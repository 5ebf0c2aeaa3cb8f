package envelope_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responsable/envelope"
)

func TestNewLengthAware(t *testing.T) {
	intPtr := func(i int) *int { return &i }
	tcs := []struct {
		name     string
		total    int
		perPage  int
		page     int
		count    int
		expected envelope.LengthAware
	}{
		{
			"Empty",
			0, 10, 1, 0,
			envelope.LengthAware{PerPage: 10, CurrentPage: 1, LastPage: 1},
		},
		{
			"First-Page",
			25, 10, 1, 10,
			envelope.LengthAware{Total: 25, PerPage: 10, CurrentPage: 1, LastPage: 3, FirstItem: intPtr(1), LastItem: intPtr(10)},
		},
		{
			"Last-Page",
			25, 10, 3, 5,
			envelope.LengthAware{Total: 25, PerPage: 10, CurrentPage: 3, LastPage: 3, FirstItem: intPtr(21), LastItem: intPtr(25)},
		},
		{
			"Past-Last-Page",
			25, 10, 4, 0,
			envelope.LengthAware{Total: 25, PerPage: 10, CurrentPage: 4, LastPage: 3},
		},
		{
			"Zero-Per-Page",
			25, 0, 1, 0,
			envelope.LengthAware{Total: 25, CurrentPage: 1, LastPage: 1},
		},
		{
			"Overflowing-Page",
			3, 2, math.MaxInt, 2,
			envelope.LengthAware{Total: 3, PerPage: 2, CurrentPage: math.MaxInt, LastPage: 2},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, envelope.NewLengthAware(tc.total, tc.perPage, tc.page, tc.count))
		})
	}
}

func TestLengthAwareMeta(t *testing.T) {
	// Arrange
	la := envelope.NewLengthAware(0, 10, 1, 0)

	// Act
	actual := la.Meta()

	// Assert
	require.Len(t, actual, 6)
	require.Nil(t, actual["first_item_index"])
	require.Nil(t, actual["last_item_index"])
	require.Contains(t, actual, "first_item_index")
	require.Contains(t, actual, "last_item_index")
}

func TestNewCursorPage(t *testing.T) {
	first := envelope.NewCursor(map[string]any{"id": 1}, false)
	last := envelope.NewCursor(map[string]any{"id": 5}, true)
	forward := envelope.NewCursor(map[string]any{"id": 0}, true)
	backward := envelope.NewCursor(map[string]any{"id": 6}, false)

	tcs := []struct {
		name     string
		hasMore  bool
		current  *envelope.Cursor
		expected envelope.CursorPage
	}{
		{"First-Page-More", true, nil, envelope.CursorPage{PerPage: 5, HasMorePages: true, Next: last}},
		{"First-Page-Only", false, nil, envelope.CursorPage{PerPage: 5}},
		{"Forward-More", true, forward, envelope.CursorPage{PerPage: 5, HasMorePages: true, Next: last, Prev: first}},
		{"Forward-End", false, forward, envelope.CursorPage{PerPage: 5, Prev: first}},
		{"Backward-More", true, backward, envelope.CursorPage{PerPage: 5, HasMorePages: true, Next: last, Prev: first}},
		{"Backward-Start", false, backward, envelope.CursorPage{PerPage: 5, HasMorePages: true, Next: last}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, envelope.NewCursorPage(5, tc.hasMore, tc.current, first, last))
		})
	}
}

func TestCursorPageMeta(t *testing.T) {
	// Arrange
	prev := envelope.NewCursor(map[string]any{"id": 3}, false)
	cp := envelope.CursorPage{PerPage: 2, HasMorePages: true, Prev: prev}

	// Act
	actual := cp.Meta()

	// Assert
	require.NotContains(t, actual, "next_cursor")
	require.Equal(t, prev.Encode(), actual["prev_cursor"])

	// Arrange
	cp.Prev = envelope.NewCursor(map[string]any{"fn": func() {}}, false)

	// Act
	actual = cp.Meta()

	// Assert
	require.NotContains(t, actual, "prev_cursor")
}
