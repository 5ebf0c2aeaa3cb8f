package postgres_test

import (
	"math"

	"github.com/xy-planning-network/responsable/envelope"
	"github.com/xy-planning-network/responsable/postgres"
)

func intPtr(i int) *int { return &i }

func (suite *DBTestSuite) TestPaginate() {
	// Arrange
	suite.seed(7)

	for _, tc := range []struct {
		name     string
		page     int
		perPage  int
		ids      []uint
		expected envelope.LengthAware
	}{
		{"first", 1, 3, []uint{1, 2, 3}, envelope.LengthAware{Total: 7, PerPage: 3, CurrentPage: 1, LastPage: 3, FirstItem: intPtr(1), LastItem: intPtr(3)}},
		{"last", 3, 3, []uint{7}, envelope.LengthAware{Total: 7, PerPage: 3, CurrentPage: 3, LastPage: 3, FirstItem: intPtr(7), LastItem: intPtr(7)}},
		{"past-the-end", 4, 3, []uint{}, envelope.LengthAware{Total: 7, PerPage: 3, CurrentPage: 4, LastPage: 3}},
		{"page-zero", 0, 3, []uint{1, 2, 3}, envelope.LengthAware{Total: 7, PerPage: 3, CurrentPage: 1, LastPage: 3, FirstItem: intPtr(1), LastItem: intPtr(3)}},
		{"default-per-page", 1, 0, []uint{1, 2, 3, 4, 5, 6, 7}, envelope.LengthAware{Total: 7, PerPage: postgres.DefaultPerPage, CurrentPage: 1, LastPage: 1, FirstItem: intPtr(1), LastItem: intPtr(7)}},
	} {
		suite.Run(tc.name, func() {
			// Act
			widgets, la, err := postgres.Paginate[Widget](suite.db.Order("id"), tc.page, tc.perPage)

			// Assert
			suite.Require().Nil(err)
			suite.Require().Equal(tc.ids, ids(widgets))
			suite.Require().Equal(tc.expected, la)
		})
	}
}

func (suite *DBTestSuite) TestPaginateScoped() {
	// Arrange
	suite.seed(7)

	// Act
	widgets, la, err := postgres.Paginate[Widget](suite.db.Where("color = ?", "blue").Order("id"), 1, 2)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal([]uint{2, 4}, ids(widgets))
	suite.Require().Equal(3, la.Total)
	suite.Require().Equal(2, la.LastPage)
	suite.Require().Equal(envelope.Meta{
		"total":            3,
		"per_page":         2,
		"current_page":     1,
		"last_page":        2,
		"first_item_index": 1,
		"last_item_index":  2,
	}, la.Meta())
}

func (suite *DBTestSuite) TestPaginateOverflowingPage() {
	// Arrange
	suite.seed(3)

	for _, tc := range []struct {
		name    string
		page    int
		perPage int
	}{
		{"max-int", math.MaxInt, 2},
		{"just-past-max-offset", math.MaxInt/2 + 1, 2},
		{"default-per-page", math.MaxInt / 10, 0},
	} {
		suite.Run(tc.name, func() {
			// Act
			widgets, la, err := postgres.Paginate[Widget](suite.db.Order("id"), tc.page, tc.perPage)

			// Assert
			suite.Require().ErrorIs(err, postgres.ErrNotValid)
			suite.Require().Nil(widgets)
			suite.Require().Equal(envelope.LengthAware{}, la)

			// Act
			simple, sp, err := postgres.SimplePaginate[Widget](suite.db.Order("id"), tc.page, tc.perPage)

			// Assert
			suite.Require().ErrorIs(err, postgres.ErrNotValid)
			suite.Require().Nil(simple)
			suite.Require().Equal(envelope.Simple{}, sp)
		})
	}
}

func (suite *DBTestSuite) TestPaginateEmpty() {
	// Act
	widgets, la, err := postgres.Paginate[Widget](suite.db, 1, 5)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Empty(widgets)
	suite.Require().Equal(envelope.LengthAware{Total: 0, PerPage: 5, CurrentPage: 1, LastPage: 1}, la)
}

func (suite *DBTestSuite) TestSimplePaginate() {
	// Arrange
	suite.seed(5)

	for _, tc := range []struct {
		name     string
		page     int
		ids      []uint
		expected envelope.Simple
	}{
		{"first", 1, []uint{1, 2}, envelope.NewSimple(2, 1, true)},
		{"middle", 2, []uint{3, 4}, envelope.NewSimple(2, 2, true)},
		{"last", 3, []uint{5}, envelope.NewSimple(2, 3, false)},
		{"past-the-end", 4, []uint{}, envelope.NewSimple(2, 4, false)},
	} {
		suite.Run(tc.name, func() {
			// Act
			widgets, s, err := postgres.SimplePaginate[Widget](suite.db.Order("id"), tc.page, 2)

			// Assert
			suite.Require().Nil(err)
			suite.Require().Equal(tc.ids, ids(widgets))
			suite.Require().Equal(tc.expected, s)
		})
	}
}

func (suite *DBTestSuite) TestCursorPaginate() {
	// Arrange
	suite.seed(5)

	// Act: first page
	widgets, cp, err := postgres.CursorPaginate[Widget](suite.db, 2, nil)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal([]uint{1, 2}, ids(widgets))
	suite.Require().True(cp.HasMorePages)
	suite.Require().Nil(cp.Prev)
	suite.Require().NotNil(cp.Next)

	// Act: follow next, through the encoded cursor
	next, err := envelope.DecodeCursor(cp.Next.Encode())
	suite.Require().Nil(err)
	widgets, cp, err = postgres.CursorPaginate[Widget](suite.db, 2, next)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal([]uint{3, 4}, ids(widgets))
	suite.Require().True(cp.HasMorePages)
	suite.Require().NotNil(cp.Prev)
	suite.Require().NotNil(cp.Next)

	// Act: follow next to the last page
	next, err = envelope.DecodeCursor(cp.Next.Encode())
	suite.Require().Nil(err)
	widgets, cp, err = postgres.CursorPaginate[Widget](suite.db, 2, next)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal([]uint{5}, ids(widgets))
	suite.Require().False(cp.HasMorePages)
	suite.Require().Nil(cp.Next)
	suite.Require().NotNil(cp.Prev)

	// Act: follow prev back
	prev, err := envelope.DecodeCursor(cp.Prev.Encode())
	suite.Require().Nil(err)
	widgets, cp, err = postgres.CursorPaginate[Widget](suite.db, 2, prev)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal([]uint{3, 4}, ids(widgets))
	suite.Require().True(cp.HasMorePages)
	suite.Require().NotNil(cp.Next)
	suite.Require().NotNil(cp.Prev)

	// Act: follow prev to the first page
	prev, err = envelope.DecodeCursor(cp.Prev.Encode())
	suite.Require().Nil(err)
	widgets, cp, err = postgres.CursorPaginate[Widget](suite.db, 2, prev)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal([]uint{1, 2}, ids(widgets))
	suite.Require().True(cp.HasMorePages)
	suite.Require().NotNil(cp.Next)
	suite.Require().Nil(cp.Prev)
}

func (suite *DBTestSuite) TestCursorPaginateMeta() {
	// Arrange
	suite.seed(3)

	// Act
	_, cp, err := postgres.CursorPaginate[Widget](suite.db, 2, nil)

	// Assert
	suite.Require().Nil(err)
	meta := cp.Meta()
	suite.Require().Equal(2, meta["per_page"])
	suite.Require().Equal(true, meta["has_more_pages"])
	suite.Require().Equal(envelope.NewCursor(map[string]any{"id": uint(2)}, true).Encode(), meta["next_cursor"])
	suite.Require().NotContains(meta, "prev_cursor")
}

func (suite *DBTestSuite) TestCursorPaginateInvalid() {
	for _, tc := range []struct {
		name string
		cur  *envelope.Cursor
	}{
		{"missing-id", envelope.NewCursor(map[string]any{"name": "widget-1"}, true)},
		{"not-a-number", envelope.NewCursor(map[string]any{"id": "abc"}, true)},
		{"negative", envelope.NewCursor(map[string]any{"id": -1}, true)},
		{"fraction", envelope.NewCursor(map[string]any{"id": 1.5}, true)},
	} {
		suite.Run(tc.name, func() {
			// Act
			_, _, err := postgres.CursorPaginate[Widget](suite.db, 2, tc.cur)

			// Assert
			suite.Require().ErrorIs(err, postgres.ErrNotValid)
		})
	}
}
