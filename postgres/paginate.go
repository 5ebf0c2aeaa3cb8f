package postgres

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/xy-planning-network/responsable/envelope"
	"gorm.io/gorm"
)

const (
	// DefaultPerPage is the page size used when a non-positive one is requested.
	DefaultPerPage = 15

	cursorColumn = "id"
)

// A Keyed record is identified by an auto-incrementing primary key.
//
// responsable.Model satisfies Keyed.
type Keyed interface {
	GetID() uint
}

// Paginate fetches page of the records of type T matching db's query, perPage at a time,
// counting all matching records to describe the page with an envelope.LengthAware.
//
// A page less than 1 fetches the first page.
// A perPage less than 1 uses DefaultPerPage.
// If the page's offset overflows an int, ErrNotValid returns.
func Paginate[T any](db *gorm.DB, page, perPage int) ([]T, envelope.LengthAware, error) {
	page, perPage = normalize(page, perPage)
	offset, err := pageOffset(page, perPage)
	if err != nil {
		return nil, envelope.LengthAware{}, err
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Model(new(T)).Count(&total).Error; err != nil {
		return nil, envelope.LengthAware{}, fmt.Errorf("%w: cannot count: %s", ErrUnexpected, err)
	}

	items := make([]T, 0, perPage)
	err = db.Session(&gorm.Session{}).
		Limit(perPage).
		Offset(offset).
		Find(&items).
		Error
	if err != nil {
		return nil, envelope.LengthAware{}, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	return items, envelope.NewLengthAware(int(total), perPage, page, len(items)), nil
}

// SimplePaginate fetches page of the records of type T matching db's query, perPage at a time,
// describing the page with an envelope.Simple.
//
// SimplePaginate does not count all matching records;
// it fetches one more than perPage to learn whether more pages follow.
// If the page's offset overflows an int, ErrNotValid returns.
func SimplePaginate[T any](db *gorm.DB, page, perPage int) ([]T, envelope.Simple, error) {
	page, perPage = normalize(page, perPage)
	offset, err := pageOffset(page, perPage)
	if err != nil {
		return nil, envelope.Simple{}, err
	}

	items := make([]T, 0, perPage+1)
	err = db.Session(&gorm.Session{}).
		Limit(perPage + 1).
		Offset(offset).
		Find(&items).
		Error
	if err != nil {
		return nil, envelope.Simple{}, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	hasMore := len(items) > perPage
	if hasMore {
		items = items[:perPage]
	}

	return items, envelope.NewSimple(perPage, page, hasMore), nil
}

// CursorPaginate fetches perPage of the records of type T matching db's query,
// ordered by their primary key, starting after or before cur.
// A nil cur fetches the first page.
//
// CursorPaginate describes the page with an envelope.CursorPage
// whose cursors hold the "id" of the first and last records of the page.
//
// db must not order its query.
// If cur has no "id" or it is not a positive integer, ErrNotValid returns.
func CursorPaginate[T Keyed](db *gorm.DB, perPage int, cur *envelope.Cursor) ([]T, envelope.CursorPage, error) {
	_, perPage = normalize(1, perPage)

	q := db.Session(&gorm.Session{})
	switch {
	case cur == nil:
		q = q.Order(cursorColumn + " asc")

	default:
		val, err := cur.Param(cursorColumn)
		if err != nil {
			return nil, envelope.CursorPage{}, fmt.Errorf("%w: %s", ErrNotValid, err)
		}

		id, err := toID(val)
		if err != nil {
			return nil, envelope.CursorPage{}, err
		}

		if cur.PointsToNextItems {
			q = q.Where(cursorColumn+" > ?", id).Order(cursorColumn + " asc")
		} else {
			q = q.Where(cursorColumn+" < ?", id).Order(cursorColumn + " desc")
		}
	}

	items := make([]T, 0, perPage+1)
	if err := q.Limit(perPage + 1).Find(&items).Error; err != nil {
		return nil, envelope.CursorPage{}, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	hasMore := len(items) > perPage
	if hasMore {
		items = items[:perPage]
	}

	if cur != nil && cur.PointsToPreviousItems() {
		slices.Reverse(items)
	}

	var first, last *envelope.Cursor
	if len(items) > 0 {
		first = envelope.NewCursor(map[string]any{cursorColumn: items[0].GetID()}, false)
		last = envelope.NewCursor(map[string]any{cursorColumn: items[len(items)-1].GetID()}, true)
	}

	return items, envelope.NewCursorPage(perPage, hasMore, cur, first, last), nil
}

// normalize bounds page and perPage to positive values.
func normalize(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}

	if perPage < 1 {
		perPage = DefaultPerPage
	}

	return page, perPage
}

// pageOffset computes how many records precede page.
// page and perPage must already be normalized.
func pageOffset(page, perPage int) (int, error) {
	if page-1 > (math.MaxInt-perPage)/perPage {
		return 0, fmt.Errorf("%w: page %d exceeds the largest offset for %d per page", ErrNotValid, page, perPage)
	}

	return (page - 1) * perPage, nil
}

// toID converts the cursor value into a primary key.
func toID(val any) (uint64, error) {
	var (
		id  uint64
		err error
	)

	switch v := val.(type) {
	case json.Number:
		id, err = strconv.ParseUint(v.String(), 10, 64)
	case string:
		id, err = strconv.ParseUint(v, 10, 64)
	case float64:
		if v > 0 && v == float64(uint64(v)) {
			id = uint64(v)
		}
	case int:
		if v > 0 {
			id = uint64(v)
		}
	case int64:
		if v > 0 {
			id = uint64(v)
		}
	case uint:
		id = uint64(v)
	case uint64:
		id = v
	default:
		err = fmt.Errorf("unsupported type %T", val)
	}

	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: cursor %q %v", ErrNotValid, cursorColumn, val)
	}

	return id, nil
}
