package envelope

import "math"

// Meta is the pagination metadata of a successful Envelope.
type Meta map[string]any

// A Paginator describes how a result set was paged.
//
// The set of implementations is closed: LengthAware, Simple and CursorPage.
type Paginator interface {
	Meta() Meta
	paginator()
}

var (
	_ Paginator = LengthAware{}
	_ Paginator = Simple{}
	_ Paginator = CursorPage{}
)

// A LengthAware describes a page of a result set whose total size is known.
//
// FirstItem and LastItem are 1-based indexes into the whole result set;
// both are nil when the page is empty.
type LengthAware struct {
	Total       int
	PerPage     int
	CurrentPage int
	LastPage    int
	FirstItem   *int
	LastItem    *int
}

// NewLengthAware computes a LengthAware for the page currentPage
// holding count items out of total, perPage at a time.
//
// LastPage is never less than 1.
// FirstItem and LastItem stay nil when the page holds no items
// or when its item indexes overflow an int.
func NewLengthAware(total, perPage, currentPage, count int) LengthAware {
	la := LengthAware{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: currentPage,
		LastPage:    1,
	}

	if perPage > 0 && total > 0 {
		la.LastPage = (total + perPage - 1) / perPage
	}

	if count > 0 && currentPage > 0 && perPage > 0 && currentPage-1 <= (math.MaxInt-count)/perPage {
		first := (currentPage-1)*perPage + 1
		last := first + count - 1
		la.FirstItem, la.LastItem = &first, &last
	}

	return la
}

// Meta reports total, per_page, current_page, last_page, first_item_index and last_item_index.
func (la LengthAware) Meta() Meta {
	m := Meta{
		"total":            la.Total,
		"per_page":         la.PerPage,
		"current_page":     la.CurrentPage,
		"last_page":        la.LastPage,
		"first_item_index": nil,
		"last_item_index":  nil,
	}

	if la.FirstItem != nil {
		m["first_item_index"] = *la.FirstItem
	}

	if la.LastItem != nil {
		m["last_item_index"] = *la.LastItem
	}

	return m
}

func (LengthAware) paginator() {}

// A Simple describes a page of a result set whose total size is unknown.
type Simple struct {
	PerPage      int
	CurrentPage  int
	HasMorePages bool
}

// NewSimple constructs a Simple.
func NewSimple(perPage, currentPage int, hasMore bool) Simple {
	return Simple{PerPage: perPage, CurrentPage: currentPage, HasMorePages: hasMore}
}

// Meta reports per_page, current_page and has_more_pages.
func (s Simple) Meta() Meta {
	return Meta{
		"per_page":       s.PerPage,
		"current_page":   s.CurrentPage,
		"has_more_pages": s.HasMorePages,
	}
}

func (Simple) paginator() {}

// A CursorPage describes a page of a result set traversed by cursors.
//
// Next and Prev are nil when there is no page in that direction.
type CursorPage struct {
	PerPage      int
	HasMorePages bool
	Next         *Cursor
	Prev         *Cursor
}

// NewCursorPage computes a CursorPage from the cursor used to fetch the page (nil for the first page),
// whether more items exist past the page in the direction traversed,
// and the cursors pointing at the first and last items of the page.
//
// first must point to previous items and last to next items;
// both are ignored when nil, as for an empty page.
func NewCursorPage(perPage int, hasMore bool, current, first, last *Cursor) CursorPage {
	cp := CursorPage{PerPage: perPage}

	switch {
	case current == nil:
		cp.HasMorePages = hasMore
		if hasMore {
			cp.Next = last
		}

	case current.PointsToNextItems:
		cp.HasMorePages = hasMore
		if hasMore {
			cp.Next = last
		}
		cp.Prev = first

	default:
		cp.HasMorePages = true
		cp.Next = last
		if hasMore {
			cp.Prev = first
		}
	}

	return cp
}

// Meta reports per_page, has_more_pages and, when present, next_cursor and prev_cursor.
func (cp CursorPage) Meta() Meta {
	m := Meta{
		"per_page":       cp.PerPage,
		"has_more_pages": cp.HasMorePages,
	}

	if cp.Next != nil {
		if enc := cp.Next.Encode(); enc != "" {
			m["next_cursor"] = enc
		}
	}

	if cp.Prev != nil {
		if enc := cp.Prev.Encode(); enc != "" {
			m["prev_cursor"] = enc
		}
	}

	return m
}

func (CursorPage) paginator() {}
