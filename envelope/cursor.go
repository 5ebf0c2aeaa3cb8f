package envelope

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

const pointsToNextItemsKey = "_pointsToNextItems"

// A Cursor marks a position in an ordered result set
// by the values of the ordering columns at that position.
type Cursor struct {
	// Params maps ordering columns to their values; values must be representable in JSON.
	Params map[string]any

	// PointsToNextItems is true when the Cursor fetches items after the position
	// and false when it fetches items before it.
	PointsToNextItems bool
}

// NewCursor constructs a *Cursor.
func NewCursor(params map[string]any, pointsToNextItems bool) *Cursor {
	return &Cursor{Params: params, PointsToNextItems: pointsToNextItems}
}

// DecodeCursor parses a string produced by Encode.
//
// DecodeCursor returns ErrNotValid when enc is not an encoded Cursor.
func DecodeCursor(enc string) (*Cursor, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(enc, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: cursor is not base64: %s", ErrNotValid, err)
	}

	raw := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: cursor is not JSON: %s", ErrNotValid, err)
	}

	next, ok := raw[pointsToNextItemsKey].(bool)
	if !ok {
		return nil, fmt.Errorf("%w: cursor has no direction", ErrNotValid)
	}
	delete(raw, pointsToNextItemsKey)

	return &Cursor{Params: raw, PointsToNextItems: next}, nil
}

// Encode serializes the Cursor into a URL-safe string.
//
// Encode returns an empty string if a value in Params cannot be represented in JSON.
func (c Cursor) Encode() string {
	m := make(map[string]any, len(c.Params)+1)
	for k, v := range c.Params {
		m[k] = v
	}
	m[pointsToNextItemsKey] = c.PointsToNextItems

	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}

	return base64.RawURLEncoding.EncodeToString(b)
}

// Param retrieves the value of the named ordering column.
//
// Param returns ErrNotValid when the Cursor has no such column.
func (c Cursor) Param(name string) (any, error) {
	val, ok := c.Params[name]
	if !ok {
		return nil, fmt.Errorf("%w: cursor has no %q param", ErrNotValid, name)
	}

	return val, nil
}

// PointsToPreviousItems asserts whether the Cursor fetches items before its position.
func (c Cursor) PointsToPreviousItems() bool { return !c.PointsToNextItems }

// String returns the encoded Cursor.
func (c Cursor) String() string { return c.Encode() }
