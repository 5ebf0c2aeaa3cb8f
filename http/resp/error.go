package resp

import "errors"

var (
	ErrDone        = errors.New("request ctx done")
	ErrMissingData = errors.New("missing data")
	ErrNotFound    = errors.New("not found")
	ErrNotValid    = errors.New("not valid")
)
