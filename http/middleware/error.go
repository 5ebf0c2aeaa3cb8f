package middleware

import "errors"

var (
	ErrPanic = errors.New("recovered panic")
)
