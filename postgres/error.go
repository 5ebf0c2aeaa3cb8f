package postgres

import "errors"

var (
	ErrConnect    = errors.New("cannot connect")
	ErrMigrate    = errors.New("cannot migrate")
	ErrNotValid   = errors.New("not valid")
	ErrUnexpected = errors.New("unexpected")
)
