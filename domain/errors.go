package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrNilQueryInput  = errors.New("query options is nil")
	ErrInvalidProcess = errors.New("invalid process")
	ErrEmptyInput     = errors.New("no processes given")
)
