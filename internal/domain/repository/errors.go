package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert hits a unique constraint,
	// including the (author, title) review constraint.
	ErrDuplicate = errors.New("duplicate")
)
