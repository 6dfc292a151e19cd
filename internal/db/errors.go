package db

import "errors"

var (
	// ErrNotFound is returned when a document does not exist or is not
	// visible to the requesting owner.
	ErrNotFound = errors.New("db: not found")

	// ErrDuplicateEmail is returned when an insert or save would violate
	// the unique email index.
	ErrDuplicateEmail = errors.New("db: email already registered")
)
