package repository

import "errors"

var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrOverlap is returned when an insert would violate the booking
	// non-overlap invariant.
	ErrOverlap = errors.New("booking overlaps an existing booking")
)
