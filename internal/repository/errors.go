package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when a create collides with an existing id
	ErrDuplicateID = errors.New("duplicate id")

	// ErrUnavailable is returned when the backend store cannot be reached
	ErrUnavailable = errors.New("store unavailable")
)
