package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique constraint would be violated
	ErrAlreadyExists = errors.New("already exists")
)
