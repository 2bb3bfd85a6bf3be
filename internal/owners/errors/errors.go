package errors

import "errors"

var (
	ErrNotFound = errors.New("owner not found")

	ErrEmailTaken = errors.New("email already registered")

	ErrHasPlaces = errors.New("owner still has places")
)
