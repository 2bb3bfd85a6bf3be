package errors

import "errors"

var (
	ErrNotFound = errors.New("review not found")

	ErrPlaceNotFound = errors.New("place not found")

	ErrUserNotFound = errors.New("user not found")
)
