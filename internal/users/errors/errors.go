package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	ErrEmailTaken = errors.New("email already registered")

	ErrHasBookings = errors.New("user still has bookings")
)
