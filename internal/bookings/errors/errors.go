package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrPlaceNotFound = errors.New("place not found")

	ErrUserNotFound = errors.New("user not found")

	ErrInvalidRange = errors.New("start date must not be after end date")

	ErrOutsideAvailability = errors.New("requested dates are outside the place availability")

	ErrSlotUnavailable = errors.New("requested dates overlap an existing booking")
)
