package errors

import "errors"

var (
	ErrNotFound = errors.New("place not found")

	ErrOwnerNotFound = errors.New("owner not found")

	ErrInvalidAvailability = errors.New("availability start must not be after end")

	ErrHasBookings = errors.New("place still has bookings")

	ErrBookingsOutsideAvailability = errors.New("existing bookings fall outside the new availability")

	ErrInvalidFilter = errors.New("invalid place search filter")
)
