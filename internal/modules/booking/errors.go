package booking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrFacilityNotFound = errors.New("facility not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrConflict         = errors.New("facility already booked for selected time")
	ErrForbidden        = errors.New("not authorized to cancel this booking")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)
