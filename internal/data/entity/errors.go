package entity

import "errors"

// Domain errors shared by the repositories and services. Handlers match
// these with errors.Is to pick the HTTP status and message.
var (
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSlotFull          = errors.New("slot is already booked to capacity")
	ErrSlotNotBookable   = errors.New("slot is cancelled or completed and accepts no booking changes")
	ErrBookingNotFound   = errors.New("booking not found or already cancelled")
	ErrCapacityViolation = errors.New("capacity cannot be lowered below the current booked count")
	ErrSlotHasBookings   = errors.New("slot still has confirmed bookings")
	ErrInvalidTransition = errors.New("slot is already in a terminal status")
	ErrValidation        = errors.New("validation failed")
	ErrStoreUnavailable  = errors.New("persistence store unreachable, retry later")
)
