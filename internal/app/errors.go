package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNotStarted is returned when an operation runs before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrInvalidTransition is returned when an offer or verification
	// decision does not apply to the record's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrBadPaymentMethod is returned for unknown payment methods.
	ErrBadPaymentMethod = errors.New("unsupported payment method")

	// ErrMissingReference is returned when a record points at an unknown
	// supplier or event.
	ErrMissingReference = errors.New("referenced record not found")
)
