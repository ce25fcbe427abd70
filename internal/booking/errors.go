package booking

import "errors"

// FailureNotice is raised once for every rejected submission.
const FailureNotice = "Booking failed. Please try again."

var (
	ErrInvalidDraft     = errors.New("booking: draft failed validation")
	ErrSubmitInFlight   = errors.New("booking: submission already in flight")
	ErrSessionConfirmed = errors.New("booking: session already confirmed")
	ErrSessionClosed    = errors.New("booking: session closed")
	ErrUnknownField     = errors.New("booking: unknown field")
	ErrUnavailableTime  = errors.New("booking: time not available for the chosen date")
)
