package reservation

import "context"

// BookingProvider is the availability and booking backend the form talks to.
type BookingProvider interface {
	Name() string
	FindSlots(ctx context.Context, d Date) ([]string, error)
	// Submit offers the draft for booking; true means the booking was accepted.
	Submit(ctx context.Context, d Draft) (bool, error)
}
