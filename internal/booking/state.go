package booking

import (
	"fmt"
	"time"

	"github.com/example/table-reservations/internal/domain/reservation"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseConfirmed
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseClosed:
		return "closed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Confirmation describes a booking the submitter accepted.
type Confirmation struct {
	SessionID   string            `json:"session_id"`
	Booking     reservation.Draft `json:"booking"`
	ConfirmedAt time.Time         `json:"confirmed_at"`
}

// State is a point-in-time copy of a session. Callers may keep and mutate it freely.
type State struct {
	SessionID      string
	Phase          Phase
	AvailableSlots []string
	Draft          reservation.Draft
	Errors         reservation.FieldErrors
	Submitting     bool
	// CanSubmit drives the submit affordance: a complete draft and nothing in flight.
	CanSubmit    bool
	Confirmation *Confirmation
}

// AvailabilityHint renders the "N times available" help line, or "" when there are none.
func (st State) AvailabilityHint() string {
	switch n := len(st.AvailableSlots); n {
	case 0:
		return ""
	case 1:
		return "1 time available"
	default:
		return fmt.Sprintf("%d times available", n)
	}
}
