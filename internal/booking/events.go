package booking

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/example/table-reservations/internal/domain/reservation"
)

// Event is one input to a session. Dispatch handles each variant to completion
// before admitting the next.
type Event interface {
	isEvent()
}

// FieldChanged is the user editing one form field. Guests is parsed as an integer;
// anything unparseable is stored as 0 so validation reports it. A non-empty time must be
// one of the available slots for the chosen date; otherwise the draft is left as it was.
type FieldChanged struct {
	Field reservation.Field
	Value string
}

// GuestsStepped is the +/- guest counter; the result is clamped to the allowed range.
type GuestsStepped struct {
	Delta int
}

// SubmitRequested asks the session to validate the draft and, if it passes, submit it.
type SubmitRequested struct{}

func (FieldChanged) isEvent()    {}
func (GuestsStepped) isEvent()   {}
func (SubmitRequested) isEvent() {}

// caller holds s.mu
func (s *Session) changeField(e FieldChanged) error {
	v := strings.TrimSpace(e.Value)

	switch e.Field {
	case reservation.FieldDate:
		if v == "" {
			s.draft.Date = reservation.Date{}
			break
		}
		d, err := reservation.ParseDate(v)
		if err != nil {
			s.log.Debug("unparseable date, clearing availability", zap.String("value", v), zap.Error(err))
			d = reservation.Date{}
		}
		// slot list and time reset land in the same critical section
		s.draft.Date = d
		s.available = s.slots(d)
		s.draft.Time = ""
	case reservation.FieldTime:
		if v != "" {
			v = reservation.NormalizeSlot(v)
			if s.draft.Date.IsZero() || !slices.Contains(s.available, v) {
				return fmt.Errorf("%w: %q", ErrUnavailableTime, v)
			}
		}
		s.draft.Time = v
	case reservation.FieldGuests:
		n, err := strconv.Atoi(v)
		if err != nil {
			n = 0
		}
		s.draft.Guests = n
	case reservation.FieldOccasion:
		s.draft.Occasion = reservation.Occasion(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
	}

	delete(s.errs, e.Field)
	s.log.Debug("field changed", zap.String("field", string(e.Field)), zap.String("value", v))
	return nil
}

// caller holds s.mu
func (s *Session) stepGuests(delta int) {
	n := s.draft.Guests + delta
	if n < reservation.MinGuests {
		n = reservation.MinGuests
	}
	if n > reservation.MaxGuests {
		n = reservation.MaxGuests
	}
	s.draft.Guests = n
	delete(s.errs, reservation.FieldGuests)
}
