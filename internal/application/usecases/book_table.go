package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/table-reservations/internal/booking"
	"github.com/example/table-reservations/internal/domain/reservation"
)

var (
	ErrBookingRejected = errors.New(booking.FailureNotice)
	ErrNoMatchingSlot  = errors.New("no matching slots")
)

// FormError carries the per-field messages of a draft that failed validation.
type FormError struct {
	Errors reservation.FieldErrors
}

func (e *FormError) Error() string {
	var msgs []string
	for _, f := range reservation.Fields {
		if msg, ok := e.Errors[f]; ok {
			msgs = append(msgs, fmt.Sprintf("%s: %s", f, msg))
		}
	}
	return "invalid booking: " + strings.Join(msgs, "; ")
}

// Request is one booking as entered in a single pass. Time wins over PreferredTimes;
// with neither, the earliest available slot is taken.
type Request struct {
	Date           string
	Time           string
	PreferredTimes []string
	Guests         int
	Occasion       string
}

// BookTable fills and submits one booking session without user interaction.
type BookTable struct {
	Submitter booking.Submitter
	Clock     booking.Clock
	Location  *time.Location
	Log       *zap.Logger
}

func (u BookTable) Execute(ctx context.Context, req Request) (booking.Confirmation, error) {
	if u.Submitter == nil {
		return booking.Confirmation{}, fmt.Errorf("submitter is nil")
	}

	var opts []booking.Option
	if u.Clock != nil {
		opts = append(opts, booking.WithClock(u.Clock))
	}
	if u.Location != nil {
		opts = append(opts, booking.WithLocation(u.Location))
	}
	if u.Log != nil {
		opts = append(opts, booking.WithLogger(u.Log))
	}
	s := booking.NewSession(u.Submitter, opts...)
	defer s.Close()

	// date first: changing it clears the time
	if err := s.Dispatch(booking.FieldChanged{Field: reservation.FieldDate, Value: req.Date}); err != nil {
		return booking.Confirmation{}, err
	}

	st := s.Snapshot()
	slot := ""
	if !st.Draft.Date.IsZero() {
		preferred := req.PreferredTimes
		if strings.TrimSpace(req.Time) != "" {
			preferred = []string{req.Time}
		}
		var ok bool
		slot, ok = reservation.ChooseSlot(preferred, st.AvailableSlots)
		if !ok {
			return booking.Confirmation{}, fmt.Errorf("%w on %s (available: %s)",
				ErrNoMatchingSlot, st.Draft.Date, strings.Join(st.AvailableSlots, ", "))
		}
	}

	fields := []booking.FieldChanged{
		{Field: reservation.FieldTime, Value: slot},
		{Field: reservation.FieldGuests, Value: strconv.Itoa(req.Guests)},
		{Field: reservation.FieldOccasion, Value: req.Occasion},
	}
	for _, f := range fields {
		if err := s.Dispatch(f); err != nil {
			return booking.Confirmation{}, err
		}
	}

	if err := s.Dispatch(booking.SubmitRequested{}); err != nil {
		if errors.Is(err, booking.ErrInvalidDraft) {
			return booking.Confirmation{}, &FormError{Errors: s.Snapshot().Errors}
		}
		return booking.Confirmation{}, err
	}

	st, err := s.Wait(ctx)
	if err != nil {
		return booking.Confirmation{}, fmt.Errorf("waiting for booking: %w", err)
	}
	if st.Confirmation == nil {
		return booking.Confirmation{}, ErrBookingRejected
	}
	return *st.Confirmation, nil
}
