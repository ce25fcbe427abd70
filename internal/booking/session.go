package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/table-reservations/internal/domain/reservation"
)

// Submitter hands a validated draft to the booking backend.
// It is called at most once per submit attempt and never retried implicitly.
type Submitter interface {
	Submit(ctx context.Context, d reservation.Draft) (bool, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, d reservation.Draft) (bool, error)

func (f SubmitterFunc) Submit(ctx context.Context, d reservation.Draft) (bool, error) {
	return f(ctx, d)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

type Option func(*Session)

func WithClock(c Clock) Option { return func(s *Session) { s.clock = c } }

// WithLocation sets the zone used to decide what "today" is.
func WithLocation(loc *time.Location) Option { return func(s *Session) { s.loc = loc } }

func WithSlotSource(src reservation.SlotSource) Option {
	return func(s *Session) { s.slots = src }
}

func WithLogger(l *zap.Logger) Option { return func(s *Session) { s.log = l } }

// WithNoticeHandler registers the receiver of one-shot user notices such as FailureNotice.
// It is called without the session lock held.
func WithNoticeHandler(fn func(msg string)) Option {
	return func(s *Session) { s.onNotice = fn }
}

// Session is one booking form from open to confirmation or teardown.
// Events are applied one at a time under a single lock; the submit call is the only
// work that runs outside it.
type Session struct {
	id        string
	submitter Submitter
	slots     reservation.SlotSource
	clock     Clock
	loc       *time.Location
	log       *zap.Logger
	onNotice  func(string)

	baseCtx context.Context
	cancel  context.CancelFunc

	mu           sync.Mutex
	phase        Phase
	available    []string
	draft        reservation.Draft
	errs         reservation.FieldErrors
	confirmation *Confirmation
	gen          uint64
	idle         chan struct{} // closed while no submission is in flight
	confirmed    chan struct{}
}

// NewSession opens a session and loads today's availability.
func NewSession(submitter Submitter, opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		submitter: submitter,
		slots:     reservation.GenerateSlots,
		clock:     RealClock{},
		loc:       time.Local,
		draft:     reservation.NewDraft(),
		errs:      reservation.FieldErrors{},
		idle:      make(chan struct{}),
		confirmed: make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.With(zap.String("session_id", s.id))
	close(s.idle)
	s.baseCtx, s.cancel = context.WithCancel(context.Background())

	today := reservation.DateOf(s.clock.Now().In(s.loc))
	s.available = s.slots(today)
	s.log.Debug("session opened", zap.String("today", today.String()), zap.Int("slots", len(s.available)))
	return s
}

func (s *Session) ID() string { return s.id }

// Dispatch applies ev. A submit that fails validation returns ErrInvalidDraft with the
// field messages recorded in the state; a submit that passes returns nil as soon as the
// submission has been started. Use Wait or Confirmed to observe its outcome.
func (s *Session) Dispatch(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseClosed:
		return ErrSessionClosed
	case PhaseConfirmed:
		return ErrSessionConfirmed
	}

	switch e := ev.(type) {
	case FieldChanged:
		return s.changeField(e)
	case GuestsStepped:
		s.stepGuests(e.Delta)
		return nil
	case SubmitRequested:
		return s.submit()
	default:
		return fmt.Errorf("booking: unsupported event %T", ev)
	}
}

// caller holds s.mu
func (s *Session) submit() error {
	if s.phase == PhaseSubmitting {
		return ErrSubmitInFlight
	}

	s.errs = s.draft.Validate()
	if len(s.errs) > 0 {
		s.log.Debug("submit rejected by validation", zap.Int("errors", len(s.errs)))
		return ErrInvalidDraft
	}

	s.phase = PhaseSubmitting
	s.gen++
	s.idle = make(chan struct{})

	gen := s.gen
	snapshot := s.draft
	s.log.Info("submitting reservation",
		zap.Uint64("gen", gen),
		zap.String("date", snapshot.Date.String()),
		zap.String("time", snapshot.Time),
		zap.Int("guests", snapshot.Guests),
		zap.String("occasion", string(snapshot.Occasion)),
	)
	go s.runSubmission(gen, snapshot)
	return nil
}

func (s *Session) runSubmission(gen uint64, d reservation.Draft) {
	accepted, err := s.submitter.Submit(s.baseCtx, d)
	s.resolve(gen, d, accepted, err)
}

func (s *Session) resolve(gen uint64, submitted reservation.Draft, accepted bool, err error) {
	s.mu.Lock()
	if s.phase != PhaseSubmitting || gen != s.gen {
		s.mu.Unlock()
		s.log.Debug("discarding stale submission result", zap.Uint64("gen", gen), zap.Bool("accepted", accepted))
		return
	}

	if err != nil {
		s.log.Warn("submission failed", zap.Uint64("gen", gen), zap.Error(err))
		accepted = false
	}

	if accepted {
		s.phase = PhaseConfirmed
		s.confirmation = &Confirmation{
			SessionID:   s.id,
			Booking:     submitted,
			ConfirmedAt: s.clock.Now(),
		}
		s.draft = reservation.Draft{}
		close(s.confirmed)
		close(s.idle)
		s.mu.Unlock()
		s.log.Info("reservation confirmed", zap.Uint64("gen", gen))
		return
	}

	s.phase = PhaseIdle
	idle := s.idle
	notify := s.onNotice
	s.mu.Unlock()

	s.log.Info("reservation rejected", zap.Uint64("gen", gen))
	if notify != nil && s.current(gen) {
		notify(FailureNotice)
	}
	// waiters wake only after the notice is out
	close(idle)
}

// current reports whether attempt gen is still the latest one on a live session.
func (s *Session) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase != PhaseClosed && gen == s.gen
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() State {
	st := State{
		SessionID:      s.id,
		Phase:          s.phase,
		AvailableSlots: append([]string(nil), s.available...),
		Draft:          s.draft,
		Errors:         s.errs.Clone(),
		Submitting:     s.phase == PhaseSubmitting || s.phase == PhaseConfirmed,
		CanSubmit:      s.phase == PhaseIdle && s.draft.Complete(),
	}
	if s.confirmation != nil {
		c := *s.confirmation
		st.Confirmation = &c
	}
	return st
}

// Wait blocks until no submission is in flight and returns the resulting state.
// For a rejected attempt it returns after the notice handler has run.
func (s *Session) Wait(ctx context.Context) (State, error) {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return s.Snapshot(), nil
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
}

// Confirmed is closed when the session reaches the confirmed state.
func (s *Session) Confirmed() <-chan struct{} {
	return s.confirmed
}

// Close tears the session down. An in-flight submission is cancelled and its result,
// whenever it arrives, is discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseClosed {
		return
	}
	if s.phase == PhaseSubmitting {
		close(s.idle)
	}
	s.phase = PhaseClosed
	s.gen++
	s.cancel()
	s.draft = reservation.Draft{}
	s.available = nil
	s.errs = reservation.FieldErrors{}
	s.log.Debug("session closed")
}
