package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/table-reservations/internal/booking"
	"github.com/example/table-reservations/internal/config"
	"github.com/example/table-reservations/internal/domain/reservation"
	"github.com/example/table-reservations/internal/infrastructure/mockapi"
)

const sessionHelp = `commands:
  date YYYY-MM-DD     choose a date (loads its available times)
  time HH:MM          choose one of the available times
  guests N            set party size
  + / -               add or remove a guest
  occasion NAME       set the occasion
  submit              reserve the table
  show                print the form
  slots               list times for the chosen date
  new                 start over with an empty form
  help                this text
  quit                leave`

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Fill in a booking form interactively",
		Long:  "Reads one command per line from stdin.\n\n" + sessionHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			r := &repl{
				cmd:      cmd,
				cfg:      cfg,
				log:      log,
				provider: mockapi.New(cfg, log),
				out:      cmd.OutOrStdout(),
			}
			return r.run(ctx, cmd.InOrStdin())
		},
	}
}

type repl struct {
	cmd      *cobra.Command
	cfg      config.Config
	log      *zap.Logger
	provider reservation.BookingProvider
	out      io.Writer
	s        *booking.Session
}

func (r *repl) open() {
	r.s = booking.NewSession(r.provider,
		booking.WithLocation(r.cfg.Location),
		booking.WithLogger(r.log),
		booking.WithNoticeHandler(func(msg string) { fmt.Fprintln(r.out, msg) }),
	)
	r.log.Debug("session started", zap.String("session_id", r.s.ID()), zap.String("provider", r.provider.Name()))
	fmt.Fprintf(r.out, "Table reservation (session %s). Type 'help' for commands.\n", r.s.ID())
	r.show()
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	r.open()
	defer func() { r.s.Close() }()

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !sc.Scan() {
			break
		}
		quit, err := r.handle(ctx, sc.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	fmt.Fprintln(r.out)
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	// input ran out mid-submit: let the attempt finish before tearing down
	if r.s.Snapshot().Phase == booking.PhaseSubmitting {
		return r.await(ctx)
	}
	return nil
}

// handle runs one input line. Only context cancellation and receipt failures are returned as
// errors; everything the user can fix is printed.
func (r *repl) handle(ctx context.Context, line string) (bool, error) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var ev booking.Event
	switch strings.ToLower(verb) {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(r.out, sessionHelp)
		printOccasions(r.out)
		return false, nil
	case "show":
		r.show()
		return false, nil
	case "slots":
		st := r.s.Snapshot()
		if st.Draft.Date.IsZero() {
			fmt.Fprintln(r.out, "select a date first")
			return false, nil
		}
		printDay(r.out, st.Draft.Date, st.AvailableSlots)
		return false, nil
	case "new":
		r.s.Close()
		r.open()
		return false, nil
	case "date":
		ev = booking.FieldChanged{Field: reservation.FieldDate, Value: arg}
	case "time":
		ev = booking.FieldChanged{Field: reservation.FieldTime, Value: reservation.NormalizeSlot(arg)}
	case "guests":
		ev = booking.FieldChanged{Field: reservation.FieldGuests, Value: arg}
	case "+":
		ev = booking.GuestsStepped{Delta: 1}
	case "-":
		ev = booking.GuestsStepped{Delta: -1}
	case "occasion":
		ev = booking.FieldChanged{Field: reservation.FieldOccasion, Value: canonicalOccasion(arg)}
	case "submit":
		return r.submit(ctx)
	default:
		fmt.Fprintf(r.out, "unknown command %q, type 'help'\n", verb)
		return false, nil
	}

	if err := r.s.Dispatch(ev); err != nil {
		fmt.Fprintln(r.out, err)
		return false, nil
	}
	r.show()
	return false, nil
}

func (r *repl) submit(ctx context.Context) (bool, error) {
	err := r.s.Dispatch(booking.SubmitRequested{})
	switch {
	case errors.Is(err, booking.ErrInvalidDraft):
		r.show()
		return false, nil
	case err != nil:
		fmt.Fprintln(r.out, err)
		return false, nil
	}
	fmt.Fprintln(r.out, "Reserving your table...")
	if err := r.await(ctx); err != nil {
		return false, err
	}
	return r.s.Snapshot().Phase == booking.PhaseConfirmed, nil
}

func (r *repl) await(ctx context.Context) error {
	st, err := r.s.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for booking: %w", err)
	}
	if st.Confirmation == nil {
		// the notice handler has already printed the failure
		return nil
	}
	fmt.Fprintln(r.out)
	printConfirmation(r.out, *st.Confirmation)
	return printReceipt(r.cmd, r.cfg, r.log, *st.Confirmation)
}

func (r *repl) show() {
	printState(r.out, r.s.Snapshot())
}

// canonicalOccasion maps case-insensitive input onto a known occasion; unknown text is passed
// through so validation can report it.
func canonicalOccasion(v string) string {
	for _, o := range reservation.Occasions {
		if strings.EqualFold(v, string(o)) || strings.EqualFold(v, o.Label()) {
			return string(o)
		}
	}
	return v
}
