package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/table-reservations/internal/booking"
	"github.com/example/table-reservations/internal/domain/reservation"
)

func printDay(w io.Writer, d reservation.Date, slots []string) {
	if len(slots) == 0 {
		fmt.Fprintf(w, "%s (%s): no times available\n", d.Long(), d)
		return
	}
	hint := booking.State{AvailableSlots: slots}.AvailabilityHint()
	fmt.Fprintf(w, "%s (%s): %s\n  %s\n", d.Long(), d, hint, strings.Join(slots, "  "))
}

func printState(w io.Writer, st booking.State) {
	d := st.Draft
	line := func(label, value string, f reservation.Field) {
		if msg, ok := st.Errors[f]; ok {
			value = strings.TrimSpace(value + "  ! " + msg)
		}
		fmt.Fprintf(w, "  %-9s %s\n", label+":", value)
	}

	date := "(not chosen)"
	if !d.Date.IsZero() {
		date = fmt.Sprintf("%s (%s)", d.Date, d.Date.Long())
	}
	line("Date", date, reservation.FieldDate)

	tm := d.Time
	switch {
	case d.Date.IsZero() && tm == "":
		tm = "(select a date first)"
	case tm == "":
		tm = "(not chosen)"
	}
	if hint := st.AvailabilityHint(); hint != "" {
		tm = fmt.Sprintf("%s  [%s: %s]", tm, hint, strings.Join(st.AvailableSlots, " "))
	} else if !d.Date.IsZero() {
		tm += "  [no times available]"
	}
	line("Time", tm, reservation.FieldTime)

	line("Guests", d.GuestsLabel(), reservation.FieldGuests)

	occasion := "(not chosen)"
	if d.Occasion != "" {
		occasion = d.Occasion.Label()
	}
	line("Occasion", occasion, reservation.FieldOccasion)

	status := "disabled"
	switch {
	case st.Submitting:
		status = "Reserving your table..."
	case st.CanSubmit:
		status = "ready"
	}
	fmt.Fprintf(w, "  %-9s %s\n", "Submit:", status)
}

func printConfirmation(w io.Writer, c booking.Confirmation) {
	b := c.Booking
	fmt.Fprintln(w, "Booking Confirmed!")
	fmt.Fprintln(w, "Thank you! Your table reservation has been successfully confirmed.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Date:     %s\n", b.Date.Long())
	fmt.Fprintf(w, "  Time:     %s\n", b.Time)
	fmt.Fprintf(w, "  Guests:   %s\n", b.GuestsLabel())
	fmt.Fprintf(w, "  Occasion: %s\n", b.Occasion.Label())
	fmt.Fprintf(w, "  Booking:  %s\n", c.SessionID)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "What's next?")
	fmt.Fprintln(w, "  - You'll receive a confirmation email shortly")
	fmt.Fprintln(w, "  - We'll send a reminder 24 hours before your visit")
	fmt.Fprintln(w, "  - Arrive 10 minutes early for the best experience")
}

func printOccasions(w io.Writer) {
	var names []string
	for _, o := range reservation.Occasions {
		names = append(names, string(o))
	}
	fmt.Fprintf(w, "occasions: %s\n", strings.Join(names, ", "))
}
