package reservation

import "fmt"

const (
	lcgModulus    = 1<<35 - 31
	lcgMultiplier = 185852

	firstSeating = 17
	lastSeating  = 23

	// MaxSlotsPerDay is two half-hour seatings for every hour served.
	MaxSlotsPerDay = 2 * (lastSeating - firstSeating + 1)
)

// SlotSource produces the bookable slot labels for a date.
type SlotSource func(Date) []string

// Random is the Lehmer-style generator behind the availability mock.
// It holds its own state; there is no package-level source.
type Random struct {
	state int64
}

func NewRandom(seed int64) *Random {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return &Random{state: s}
}

// Next advances the generator and returns a fraction in [0, 1).
func (r *Random) Next() float64 {
	// state < 2^35 and the multiplier < 2^18, so the product fits in int64.
	r.state = r.state * lcgMultiplier % lcgModulus
	return float64(r.state) / lcgModulus
}

// GenerateSlots returns the available seatings for d in ascending order.
// Only the day of month seeds the generator, so the same day in any month
// or year yields the same list. Dates with a day outside 1..31 yield no slots.
func GenerateSlots(d Date) []string {
	out := make([]string, 0, MaxSlotsPerDay)
	if d.Day < 1 || d.Day > 31 {
		return out
	}
	rnd := NewRandom(int64(d.Day))
	for h := firstSeating; h <= lastSeating; h++ {
		if rnd.Next() < 0.5 {
			out = append(out, fmt.Sprintf("%d:00", h))
		}
		if rnd.Next() < 0.5 {
			out = append(out, fmt.Sprintf("%d:30", h))
		}
	}
	return out
}
