package mockapi

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/table-reservations/internal/booking"
	"github.com/example/table-reservations/internal/config"
	"github.com/example/table-reservations/internal/domain/reservation"
)

var (
	_ reservation.BookingProvider = (*Provider)(nil)
	_ booking.Submitter           = (*Provider)(nil)
)

func draft() reservation.Draft {
	return reservation.Draft{
		Date:     reservation.Date{Year: 2024, Month: time.December, Day: 25},
		Time:     "18:00",
		Guests:   4,
		Occasion: reservation.OccasionBirthday,
	}
}

func TestSubmitRates(t *testing.T) {
	always := New(config.Config{SubmitSuccessRate: 1}, nil)
	never := New(config.Config{SubmitSuccessRate: 0}, nil)
	for i := 0; i < 50; i++ {
		ok, err := always.Submit(context.Background(), draft())
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = never.Submit(context.Background(), draft())
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestSubmitSeeded(t *testing.T) {
	run := func() []bool {
		p := New(config.Config{SubmitSuccessRate: 0.5}, nil).WithSource(rand.NewPCG(1, 2))
		var out []bool
		for i := 0; i < 20; i++ {
			ok, err := p.Submit(context.Background(), draft())
			require.NoError(t, err)
			out = append(out, ok)
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestSubmitDefaultRateIsMostlyAccepted(t *testing.T) {
	p := New(config.Config{SubmitSuccessRate: defaultSuccessRate}, nil).WithSource(rand.NewPCG(42, 7))
	accepted := 0
	for i := 0; i < 1000; i++ {
		ok, _ := p.Submit(context.Background(), draft())
		if ok {
			accepted++
		}
	}
	assert.InDelta(t, 900, accepted, 60)
}

func TestSubmitHonoursContext(t *testing.T) {
	p := New(config.Config{SubmitDelay: time.Hour, SubmitSuccessRate: 1}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	ok, err := p.Submit(ctx, draft())
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFindSlots(t *testing.T) {
	p := NewDefault()
	assert.Equal(t, "mock", p.Name())

	d := reservation.Date{Year: 2024, Month: time.March, Day: 15}
	got, err := p.FindSlots(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, reservation.GenerateSlots(d), got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.FindSlots(ctx, d)
	assert.ErrorIs(t, err, context.Canceled)
}
