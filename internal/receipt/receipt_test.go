package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/table-reservations/internal/booking"
	"github.com/example/table-reservations/internal/domain/reservation"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func confirmation() booking.Confirmation {
	return booking.Confirmation{
		SessionID: "6f1c2a8e-1111-4c3b-9d2e-5a7b8c9d0e1f",
		Booking: reservation.Draft{
			Date:     reservation.Date{Year: 2024, Month: time.December, Day: 25},
			Time:     "18:00",
			Guests:   4,
			Occasion: reservation.OccasionBirthday,
		},
		ConfirmedAt: time.Date(2024, time.December, 16, 12, 0, 0, 0, time.UTC),
	}
}

func TestIssueAndOpen(t *testing.T) {
	iss, err := New(secret, 24*time.Hour)
	require.NoError(t, err)

	token, err := iss.Issue(confirmation())
	require.NoError(t, err)
	assert.NotContains(t, token, "Birthday", "receipt payload must be encrypted")

	got, err := iss.Open(token)
	require.NoError(t, err)
	want := confirmation()
	assert.Equal(t, want.SessionID, got.SessionID)
	assert.Equal(t, want.Booking, got.Booking)
	assert.True(t, want.ConfirmedAt.Equal(got.ConfirmedAt))
}

func TestOpenRejectsTampering(t *testing.T) {
	iss, err := New(secret, 24*time.Hour)
	require.NoError(t, err)
	token, err := iss.Issue(confirmation())
	require.NoError(t, err)

	b := []byte(token)
	if b[10] == 'A' {
		b[10] = 'B'
	} else {
		b[10] = 'A'
	}
	_, err = iss.Open(string(b))
	assert.ErrorIs(t, err, ErrInvalidReceipt)

	_, err = iss.Open("")
	assert.ErrorIs(t, err, ErrInvalidReceipt)
}

func TestOpenRejectsOtherSecret(t *testing.T) {
	a, err := New(secret, time.Hour)
	require.NoError(t, err)
	b, err := New([]byte("fedcba9876543210fedcba9876543210"), time.Hour)
	require.NoError(t, err)

	token, err := a.Issue(confirmation())
	require.NoError(t, err)
	_, err = b.Open(token)
	assert.ErrorIs(t, err, ErrInvalidReceipt)
}

func TestDeriveKeys(t *testing.T) {
	h1, b1, err := DeriveKeys(secret)
	require.NoError(t, err)
	h2, b2, err := DeriveKeys(secret)
	require.NoError(t, err)

	assert.Len(t, h1, 32)
	assert.Len(t, b1, 32)
	assert.Equal(t, h1, h2)
	assert.Equal(t, b1, b2)
	assert.NotEqual(t, h1, b1)

	_, _, err = DeriveKeys(nil)
	assert.Error(t, err)
}
