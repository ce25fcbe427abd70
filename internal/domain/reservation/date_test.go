package reservation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-12-25")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.December, Day: 25}, d)
	assert.Equal(t, "2024-12-25", d.String())
	assert.Equal(t, "Wednesday, December 25, 2024", d.Long())

	for _, bad := range []string{"", "tomorrow", "2024-13-01", "2024-02-30", "25/12/2024"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	instant := time.Date(2024, time.December, 25, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, 25, DateOf(instant).Day)
	assert.Equal(t, 24, DateOf(instant.In(loc)).Day)
}

func TestDateAddDays(t *testing.T) {
	d := Date{Year: 2024, Month: time.December, Day: 31}
	assert.Equal(t, Date{Year: 2025, Month: time.January, Day: 1}, d.AddDays(1))
}

func TestDateText(t *testing.T) {
	b, err := json.Marshal(Draft{Date: Date{Year: 2024, Month: time.December, Day: 25}, Guests: 2})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"date":"2024-12-25"`)

	var back Draft
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, 25, back.Date.Day)

	var empty Date
	require.NoError(t, empty.UnmarshalText(nil))
	assert.True(t, empty.IsZero())
	assert.Equal(t, "", empty.String())
}
