package reservation

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	t.Run("Known Days", func(t *testing.T) {
		cases := map[int][]string{
			1:  {"17:00", "17:30", "18:00", "20:00", "21:00", "23:30"},
			15: {"17:00", "17:30", "20:30", "22:30"},
			16: {"17:00", "17:30", "18:00", "18:30", "22:00", "22:30", "23:30"},
			25: {"17:00", "17:30", "18:30", "19:00", "20:00", "22:00", "22:30"},
			31: {"17:00", "17:30", "18:00", "18:30", "21:00", "21:30", "22:00", "23:00"},
		}
		for day, want := range cases {
			got := GenerateSlots(Date{Year: 2024, Month: time.December, Day: day})
			assert.Equal(t, want, got, "day %d", day)
		}
	})

	t.Run("Same Day Twice", func(t *testing.T) {
		d := Date{Year: 2024, Month: time.March, Day: 15}
		assert.Equal(t, GenerateSlots(d), GenerateSlots(d))
	})

	t.Run("Only Day Of Month Matters", func(t *testing.T) {
		for day := 1; day <= 28; day++ {
			a := GenerateSlots(Date{Year: 2023, Month: time.February, Day: day})
			b := GenerateSlots(Date{Year: 2031, Month: time.October, Day: day})
			assert.Equal(t, a, b, "day %d", day)
		}
	})

	t.Run("Different Days Differ", func(t *testing.T) {
		assert.NotEqual(t,
			GenerateSlots(Date{Year: 2024, Month: time.December, Day: 15}),
			GenerateSlots(Date{Year: 2024, Month: time.December, Day: 16}))
	})

	t.Run("Bounded And Ordered", func(t *testing.T) {
		label := regexp.MustCompile(`^(1[7-9]|2[0-3]):(00|30)$`)
		for day := 1; day <= 31; day++ {
			got := GenerateSlots(Date{Year: 2025, Month: time.January, Day: day})
			require.LessOrEqual(t, len(got), MaxSlotsPerDay)

			seen := map[string]bool{}
			prev := -1
			for _, s := range got {
				require.Regexp(t, label, s)
				require.False(t, seen[s], "duplicate %s on day %d", s, day)
				seen[s] = true

				tod, err := time.Parse("15:04", s)
				require.NoError(t, err)
				minutes := tod.Hour()*60 + tod.Minute()
				require.Greater(t, minutes, prev, "not ascending on day %d", day)
				prev = minutes
			}
		}
	})

	t.Run("Malformed Date Yields No Slots", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(Date{}))
		assert.Empty(t, GenerateSlots(Date{Year: 2024, Month: time.May, Day: 0}))
		assert.Empty(t, GenerateSlots(Date{Year: 2024, Month: time.May, Day: 32}))
		assert.NotNil(t, GenerateSlots(Date{}))
	})
}

func TestRandom(t *testing.T) {
	r := NewRandom(15)
	first := r.Next()
	assert.InDelta(t, float64(15*lcgMultiplier)/lcgModulus, first, 1e-12)

	for i := 0; i < 1000; i++ {
		v := r.Next()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}

	a, b := NewRandom(7), NewRandom(7)
	for i := 0; i < 14; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}
