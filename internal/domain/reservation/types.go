package reservation

import "fmt"

const (
	MinGuests     = 1
	MaxGuests     = 10
	DefaultGuests = MinGuests
)

// Field names one input of the booking form.
type Field string

const (
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldGuests   Field = "guests"
	FieldOccasion Field = "occasion"
)

// Fields lists the form fields in the order they appear on the form.
var Fields = []Field{FieldDate, FieldTime, FieldGuests, FieldOccasion}

func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

type Occasion string

const (
	OccasionBirthday    Occasion = "Birthday"
	OccasionAnniversary Occasion = "Anniversary"
	OccasionDate        Occasion = "Date"
	OccasionBusiness    Occasion = "Business"
	OccasionCelebration Occasion = "Celebration"
	OccasionOther       Occasion = "Other"
)

var Occasions = []Occasion{
	OccasionBirthday,
	OccasionAnniversary,
	OccasionDate,
	OccasionBusiness,
	OccasionCelebration,
	OccasionOther,
}

func (o Occasion) Valid() bool {
	for _, known := range Occasions {
		if o == known {
			return true
		}
	}
	return false
}

// Label is the human-facing name shown in the occasion picker.
func (o Occasion) Label() string {
	switch o {
	case OccasionDate:
		return "Date Night"
	case OccasionBusiness:
		return "Business Dinner"
	default:
		return string(o)
	}
}

// Draft is the in-progress booking form. Time is a slot label ("19:30")
// or empty.
type Draft struct {
	Date     Date     `json:"date"`
	Time     string   `json:"time"`
	Guests   int      `json:"guests"`
	Occasion Occasion `json:"occasion"`
}

func NewDraft() Draft {
	return Draft{Guests: DefaultGuests}
}

// GuestsLabel renders "1 guest" / "4 guests".
func (d Draft) GuestsLabel() string {
	if d.Guests == 1 {
		return "1 guest"
	}
	return fmt.Sprintf("%d guests", d.Guests)
}
