package reservation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

const (
	MsgDateRequired     = "Please select a date"
	MsgTimeRequired     = "Please select a time"
	MsgGuestsOutOfRange = "Number of guests must be between 1 and 10"
	MsgOccasionRequired = "Please select an occasion"
)

// FieldErrors maps a form field to its user-facing message.
type FieldErrors map[Field]string

func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// draftForm is the shape the rules are declared on. Every rule is evaluated
// on every call, so a single pass reports all failing fields.
type draftForm struct {
	Date     string   `validate:"required"`
	Time     string   `validate:"required"`
	Guests   int      `validate:"min=1,max=10"`
	Occasion Occasion `validate:"required,occasion"`
}

var formFields = map[string]struct {
	field Field
	msg   string
}{
	"Date":     {FieldDate, MsgDateRequired},
	"Time":     {FieldTime, MsgTimeRequired},
	"Guests":   {FieldGuests, MsgGuestsOutOfRange},
	"Occasion": {FieldOccasion, MsgOccasionRequired},
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("occasion", validateOccasion)
}

func validateOccasion(fl validator.FieldLevel) bool {
	return Occasion(fl.Field().String()).Valid()
}

func (d Draft) form() draftForm {
	return draftForm{
		Date:     d.Date.String(),
		Time:     d.Time,
		Guests:   d.Guests,
		Occasion: d.Occasion,
	}
}

// Validate checks all four rules and returns a message for every failing field.
// An empty (non-nil) map means the draft can be submitted.
func (d Draft) Validate() FieldErrors {
	out := FieldErrors{}
	err := validate.Struct(d.form())
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// only reachable with an invalid struct type; fail closed on every field
		for _, f := range formFields {
			out[f.field] = f.msg
		}
		return out
	}
	for _, fe := range verrs {
		if f, ok := formFields[fe.StructField()]; ok {
			out[f.field] = f.msg
		}
	}
	return out
}

// Complete reports whether the draft passes every rule. It is the predicate
// behind the submit affordance and agrees with Validate by construction.
func (d Draft) Complete() bool {
	return validate.Struct(d.form()) == nil
}
