// Package validation checks user-submitted form fields.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/user-crud/internal/models"
)

// Form field names
const (
	FieldName  = "name"
	FieldEmail = "email"
)

// fieldOrder fixes the order in which messages are reported.
var fieldOrder = []string{FieldName, FieldEmail}

// messages maps struct field and failed rule to the user-facing text.
var messages = map[string]map[string]string{
	"Name": {
		"required": "Name is required",
		"min":      "Name must be 2-100 characters",
		"max":      "Name must be 2-100 characters",
	},
	"Email": {
		"required": "Email is required",
		"email":    "Enter a valid email",
		"max":      "Email must be shorter than 120 characters",
	},
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors holds violation messages keyed by form field.
type FieldErrors map[string][]string

// Has reports whether the field has at least one violation.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// First returns the first message for field or "".
func (fe FieldErrors) First(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Messages returns all messages, name first.
func (fe FieldErrors) Messages() []string {
	var out []string
	for _, f := range fieldOrder {
		out = append(out, fe[f]...)
	}
	return out
}

// ValidateUser trims name and email, lowercases email and checks both
// against the form rules. A nil FieldErrors means the input is valid.
func ValidateUser(name, email string) (models.UserInput, FieldErrors) {
	in := models.UserInput{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
	}

	err := validate.Struct(in)
	if err == nil {
		return in, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError only happens on programmer error.
		panic(err)
	}

	fe := FieldErrors{}
	for _, v := range verrs {
		field := strings.ToLower(v.StructField())
		msg, ok := messages[v.StructField()][v.Tag()]
		if !ok {
			msg = "Invalid " + field
		}
		fe[field] = append(fe[field], msg)
	}
	return in, fe
}
