// Package validate checks user input before it is dispatched to the store.
// The predicates mirror the rules the backend enforces so that a form can
// reject bad input without a round trip.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/pkg/validator"
)

const maxNameLength = 100

// Email reports whether s is a syntactically valid email address.
func Email(s string) bool {
	return validator.Var(strings.TrimSpace(s), "required,email") == nil
}

// Password reports whether s has at least eight characters mixing upper
// case, lower case, digits and symbols.
func Password(s string) bool {
	return validator.IsStrongPassword(s)
}

// Phone reports whether s is a Vietnamese mobile number.
func Phone(s string) bool {
	return validator.Var(s, "required,phone") == nil
}

// Name reports whether s is a non-blank display name of reasonable length.
func Name(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && utf8.RuneCountInString(s) <= maxNameLength
}

// Address checks every field of a new address.
func Address(a domain.Address) error {
	return validator.Validate(a)
}

// AddressPatch checks the fields set in a partial address update.
func AddressPatch(p domain.AddressPatch) error {
	return validator.Validate(p)
}

// Profile checks the fields set in a partial profile update.
func Profile(p domain.ProfilePatch) error {
	return validator.Validate(p)
}

func Registration(r domain.Registration) error {
	return validator.Validate(r)
}

func Credentials(c domain.Credentials) error {
	return validator.Validate(c)
}

// PasswordChange also rejects reusing the current password.
func PasswordChange(c domain.PasswordChange) error {
	return validator.Validate(c)
}

func CartItem(in domain.CartItemInput) error {
	return validator.Validate(in)
}

// Rating checks a new rating: one to five stars and an optional comment.
func Rating(in domain.RatingInput) error {
	return validator.Validate(in)
}

// FieldErrors returns per-field messages for a validation error, keyed by
// JSON field name, or nil when err is not one.
func FieldErrors(err error) map[string]string {
	if ve, ok := err.(*validator.ValidationError); ok {
		return ve.Fields()
	}
	return nil
}
