package http

import (
	"regexp"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/netpc/contacts-api/internal/contacts/domain"
)

// Allowed characters for phone numbers: digits, spaces, hyphens, plus and
// parentheses.
var phoneCharsPattern = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)

// NewValidator builds the validator with the custom rules the contact DTOs
// rely on.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Registration errors only occur for empty tags or nil funcs.
	_ = v.RegisterValidation("password_complexity", validatePasswordComplexity)
	_ = v.RegisterValidation("phone_chars", validatePhoneChars)
	_ = v.RegisterValidation("birth_date", validateBirthDate)
	return v
}

// validatePasswordComplexity requires at least one uppercase letter, one
// lowercase letter, one digit and one special character.
func validatePasswordComplexity(fl validator.FieldLevel) bool {
	var upper, lower, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

func validatePhoneChars(fl validator.FieldLevel) bool {
	return phoneCharsPattern.MatchString(fl.Field().String())
}

// validateBirthDate requires a date strictly in the past and no more than
// 150 years ago. Today and the exact 150-year boundary are both rejected.
func validateBirthDate(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(domain.Date)
	if !ok || d.IsZero() {
		return false
	}
	today := domain.DateOf(time.Now())
	oldest := domain.DateOf(time.Now().AddDate(-150, 0, 0))
	return d.Before(today) && oldest.Before(d)
}
