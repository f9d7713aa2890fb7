package authpages

import (
	"errors"
	"regexp"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MinPasswordLength is the shortest password accepted on signup.
const MinPasswordLength = 8

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	lowercasePattern = regexp.MustCompile(`[a-z]`)
	digitPattern     = regexp.MustCompile(`\d`)
)

// EmailRule accepts "local@domain.tld" shaped addresses with no whitespace.
var EmailRule = validation.Match(emailPattern).Error("must be a valid email address")

// PasswordRule enforces PasswordRequirements.
var PasswordRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !CheckPassword(s).Met() {
		return errors.New("must have 8 characters, an uppercase letter, a lowercase letter and a number")
	}
	return nil
})

// IsValidEmail reports whether email looks like an address.
func IsValidEmail(email string) bool {
	return validation.Validate(email, validation.Required, EmailRule) == nil
}

// IsValidPassword reports whether password meets every requirement.
func IsValidPassword(password string) bool {
	return validation.Validate(password, validation.Required, PasswordRule) == nil
}

// PasswordRequirements reports each password rule on its own so the signup
// page can light them up while the viewer types.
type PasswordRequirements struct {
	Length    bool
	Uppercase bool
	Lowercase bool
	Number    bool
}

// Met reports whether all requirements hold.
func (r PasswordRequirements) Met() bool {
	return r.Length && r.Uppercase && r.Lowercase && r.Number
}

// CheckPassword evaluates every password requirement.
func CheckPassword(password string) PasswordRequirements {
	return PasswordRequirements{
		Length:    utf8.RuneCountInString(password) >= MinPasswordLength,
		Uppercase: uppercasePattern.MatchString(password),
		Lowercase: lowercasePattern.MatchString(password),
		Number:    digitPattern.MatchString(password),
	}
}
