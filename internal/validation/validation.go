// Package validation holds the form validation rules for registration and
// login submissions. Checks run in a fixed order and the first failure wins,
// each mapping to a distinct user-facing message.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmailMismatch    = errors.New("emails do not match")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrWeakPassword     = errors.New("password does not meet policy")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrTermsNotAccepted = errors.New("must accept terms")
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// PasswordPolicy selects which password rule applies.
type PasswordPolicy string

const (
	// PolicyStrict requires at least 8 characters with at least one letter,
	// one digit and one ASCII symbol, drawn only from those classes.
	PolicyStrict PasswordPolicy = "strict"
	// PolicyLegacy is the looser historical rule: 8-16 alphanumeric
	// characters, no symbol requirement.
	PolicyLegacy PasswordPolicy = "legacy"
)

// ParsePolicy maps a config string to a policy, defaulting to strict.
func ParsePolicy(s string) PasswordPolicy {
	if strings.EqualFold(strings.TrimSpace(s), string(PolicyLegacy)) {
		return PolicyLegacy
	}
	return PolicyStrict
}

// RegistrationForm is a raw registration submission.
type RegistrationForm struct {
	Name            string
	Email           string
	ConfirmEmail    string
	Password        string
	ConfirmPassword string
	Terms           bool
}

// LoginForm is a raw login submission.
type LoginForm struct {
	Email    string
	Password string
}

// Validate applies the registration rules in order and returns the first
// failure. The duplicate-email check belongs to the identity store, not here.
func (f *RegistrationForm) Validate(policy PasswordPolicy) error {
	if f.Email != f.ConfirmEmail {
		return ErrEmailMismatch
	}
	if !emailRegex.MatchString(f.Email) {
		return ErrInvalidEmail
	}
	if !policy.Check(f.Password) {
		return ErrWeakPassword
	}
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if !f.Terms {
		return ErrTermsNotAccepted
	}
	return nil
}

// Check reports whether the password satisfies the policy.
func (p PasswordPolicy) Check(password string) bool {
	if p == PolicyLegacy {
		return checkLegacy(password)
	}
	return checkStrict(password)
}

func checkLegacy(password string) bool {
	if len(password) < 8 || len(password) > 16 {
		return false
	}
	for _, r := range password {
		if !isLetter(r) && !isDigit(r) {
			return false
		}
	}
	return true
}

func checkStrict(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case isLetter(r):
			hasLetter = true
		case isDigit(r):
			hasDigit = true
		case isSymbol(r):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit && hasSymbol
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isSymbol matches printable ASCII punctuation: !-/ :-@ [-` {-~
func isSymbol(r rune) bool {
	return (r >= '!' && r <= '/') || (r >= ':' && r <= '@') ||
		(r >= '[' && r <= '`') || (r >= '{' && r <= '~')
}
