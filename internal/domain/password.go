package domain

import (
	"strings"
	"unicode/utf8"
)

type Violation string

const (
	ViolationTooShort       Violation = "too_short"
	ViolationMissingDigit   Violation = "missing_digit"
	ViolationMissingSpecial Violation = "missing_special"
	ViolationTooLong        Violation = "too_long"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes and newer x/crypto rejects it outright.
	MaxPasswordBytes = 72

	PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`
)

// Message is the human readable form returned to API clients.
func (v Violation) Message() string {
	switch v {
	case ViolationTooShort:
		return "Password must be at least 8 characters long."
	case ViolationMissingDigit:
		return "Password must contain at least one number."
	case ViolationMissingSpecial:
		return "Password must contain at least one special character."
	case ViolationTooLong:
		return "Password must be at most 72 bytes long."
	default:
		return string(v)
	}
}

// ValidatePassword checks every rule independently and returns all violations,
// or nil when the candidate is acceptable.
func ValidatePassword(candidate string) []Violation {
	var violations []Violation

	if utf8.RuneCountInString(candidate) < MinPasswordLength {
		violations = append(violations, ViolationTooShort)
	}
	if !strings.ContainsAny(candidate, "0123456789") {
		violations = append(violations, ViolationMissingDigit)
	}
	if !strings.ContainsAny(candidate, PasswordSpecialChars) {
		violations = append(violations, ViolationMissingSpecial)
	}
	if len(candidate) > MaxPasswordBytes {
		violations = append(violations, ViolationTooLong)
	}

	return violations
}
