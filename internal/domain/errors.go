package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField = errors.New("this field is required")
	ErrWeakPassword = errors.New("password does not meet the policy")
)

// MissingFieldError reports a required input field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, ErrMissingField)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// WeakPasswordError carries every policy rule the candidate password broke.
type WeakPasswordError struct {
	Violations []Violation
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("%s: %v", ErrWeakPassword, e.Violations)
}

func (e *WeakPasswordError) Is(target error) bool {
	return target == ErrWeakPassword
}
