package features

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField indicates a required field is empty or not a number.
	ErrMissingField = errors.New("missing field")

	// ErrUnknownMode indicates the climate mode is neither yearly nor monthly.
	ErrUnknownMode = errors.New("unknown climate mode")
)

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field string // stable key, e.g. "monthly_rainfall[2]"
	Label string // human label, e.g. "Rainfall (March)"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Label)
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingField
}

func missing(field, label string) error {
	return &ValidationError{Field: field, Label: label}
}
