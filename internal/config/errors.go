package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for config operations
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrUnsupportedShell = errors.New("unsupported shell")
	ErrOutOfRange       = errors.New("value out of range")
	ErrRequired         = errors.New("value required")
)

// ValidationErrors holds multiple validation errors
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

func (e *ValidationErrors) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Section string // Config section, e.g. "explorer" or "lazy[0]"
	Field   string // Field name
	Value   string // Invalid value
	Err     error  // Underlying error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %s (%s): %v", e.Section, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a new FieldError
func NewFieldError(section, field, value string, err error) *FieldError {
	return &FieldError{
		Section: section,
		Field:   field,
		Value:   value,
		Err:     err,
	}
}
