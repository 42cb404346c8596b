package apperrors

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// FieldErrors maps a request field name to its validation messages.
// Nested fields use dot notation, e.g. "prices.0.currency_id".
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// HasErrors reports whether any field failed.
func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}

// ValidationError carries field-level messages and unwraps to ErrValidation.
type ValidationError struct {
	Fields FieldErrors
}

// NewValidationError wraps the field errors so callers can match ErrValidation with errors.Is.
func NewValidationError(fields FieldErrors) error {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
