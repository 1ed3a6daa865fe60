package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidation signals a query that failed shape or format checks.
	ErrValidation = errors.New("validation failed")
	// ErrRecordSource signals that the record table could not be loaded.
	ErrRecordSource = errors.New("record source unavailable")
)

// FieldError is a single violated rule on a named input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError wraps ErrValidation with every violated field, in field order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Field returns the message recorded for name, if any.
func (e *ValidationError) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message, true
		}
	}
	return "", false
}

// NewValidationError creates a validation error for the given fields.
func NewValidationError(fields ...FieldError) error {
	return &ValidationError{Fields: fields}
}
