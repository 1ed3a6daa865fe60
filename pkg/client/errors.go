package client

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/lookup/internal/domain"
)

// ErrValidation is re-exported from the domain layer. Use errors.Is() to check.
var ErrValidation = domain.ErrValidation

// ErrTransport signals that the service could not be reached or its reply could not be read.
var ErrTransport = errors.New("lookup transport failed")

// ValidationError carries the per-field messages of a 400 response.
type ValidationError = domain.ValidationError

// FieldError is one violated rule on a query field.
type FieldError = domain.FieldError

// StatusError is a non-2xx response other than 400.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("lookup: status %d", e.StatusCode)
	}
	return fmt.Sprintf("lookup: status %d: %s", e.StatusCode, e.Message)
}
