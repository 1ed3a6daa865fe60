// Package query defines the validated search query and its match rule.
package query

import (
	"strings"

	"github.com/kailas-cloud/lookup/internal/domain/record"
	"github.com/kailas-cloud/lookup/internal/validation"
)

// input carries the raw fields through the validator; tags name fields as on the wire.
type input struct {
	Email  string `json:"email" validate:"required,email"`
	Number string `json:"number" validate:"omitempty,dashed_number"`
}

// Query is a validated search query. An empty number means "match on email only".
type Query struct {
	email  string
	number string
}

// New validates email and number and builds a Query.
// Violations are returned as *domain.ValidationError listing every bad field.
func New(email, number string) (Query, error) {
	if err := validation.Default().Struct(input{Email: email, Number: number}); err != nil {
		return Query{}, err //nolint:wrapcheck // callers inspect *domain.ValidationError directly
	}
	return Query{email: email, number: number}, nil
}

// Email returns the exact email to match.
func (q *Query) Email() string { return q.email }

// Number returns the number as submitted, including dashes.
func (q *Query) Number() string { return q.number }

// HasNumber reports whether the query narrows by number.
func (q *Query) HasNumber() bool { return q.number != "" }

// Digits returns the number with dashes stripped.
func (q *Query) Digits() string { return strings.ReplaceAll(q.number, "-", "") }

// Matches reports whether r satisfies the query: exact, case-sensitive email equality and,
// when a number is given, its digits appearing anywhere in r's number.
func (q *Query) Matches(r *record.Record) bool {
	if r.Email() != q.email {
		return false
	}
	if !q.HasNumber() {
		return true
	}
	return strings.Contains(r.Number(), q.Digits())
}
