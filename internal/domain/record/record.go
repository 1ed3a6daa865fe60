// Package record holds the lookup table entries and the immutable table that serves them.
package record

import (
	"iter"
	"slices"
)

// Record is a single email/number pair. Emails are not unique.
type Record struct {
	email  string
	number string
}

// New creates a record.
func New(email, number string) Record {
	return Record{email: email, number: number}
}

// Email returns the record email, compared verbatim by searches.
func (r *Record) Email() string { return r.email }

// Number returns the digits-only number stored with the record.
func (r *Record) Number() string { return r.number }

// Table is a read-only, ordered set of records. It is built once and never mutated,
// so concurrent readers need no locking.
type Table struct {
	records []Record
}

// NewTable copies records into a new table, preserving order.
func NewTable(records []Record) *Table {
	return &Table{records: slices.Clone(records)}
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// All yields records in table order.
func (t *Table) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range t.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Records returns a copy of the table contents.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}
