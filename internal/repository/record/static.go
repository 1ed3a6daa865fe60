// Package record loads the lookup table from its configured source.
// Every loader runs once at startup and returns an immutable table.
package record

import domrec "github.com/kailas-cloud/lookup/internal/domain/record"

// Sample returns the built-in sample table.
func Sample() *domrec.Table {
	return domrec.NewTable([]domrec.Record{
		domrec.New("jim@gmail.com", "221122"),
		domrec.New("jam@gmail.com", "830347"),
		domrec.New("john@gmail.com", "221122"),
		domrec.New("jams@gmail.com", "349425"),
		domrec.New("jams@gmail.com", "141424"),
		domrec.New("jill@gmail.com", "822287"),
		domrec.New("jill@gmail.com", "822286"),
	})
}
