package record

import (
	"fmt"

	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
)

// entry is the stored shape of a record in YAML files and Redis list items.
type entry struct {
	Email  string `yaml:"email" json:"email"`
	Number string `yaml:"number" json:"number"`
}

// toTable converts stored entries to a table, rejecting entries without an email.
func toTable(entries []entry) (*domrec.Table, error) {
	records := make([]domrec.Record, 0, len(entries))
	for i, e := range entries {
		if e.Email == "" {
			return nil, fmt.Errorf("entry %d: email is required", i)
		}
		records = append(records, domrec.New(e.Email, e.Number))
	}
	return domrec.NewTable(records), nil
}
