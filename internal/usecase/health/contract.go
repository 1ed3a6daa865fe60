package health

import "context"

// TableSizer reports the size of the loaded record table.
type TableSizer interface {
	Len() int
}

// StorePinger checks availability of the store the table was loaded from.
type StorePinger interface {
	Ping(ctx context.Context) error
}
