package search

import (
	"iter"
	"time"

	"github.com/kailas-cloud/lookup/internal/domain/record"
)

// RecordReader iterates the record table in order.
type RecordReader interface {
	All() iter.Seq[record.Record]
}

// Observer receives the outcome of each search call.
type Observer interface {
	ObserveSearch(outcome string, results int, elapsed time.Duration)
}
