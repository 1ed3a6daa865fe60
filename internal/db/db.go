package db

import (
	"context"
	"time"
)

// Store is the database facade used by the record loader and health checks.
type Store interface {
	Pinger
	ListReader
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ListReader reads ranges of list values.
type ListReader interface {
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}
