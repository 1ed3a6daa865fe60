package redis

import (
	"context"

	"github.com/kailas-cloud/lookup/internal/db"
)

// LRange returns list elements between start and stop, inclusive. Negative indexes
// count from the tail, so (0, -1) reads the whole list. A missing key reads as empty.
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cmd := s.b().Lrange().Key(key).Start(start).Stop(stop).Build()
	vals, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	return vals, nil
}
