package record

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/lookup/internal/domain"
	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
)

// DefaultKey is the Redis list read when no key is configured.
const DefaultKey = "lookup:records"

// lister is the consumer interface for list reads (ISP).
type lister interface {
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// LoadStore snapshots the Redis list at key. Each item is a JSON {email, number} object;
// list order becomes table order. A missing key yields an empty table.
func LoadStore(ctx context.Context, store lister, key string) (*domrec.Table, error) {
	if key == "" {
		key = DefaultKey
	}

	items, err := store.LRange(ctx, key, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("%w: read list %s: %w", domain.ErrRecordSource, key, err)
	}

	entries := make([]entry, len(items))
	for i, raw := range items {
		if err := json.Unmarshal([]byte(raw), &entries[i]); err != nil {
			return nil, fmt.Errorf("%w: list %s item %d: %w", domain.ErrRecordSource, key, i, err)
		}
	}

	tbl, err := toTable(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", domain.ErrRecordSource, key, err)
	}
	return tbl, nil
}
