package record

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/lookup/internal/domain"
	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
)

// LoadFile reads a YAML list of {email, number} entries.
func LoadFile(path string) (*domrec.Table, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrRecordSource, path, err)
	}

	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrRecordSource, path, err)
	}

	tbl, err := toTable(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrRecordSource, path, err)
	}
	return tbl, nil
}
