package merge

import (
	"context"
	"fmt"

	"corpusmeta/internal/table"
)

// Source yields a per-segment table with the key columns populated.
type Source interface {
	Name() string
	Load(ctx context.Context) (*table.Table, error)
}

// FileSource reads a CSV or .xlsx file.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s FileSource) Name() string {
	return s.Path
}

// Load reads the whole file into memory.
func (s FileSource) Load(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := table.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Path, err)
	}
	return t, nil
}

// TableSource serves an in-memory table.
type TableSource struct {
	Label string
	Table *table.Table
}

// Name returns the label.
func (s TableSource) Name() string {
	return s.Label
}

// Load returns the wrapped table.
func (s TableSource) Load(context.Context) (*table.Table, error) {
	return s.Table, nil
}
