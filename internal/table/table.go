package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateColumn reports a header that names the same column twice.
var ErrDuplicateColumn = errors.New("duplicate column")

// Table is a rectangular set of string cells with named columns.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// New returns an empty table with the given header.
func New(columns ...string) (*Table, error) {
	t := &Table{Columns: append([]string(nil), columns...)}
	if err := t.reindex(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) reindex() error {
	t.index = make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("column %d has an empty name", i+1)
		}
		if _, dup := t.index[name]; dup {
			return fmt.Errorf("%w %q", ErrDuplicateColumn, name)
		}
		t.index[name] = i
	}
	return nil
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	if t.index == nil {
		_ = t.reindex()
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Missing returns the names from want that the table lacks, in want order.
func (t *Table) Missing(want []string) []string {
	var missing []string
	for _, name := range want {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// AddRow appends a row; its width must match the header.
func (t *Table) AddRow(cells ...string) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}
	t.Rows = append(t.Rows, append([]string(nil), cells...))
	return nil
}

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) ([]string, bool) {
	i := t.Index(name)
	if i < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, true
}

// Value returns the cell at row r for the named column.
func (t *Table) Value(r int, name string) string {
	i := t.Index(name)
	if i < 0 || r < 0 || r >= len(t.Rows) {
		return ""
	}
	return t.Rows[r][i]
}

// Shape returns the row and column counts.
func (t *Table) Shape() (rows, cols int) {
	return len(t.Rows), len(t.Columns)
}

// ShapeString formats Shape as "(rows, cols)".
func (t *Table) ShapeString() string {
	rows, cols := t.Shape()
	return fmt.Sprintf("(%d, %d)", rows, cols)
}

// Select returns a new table holding only the named columns, in the given
// order. Unknown names are reported together.
func (t *Table) Select(names ...string) (*Table, error) {
	if missing := t.Missing(names); len(missing) > 0 {
		return nil, fmt.Errorf("unknown columns: %s", strings.Join(missing, ", "))
	}
	out, err := New(names...)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = t.Index(name)
	}
	out.Rows = make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells := make([]string, len(idx))
		for i, j := range idx {
			cells[i] = row[j]
		}
		out.Rows[r] = cells
	}
	return out, nil
}
