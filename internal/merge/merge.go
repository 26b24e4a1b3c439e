package merge

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"corpusmeta/internal/config"
	"corpusmeta/internal/table"
)

// DefaultSuffixes disambiguate non-key columns present in both inputs.
var DefaultSuffixes = [2]string{"_x", "_y"}

// Options controls the join.
type Options struct {
	// Keys are the join columns. Empty means config.DefaultMergeKeys unless InferKeys is set.
	Keys []string
	// InferKeys joins on every column both headers share, in left order.
	InferKeys bool
	// Suffixes are appended to left and right copies of a shared unique column.
	Suffixes [2]string
}

// Shape is a table's dimensions.
type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}

func shapeOf(t *table.Table) Shape {
	rows, cols := t.Shape()
	return Shape{Rows: rows, Cols: cols}
}

// Result is the joined table plus the column partition that produced it.
type Result struct {
	Table       *table.Table
	Keys        []string
	LeftUnique  []string
	RightUnique []string
	LeftShape   Shape
	RightShape  Shape
}

// Shape returns the dimensions of the joined table.
func (r *Result) Shape() Shape {
	return shapeOf(r.Table)
}

// Join performs an inner join of left and right on the key columns.
//
// A key column compares numerically when every non-empty value in both tables
// parses as a number, so "1.0" matches "1"; otherwise values compare as exact
// strings. Empty cells match empty cells. Output rows follow left order, each
// followed by its right matches in right order.
func Join(left, right *table.Table, opts Options) (*Result, error) {
	keys, err := resolveKeys(left, right, opts)
	if err != nil {
		return nil, err
	}
	suffixes := opts.Suffixes
	if suffixes == ([2]string{}) {
		suffixes = DefaultSuffixes
	}

	leftUnique := uniqueColumns(left, keys)
	rightUnique := uniqueColumns(right, keys)

	columns := slices.Clone(keys)
	for _, name := range leftUnique {
		if slices.Contains(rightUnique, name) {
			name += suffixes[0]
		}
		columns = append(columns, name)
	}
	for _, name := range rightUnique {
		if slices.Contains(leftUnique, name) {
			name += suffixes[1]
		}
		columns = append(columns, name)
	}
	out, err := table.New(columns...)
	if err != nil {
		return nil, fmt.Errorf("build merged header: %w", err)
	}

	numeric := make([]bool, len(keys))
	for i, key := range keys {
		numeric[i] = isNumericColumn(left, key) && isNumericColumn(right, key)
	}

	leftKeyIdx := indexes(left, keys)
	rightKeyIdx := indexes(right, keys)
	leftUniqueIdx := indexes(left, leftUnique)
	rightUniqueIdx := indexes(right, rightUnique)

	matches := make(map[string][]int, len(right.Rows))
	for r, row := range right.Rows {
		k := canonicalKey(row, rightKeyIdx, numeric)
		matches[k] = append(matches[k], r)
	}

	for _, lrow := range left.Rows {
		for _, r := range matches[canonicalKey(lrow, leftKeyIdx, numeric)] {
			rrow := right.Rows[r]
			cells := make([]string, 0, len(columns))
			for _, i := range leftKeyIdx {
				cells = append(cells, lrow[i])
			}
			for _, i := range leftUniqueIdx {
				cells = append(cells, lrow[i])
			}
			for _, i := range rightUniqueIdx {
				cells = append(cells, rrow[i])
			}
			out.Rows = append(out.Rows, cells)
		}
	}

	return &Result{
		Table:       out,
		Keys:        keys,
		LeftUnique:  leftUnique,
		RightUnique: rightUnique,
		LeftShape:   shapeOf(left),
		RightShape:  shapeOf(right),
	}, nil
}

// requestedKeys returns the key list opts asks for without checking that
// either table carries it.
func requestedKeys(left, right *table.Table, opts Options) []string {
	if opts.InferKeys {
		var shared []string
		for _, name := range left.Columns {
			if right.Has(name) {
				shared = append(shared, name)
			}
		}
		return shared
	}
	if len(opts.Keys) == 0 {
		return slices.Clone(config.DefaultMergeKeys)
	}
	return slices.Clone(opts.Keys)
}

func resolveKeys(left, right *table.Table, opts Options) ([]string, error) {
	keys := requestedKeys(left, right, opts)
	if opts.InferKeys && len(keys) == 0 {
		return nil, fmt.Errorf("%w: the tables share no columns", ErrSchemaMismatch)
	}
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate key column %q", key)
		}
		seen[key] = struct{}{}
	}
	if missing := left.Missing(keys); len(missing) > 0 {
		return nil, &SchemaMismatchError{Side: "left", Missing: missing}
	}
	if missing := right.Missing(keys); len(missing) > 0 {
		return nil, &SchemaMismatchError{Side: "right", Missing: missing}
	}
	return keys, nil
}

func uniqueColumns(t *table.Table, keys []string) []string {
	var out []string
	for _, name := range t.Columns {
		if !slices.Contains(keys, name) {
			out = append(out, name)
		}
	}
	return out
}

func indexes(t *table.Table, names []string) []int {
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = t.Index(name)
	}
	return idx
}

func isNumericColumn(t *table.Table, name string) bool {
	i := t.Index(name)
	for _, row := range t.Rows {
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return true
}

// canonicalKey renders the key tuple of row so that equal tuples produce
// equal strings. Each cell is length-prefixed so separators inside values
// cannot shift a boundary.
func canonicalKey(row []string, idx []int, numeric []bool) string {
	var b strings.Builder
	for n, i := range idx {
		cell := row[i]
		if numeric[n] {
			cell = canonicalNumber(cell)
		}
		b.WriteString(strconv.Itoa(len(cell)))
		b.WriteByte(':')
		b.WriteString(cell)
	}
	return b.String()
}

// canonicalNumber formats a numeric cell in shortest form. Integers are
// compared exactly, including those beyond float64 precision; integral
// floats within int64 range render the same way so "3.0" still matches "3".
func canonicalNumber(cell string) string {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return ""
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	v, _ := strconv.ParseFloat(trimmed, 64)
	if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
