package merge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaMismatch reports that an input lacks a required key column.
var ErrSchemaMismatch = errors.New("schema mismatch")

// SchemaMismatchError names the input and the key columns it is missing.
type SchemaMismatchError struct {
	Side    string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s table is missing key columns: %s", e.Side, strings.Join(e.Missing, ", "))
}

// Is matches ErrSchemaMismatch.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// ErrorKind classifies the error for the CLI.
func (e *SchemaMismatchError) ErrorKind() string {
	return "schema_mismatch"
}
