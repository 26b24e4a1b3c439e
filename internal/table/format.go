package table

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var errUnknownFormat = errors.New("unsupported table format")

// Format identifies an on-disk table encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatForPath picks the encoding from the file extension; anything other
// than .xlsx is treated as CSV.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// ReadFile loads a table from path using the encoding its extension implies.
func ReadFile(path string) (*Table, error) {
	switch FormatForPath(path) {
	case FormatXLSX:
		return ReadXLSXFile(path)
	default:
		return ReadCSVFile(path)
	}
}

// Encode renders t in the given format.
func Encode(t *Table, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return EncodeCSV(t)
	case FormatXLSX:
		return EncodeXLSX(t)
	default:
		return nil, fmt.Errorf("%w %q", errUnknownFormat, format)
	}
}
