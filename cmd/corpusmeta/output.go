package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"corpusmeta/internal/fileutil"
	"corpusmeta/internal/table"
)

// writeTable encodes t in the format implied by path and replaces path
// atomically. Nothing is written when encoding fails.
func writeTable(path string, t *table.Table) error {
	data, err := table.Encode(t, table.FormatForPath(path))
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
