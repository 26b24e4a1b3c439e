// Package catalog persists extraction runs and the recordings they produced in
// a SQLite database.
//
// The catalog is optional: extract and merge work without it. When enabled,
// every run is recorded with its row and diagnostic counts, and extracted
// recordings are upserted by relative file path so the latest run wins. The
// schema is embedded and versioned; a database created by a different schema
// version is rejected rather than migrated.
package catalog
