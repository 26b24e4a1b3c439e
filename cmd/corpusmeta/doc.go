// Package main hosts the corpusmeta CLI entrypoint and command graph.
//
// The Cobra command tree exposes the two batch pipelines, extract (recording
// file names to metadata.csv) and merge (linguistic and acoustic segment
// tables to one combined table), plus configuration scaffolding and read-only
// views over the optional SQLite catalog. It centralizes configuration
// resolution and logger setup so subcommands only translate flags into calls
// on the internal packages and render their results.
//
// Logs go to stderr; summaries and tables go to stdout.
package main
