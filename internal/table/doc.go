// Package table holds the in-memory, column-ordered tables the extract and
// merge pipelines exchange, plus their CSV and XLSX codecs.
//
// Cells are kept as strings exactly as read or produced so that writing a
// table back out is byte-stable; numeric interpretation is left to callers.
package table
