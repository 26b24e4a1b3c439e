// Package textutil provides text clean-up helpers for transcript content.
//
// Transcripts are trimmed of surrounding whitespace and may optionally be
// brought to Unicode NFC so that visually identical text written by different
// tools compares equal when tables are joined downstream.
package textutil
