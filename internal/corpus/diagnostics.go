package corpus

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the scan directory does not exist.
var ErrNotFound = errors.New("data directory not found")

// NotFoundError carries the missing path. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrNotFound, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Path)
}

func (e *NotFoundError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNotFound}
	}
	return []error{ErrNotFound, e.Err}
}

// ErrorKind classifies the error for exit reporting.
func (e *NotFoundError) ErrorKind() string { return "not_found" }

// DiagnosticKind names a non-fatal condition met while scanning.
type DiagnosticKind string

const (
	// DiagParseSkip marks an audio file whose name does not follow the grammar.
	DiagParseSkip DiagnosticKind = "parse_skip"
	// DiagMissingTranscript marks an audio file without a .txt sibling.
	DiagMissingTranscript DiagnosticKind = "missing_transcript"
	// DiagReadFailure marks a transcript that exists but could not be read.
	DiagReadFailure DiagnosticKind = "read_failure"
	// DiagDurationFailure marks a WAV header that could not be decoded.
	DiagDurationFailure DiagnosticKind = "duration_failure"
)

// DiagnosticKinds lists every kind in reporting order.
var DiagnosticKinds = []DiagnosticKind{
	DiagParseSkip,
	DiagMissingTranscript,
	DiagReadFailure,
	DiagDurationFailure,
}

// Diagnostic records a non-fatal condition for one file.
type Diagnostic struct {
	Kind DiagnosticKind
	// File is the base name of the affected audio file.
	File string
	Err  error
}

func (d Diagnostic) String() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %s: %v", d.Kind, d.File, d.Err)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.File)
}

func (d Diagnostic) message() string {
	switch d.Kind {
	case DiagParseSkip:
		return "could not parse filename"
	case DiagMissingTranscript:
		return "no transcription file found"
	case DiagReadFailure:
		return "could not read transcription"
	case DiagDurationFailure:
		return "could not read audio duration"
	default:
		return string(d.Kind)
	}
}

func (d Diagnostic) impact() string {
	switch d.Kind {
	case DiagParseSkip:
		return "file excluded from metadata"
	case DiagMissingTranscript, DiagReadFailure:
		return "transcription left empty"
	case DiagDurationFailure:
		return "duration left empty"
	default:
		return "operation completed with warnings"
	}
}

func (d Diagnostic) hint() string {
	switch d.Kind {
	case DiagParseSkip:
		return "rename to G_<birth year>_<M|F>_<id>_st.WAV"
	case DiagMissingTranscript:
		return "add a .txt file with the same stem"
	case DiagReadFailure:
		return "check permissions and UTF-8 encoding of the transcript"
	case DiagDurationFailure:
		return "check the file is a PCM WAV"
	default:
		return "check logs for details"
	}
}
