package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"corpusmeta/internal/logging"
	"corpusmeta/internal/table"
	"corpusmeta/internal/textutil"
)

// Column names of the metadata table, in output order. ColumnDuration is only
// present when duration probing is enabled.
const (
	ColumnFile          = "file"
	ColumnSpeaker       = "speaker"
	ColumnGender        = "gender"
	ColumnAge           = "age"
	ColumnBirthYear     = "birth_year"
	ColumnDuration      = "duration"
	ColumnEmotion       = "emotion"
	ColumnTranscription = "transcription"
)

// Options controls how recordings are interpreted.
type Options struct {
	ReferenceYear        int
	EmotionPlaceholder   string
	StrictFilenames      bool
	NormalizeTranscripts bool
	ProbeDuration        bool
}

// DurationProber returns the playback length of an audio file in seconds.
type DurationProber func(path string) (float64, error)

// Record is one row of the metadata table.
type Record struct {
	File          string
	Speaker       string
	Gender        string
	Age           int
	BirthYear     int
	Emotion       string
	Transcription string
	// Duration is set only when probing succeeded.
	Duration    float64
	HasDuration bool
}

// Result is the outcome of one directory scan.
type Result struct {
	Dir         string
	Found       int
	Records     []Record
	Diagnostics []Diagnostic
	probed      bool
}

// Extractor builds metadata records from a recordings directory.
type Extractor struct {
	opts   Options
	logger *slog.Logger
	probe  DurationProber
}

// NewExtractor returns an Extractor. A nil logger discards diagnostics output;
// they are still collected on the Result.
func NewExtractor(opts Options, logger *slog.Logger) *Extractor {
	if opts.EmotionPlaceholder == "" {
		opts.EmotionPlaceholder = "unknown"
	}
	return &Extractor{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "extract"),
		probe:  ProbeWAVDuration,
	}
}

// WithDurationProber replaces the WAV header reader used when probing.
func (e *Extractor) WithDurationProber(probe DurationProber) *Extractor {
	e.probe = probe
	return e
}

// Extract scans dir (non-recursively) for .WAV/.wav files, in lexicographic
// name order, and returns one record per parseable file.
func (e *Extractor) Extract(ctx context.Context, dir string) (*Result, error) {
	logger := logging.WithContext(ctx, e.logger)

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: dir}
		}
		return nil, fmt.Errorf("stat data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, &NotFoundError{Path: dir, Err: errors.New("not a directory")}
	}

	names, err := listAudio(dir)
	if err != nil {
		return nil, err
	}
	logger.Info("found audio files", logging.String("dir", dir), logging.Int("count", len(names)))

	base := filepath.Dir(filepath.Clean(dir))
	result := &Result{Dir: dir, Found: len(names), probed: e.opts.ProbeDuration}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		meta, ok := ParseFilename(name, e.opts.ReferenceYear, e.opts.StrictFilenames)
		if !ok {
			e.report(logger, result, Diagnostic{Kind: DiagParseSkip, File: name})
			continue
		}

		audioPath := filepath.Join(dir, name)
		rel, err := filepath.Rel(base, audioPath)
		if err != nil {
			return nil, fmt.Errorf("relative path for %s: %w", name, err)
		}

		record := Record{
			File:      filepath.ToSlash(rel),
			Speaker:   meta.Speaker,
			Gender:    meta.Gender,
			Age:       meta.Age,
			BirthYear: meta.BirthYear,
			Emotion:   e.opts.EmotionPlaceholder,
		}

		transcript, diag := e.readTranscript(audioPath)
		if diag != nil {
			diag.File = name
			e.report(logger, result, *diag)
		}
		record.Transcription = transcript

		if e.opts.ProbeDuration && e.probe != nil {
			seconds, err := e.probe(audioPath)
			if err != nil {
				e.report(logger, result, Diagnostic{Kind: DiagDurationFailure, File: name, Err: err})
			} else {
				record.Duration = seconds
				record.HasDuration = true
			}
		}

		result.Records = append(result.Records, record)
		logger.Debug("parsed recording",
			logging.String("file", record.File),
			logging.String("speaker", record.Speaker),
			logging.Int("birth_year", record.BirthYear),
		)
	}

	logger.Info("extraction complete",
		logging.Int("rows", len(result.Records)),
		logging.Int("diagnostics", len(result.Diagnostics)),
	)
	return result, nil
}

func (e *Extractor) report(logger *slog.Logger, result *Result, d Diagnostic) {
	result.Diagnostics = append(result.Diagnostics, d)
	attrs := []logging.Attr{
		logging.String("file", d.File),
		logging.String(logging.FieldErrorHint, d.hint()),
		logging.String(logging.FieldImpact, d.impact()),
	}
	if d.Err != nil {
		attrs = append(attrs, logging.Error(d.Err))
	}
	logging.WarnWithContext(logger, d.message(), string(d.Kind), attrs...)
}

// readTranscript loads the same-stem .txt sibling of audioPath. A nil
// Diagnostic means the transcript was read; otherwise the text is empty.
func (e *Extractor) readTranscript(audioPath string) (string, *Diagnostic) {
	txtPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".txt"

	if _, err := os.Stat(txtPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &Diagnostic{Kind: DiagMissingTranscript}
		}
		return "", &Diagnostic{Kind: DiagReadFailure, Err: err}
	}

	raw, err := os.ReadFile(txtPath)
	if err != nil {
		return "", &Diagnostic{Kind: DiagReadFailure, Err: err}
	}
	text, err := textutil.CleanTranscript(raw, e.opts.NormalizeTranscripts)
	if err != nil {
		return "", &Diagnostic{Kind: DiagReadFailure, Err: fmt.Errorf("%s: %w", filepath.Base(txtPath), err)}
	}
	return text, nil
}

func listAudio(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isAudioName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names, nil
}

// Columns returns the metadata header for this result.
func (r *Result) Columns() []string {
	cols := []string{ColumnFile, ColumnSpeaker, ColumnGender, ColumnAge, ColumnBirthYear}
	if r.probed {
		cols = append(cols, ColumnDuration)
	}
	return append(cols, ColumnEmotion, ColumnTranscription)
}

// Table renders the records as the metadata table, one row per record in
// scan order.
func (r *Result) Table() *table.Table {
	t, _ := table.New(r.Columns()...)
	for _, rec := range r.Records {
		row := []string{
			rec.File,
			rec.Speaker,
			rec.Gender,
			strconv.Itoa(rec.Age),
			strconv.Itoa(rec.BirthYear),
		}
		if r.probed {
			duration := ""
			if rec.HasDuration {
				duration = strconv.FormatFloat(rec.Duration, 'f', -1, 64)
			}
			row = append(row, duration)
		}
		row = append(row, rec.Emotion, rec.Transcription)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// CountByKind tallies diagnostics per kind.
func (r *Result) CountByKind() map[DiagnosticKind]int {
	counts := make(map[DiagnosticKind]int, len(DiagnosticKinds))
	for _, d := range r.Diagnostics {
		counts[d.Kind]++
	}
	return counts
}
