package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const runColumns = "run_id, kind, input, output, rows, diagnostics, started_at, finished_at"

// RecordRun inserts or replaces a run row.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is required")
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}
	err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
             ON CONFLICT(run_id) DO UPDATE SET
                kind = excluded.kind, input = excluded.input, output = excluded.output,
                rows = excluded.rows, diagnostics = excluded.diagnostics,
                started_at = excluded.started_at, finished_at = excluded.finished_at`,
			run.ID,
			string(run.Kind),
			run.Input,
			run.Output,
			run.Rows,
			run.Diagnostics,
			formatTime(run.StartedAt),
			formatTime(run.FinishedAt),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                Run
			kind               string
			startedRaw, finRaw string
		)
		if err := rows.Scan(&run.ID, &kind, &run.Input, &run.Output, &run.Rows, &run.Diagnostics, &startedRaw, &finRaw); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Kind = RunKind(kind)
		if started, err := parseTimeString(startedRaw); err == nil {
			run.StartedAt = started
		}
		if finished, err := parseTimeString(finRaw); err == nil {
			run.FinishedAt = finished
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
