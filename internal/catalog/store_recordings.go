package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// UpsertRecordings stores recs under runID in a single transaction, replacing
// any earlier copy of the same file. The run must already be recorded.
func (s *Store) UpsertRecordings(ctx context.Context, runID string, recs []Recording) (int, error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(runID) == "" {
		return 0, errors.New("run id is required")
	}
	if len(recs) == 0 {
		return 0, nil
	}

	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin upsert tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO recordings (
                file, speaker, gender, age, birth_year, emotion, transcription, run_id, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT(file) DO UPDATE SET
                speaker = excluded.speaker, gender = excluded.gender, age = excluded.age,
                birth_year = excluded.birth_year, emotion = excluded.emotion,
                transcription = excluded.transcription, run_id = excluded.run_id,
                updated_at = excluded.updated_at`)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer stmt.Close()

		now := formatTime(time.Now())
		for _, rec := range recs {
			if _, err := stmt.ExecContext(ctx,
				rec.File,
				rec.Speaker,
				rec.Gender,
				rec.Age,
				rec.BirthYear,
				rec.Emotion,
				rec.Transcription,
				runID,
				now,
			); err != nil {
				return fmt.Errorf("upsert %s: %w", rec.File, err)
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}

// Recordings returns every catalogued recording ordered by file.
func (s *Store) Recordings(ctx context.Context) ([]Recording, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT file, speaker, gender, age, birth_year, emotion, transcription, run_id, updated_at
         FROM recordings ORDER BY file`)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()

	var out []Recording
	for rows.Next() {
		var (
			rec        Recording
			updatedRaw string
		)
		if err := rows.Scan(&rec.File, &rec.Speaker, &rec.Gender, &rec.Age, &rec.BirthYear,
			&rec.Emotion, &rec.Transcription, &rec.RunID, &updatedRaw); err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		if updated, err := parseTimeString(updatedRaw); err == nil {
			rec.UpdatedAt = updated
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SpeakerCounts aggregates catalogued recordings per speaker, ordered by
// speaker label.
func (s *Store) SpeakerCounts(ctx context.Context) ([]SpeakerCount, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT speaker, gender, COUNT(1), SUM(CASE WHEN transcription <> '' THEN 1 ELSE 0 END)
         FROM recordings GROUP BY speaker, gender ORDER BY speaker, gender`)
	if err != nil {
		return nil, fmt.Errorf("speaker counts: %w", err)
	}
	defer rows.Close()

	var out []SpeakerCount
	for rows.Next() {
		var sc SpeakerCount
		if err := rows.Scan(&sc.Speaker, &sc.Gender, &sc.Recordings, &sc.Transcribed); err != nil {
			return nil, fmt.Errorf("scan speaker count: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
