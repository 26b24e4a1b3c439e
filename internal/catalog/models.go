package catalog

import "time"

// RunKind identifies which pipeline produced a run.
type RunKind string

const (
	RunExtract RunKind = "extract"
	RunMerge   RunKind = "merge"
)

// Run is one invocation of a pipeline.
type Run struct {
	ID          string    `json:"run_id"`
	Kind        RunKind   `json:"kind"`
	Input       string    `json:"input"`
	Output      string    `json:"output"`
	Rows        int       `json:"rows"`
	Diagnostics int       `json:"diagnostics"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Duration reports how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Recording is the catalogued copy of one metadata row.
type Recording struct {
	File          string    `json:"file"`
	Speaker       string    `json:"speaker"`
	Gender        string    `json:"gender"`
	Age           int       `json:"age"`
	BirthYear     int       `json:"birth_year"`
	Emotion       string    `json:"emotion"`
	Transcription string    `json:"transcription"`
	RunID         string    `json:"run_id"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SpeakerCount aggregates recordings per speaker.
type SpeakerCount struct {
	Speaker    string `json:"speaker"`
	Gender     string `json:"gender"`
	Recordings int    `json:"recordings"`
	// Transcribed counts recordings with a non-empty transcription.
	Transcribed int `json:"transcribed"`
}
