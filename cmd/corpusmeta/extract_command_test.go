package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"corpusmeta/internal/corpus"
	"corpusmeta/internal/fileutil"
	"corpusmeta/internal/table"
	"corpusmeta/internal/testsupport"
)

func writeSampleCorpus(t *testing.T, dir string) {
	t.Helper()
	testsupport.WriteCorpus(t, dir, map[string]string{
		"G_1991_M_26_st.WAV": "riff",
		"G_1991_M_26_st.txt": "goedemorgen\n",
		"G_1988_F_07_st.wav": "riff",
		"random_file.WAV":    "riff",
	})
}

func TestExtractWritesMetadataAndSummary(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSampleCorpus(t, env.cfg.Extract.DataDir)

	out, stderr, err := runCLI(t, []string{"extract"}, env.configPath)
	if err != nil {
		t.Fatalf("extract: %v\nstderr: %s", err, stderr)
	}

	want := "file,speaker,gender,age,birth_year,emotion,transcription\n" +
		"data/G_1988_F_07_st.wav,F_07,female,37,1988,unknown,\n" +
		"data/G_1991_M_26_st.WAV,M_26,male,34,1991,unknown,goedemorgen\n"
	if got := readFile(t, env.cfg.Extract.Output); got != want {
		t.Fatalf("unexpected metadata:\n%s", got)
	}

	requireContains(t, out, "== Extraction ==")
	requireContains(t, out, "parse_skip")
	requireContains(t, out, "missing_transcript")
	requireContains(t, stderr, "random_file.WAV")
	if _, err := os.Stat(fileutil.LockPath(env.cfg.Extract.Output)); err != nil {
		t.Fatalf("expected lock file beside output: %v", err)
	}
}

func TestExtractRerunIsByteIdentical(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSampleCorpus(t, env.cfg.Extract.DataDir)

	if _, _, err := runCLI(t, []string{"extract"}, env.configPath); err != nil {
		t.Fatalf("first extract: %v", err)
	}
	first := readFile(t, env.cfg.Extract.Output)
	if _, _, err := runCLI(t, []string{"extract"}, env.configPath); err != nil {
		t.Fatalf("second extract: %v", err)
	}
	if second := readFile(t, env.cfg.Extract.Output); second != first {
		t.Fatalf("rerun changed output:\n%s\n---\n%s", first, second)
	}
}

func TestExtractMissingDirectoryFailsWithoutOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"extract", filepath.Join(env.baseDir, "nope")}, env.configPath)
	if !errors.Is(err, corpus.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	requireMissing(t, env.cfg.Extract.Output)
	requireContains(t, formatCommandError(err), "error (not_found)")
}

func TestExtractJSONSummary(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSampleCorpus(t, env.cfg.Extract.DataDir)

	out, _, err := runCLI(t, []string{"extract", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("extract --json: %v", err)
	}
	var report struct {
		RunID       string         `json:"run_id"`
		Found       int            `json:"found"`
		Rows        int            `json:"rows"`
		Diagnostics map[string]int `json:"diagnostics"`
		Age         corpus.Stats   `json:"age"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if report.RunID == "" || report.Found != 3 || report.Rows != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Diagnostics["parse_skip"] != 1 || report.Diagnostics["missing_transcript"] != 1 {
		t.Fatalf("unexpected diagnostics %v", report.Diagnostics)
	}
	if report.Age.Mean != 35.5 {
		t.Fatalf("unexpected age stats %+v", report.Age)
	}
}

func TestExtractArgumentAndFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	other := filepath.Join(env.baseDir, "recordings")
	testsupport.WriteCorpus(t, other, map[string]string{
		"G_1991_M_26_st.wav.WAV": "riff",
		"G_2000_F_1_st.WAV":      "riff",
	})
	output := filepath.Join(env.baseDir, "out", "meta.xlsx")

	if _, _, err := runCLI(t, []string{"extract", other, "--output", output, "--strict"}, env.configPath); err != nil {
		t.Fatalf("extract: %v", err)
	}
	tbl, err := table.ReadFile(output)
	if err != nil {
		t.Fatalf("read xlsx: %v", err)
	}
	if len(tbl.Rows) != 1 || tbl.Value(0, "file") != "recordings/G_2000_F_1_st.WAV" {
		t.Fatalf("unexpected rows %v", tbl.Rows)
	}
	requireMissing(t, env.cfg.Extract.Output)
}

func TestExtractDurationColumn(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteWAV(t, filepath.Join(env.cfg.Extract.DataDir, "G_1991_M_26_st.WAV"), 8000, 4000)

	if _, _, err := runCLI(t, []string{"extract", "--duration"}, env.configPath); err != nil {
		t.Fatalf("extract --duration: %v", err)
	}
	want := "file,speaker,gender,age,birth_year,duration,emotion,transcription\n" +
		"data/G_1991_M_26_st.WAV,M_26,male,34,1991,0.5,unknown,\n"
	if got := readFile(t, env.cfg.Extract.Output); got != want {
		t.Fatalf("unexpected metadata:\n%s", got)
	}
}

func TestExtractRecordsCatalog(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithCatalog())
	writeSampleCorpus(t, env.cfg.Extract.DataDir)

	if _, _, err := runCLI(t, []string{"extract"}, env.configPath); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, err := os.Stat(env.cfg.Catalog.Path); err != nil {
		t.Fatalf("expected catalog database: %v", err)
	}

	out, _, err := runCLI(t, []string{"catalog", "speakers", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog speakers: %v", err)
	}
	var counts []struct {
		Speaker    string `json:"speaker"`
		Recordings int    `json:"recordings"`
	}
	if err := json.Unmarshal([]byte(out), &counts); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(counts) != 2 || counts[0].Speaker != "F_07" || counts[1].Speaker != "M_26" {
		t.Fatalf("unexpected speaker counts %+v", counts)
	}

	out, _, err = runCLI(t, []string{"catalog", "runs"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog runs: %v", err)
	}
	requireContains(t, out, "extract")
	requireContains(t, out, env.cfg.Extract.Output)

	out, _, err = runCLI(t, []string{"catalog", "recordings", "--speaker", "M_26", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog recordings: %v", err)
	}
	var recs []struct {
		File          string `json:"file"`
		Transcription string `json:"transcription"`
	}
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(recs) != 1 || recs[0].File != "data/G_1991_M_26_st.WAV" || recs[0].Transcription != "goedemorgen" {
		t.Fatalf("unexpected recordings %+v", recs)
	}

	out, _, err = runCLI(t, []string{"catalog", "recordings"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog recordings: %v", err)
	}
	requireContains(t, out, "data/G_1988_F_07_st.wav")
}

func TestExtractCatalogFailureKeepsOutput(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithCorruptCatalog())
	writeSampleCorpus(t, env.cfg.Extract.DataDir)

	out, stderr, err := runCLI(t, []string{"extract"}, env.configPath)
	if err != nil {
		t.Fatalf("extract should succeed without the catalog: %v", err)
	}
	requireContains(t, readFile(t, env.cfg.Extract.Output), "data/G_1991_M_26_st.WAV")
	requireContains(t, stderr, "catalog update failed")
	requireContains(t, out, "== Extraction ==")
}

func TestExtractHonoursStrictAndReferenceYearFromConfig(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStrictFilenames(), testsupport.WithReferenceYear(2030))
	testsupport.WriteCorpus(t, env.cfg.Extract.DataDir, map[string]string{
		"G_1991_M_26_st.wav.WAV": "riff",
		"G_2000_F_1_st.WAV":      "riff",
	})

	if _, _, err := runCLI(t, []string{"extract"}, env.configPath); err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := "file,speaker,gender,age,birth_year,emotion,transcription\n" +
		"data/G_2000_F_1_st.WAV,F_1,female,30,2000,unknown,\n"
	if got := readFile(t, env.cfg.Extract.Output); got != want {
		t.Fatalf("unexpected metadata:\n%s", got)
	}
}
