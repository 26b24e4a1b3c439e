package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"corpusmeta/internal/merge"
	"corpusmeta/internal/table"
	"corpusmeta/internal/testsupport"
)

const segmentKeys = "file,start,end,speaker,gender,age,birth_year,duration,emotion,text"

func writeSegmentTables(t *testing.T, env *cliTestEnv) {
	t.Helper()
	testsupport.WriteFile(t, env.cfg.Merge.Left, segmentKeys+",pos,lemma\n"+
		"data/G_1991_M_26_st.WAV,0.0,0.5,M_26,male,34,1991,0.5,unknown,hallo,INTJ,hallo\n"+
		"data/G_1991_M_26_st.WAV,0.5,1.25,M_26,male,34,1991,0.75,unknown,daar,ADV,daar\n")
	testsupport.WriteFile(t, env.cfg.Merge.Right, segmentKeys+",pitch,intensity\n"+
		"data/G_1991_M_26_st.WAV,0,0.5,M_26,male,34,1991,0.50,unknown,hallo,182.5,61.2\n"+
		"data/G_1991_M_26_st.WAV,2,3,M_26,male,34,1991,1,unknown,weg,170.0,58.9\n")
}

func TestMergeWritesCombinedTable(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSegmentTables(t, env)

	out, stderr, err := runCLI(t, []string{"merge"}, env.configPath)
	if err != nil {
		t.Fatalf("merge: %v\nstderr: %s", err, stderr)
	}

	want := segmentKeys + ",pos,lemma,pitch,intensity\n" +
		"data/G_1991_M_26_st.WAV,0.0,0.5,M_26,male,34,1991,0.5,unknown,hallo,INTJ,hallo,182.5,61.2\n"
	if got := readFile(t, env.cfg.Merge.Output); got != want {
		t.Fatalf("unexpected combined table:\n%s", got)
	}
	requireContains(t, out, "== Merge ==")
	requireContains(t, out, "(2, 12)")
	requireContains(t, out, "(1, 14)")
	requireContains(t, out, "pitch, intensity")
	requireContains(t, stderr, "merge complete")
}

func TestMergeJSONReport(t *testing.T) {
	env := setupCLITestEnv(t)
	writeSegmentTables(t, env)

	out, _, err := runCLI(t, []string{"merge", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("merge --json: %v", err)
	}
	var report struct {
		LeftShape   merge.Shape `json:"left_shape"`
		RightShape  merge.Shape `json:"right_shape"`
		Shape       merge.Shape `json:"shape"`
		LeftUnique  []string    `json:"left_unique"`
		RightUnique []string    `json:"right_unique"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if report.LeftShape != (merge.Shape{Rows: 2, Cols: 12}) || report.RightShape != (merge.Shape{Rows: 2, Cols: 12}) {
		t.Fatalf("unexpected input shapes %+v", report)
	}
	if report.Shape != (merge.Shape{Rows: 1, Cols: 14}) {
		t.Fatalf("unexpected shape %+v", report.Shape)
	}
	if strings.Join(report.LeftUnique, ",") != "pos,lemma" || strings.Join(report.RightUnique, ",") != "pitch,intensity" {
		t.Fatalf("unexpected unique columns %+v", report)
	}
}

func TestMergeSchemaMismatchFailsWithoutOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.cfg.Merge.Left, segmentKeys+",pos\n")
	testsupport.WriteFile(t, env.cfg.Merge.Right, "file,start,end,pitch\n")

	_, _, err := runCLI(t, []string{"merge"}, env.configPath)
	if !errors.Is(err, merge.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	requireMissing(t, env.cfg.Merge.Output)
	requireContains(t, formatCommandError(err), "error (schema_mismatch)")
}

func TestMergePositionalArgumentsAndXLSXOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	left := filepath.Join(env.baseDir, "l.csv")
	right := filepath.Join(env.baseDir, "r.csv")
	testsupport.WriteFile(t, left, "id,a\n1,x\n2,y\n")
	testsupport.WriteFile(t, right, "id,b\n2,z\n")
	output := filepath.Join(env.baseDir, "combined.xlsx")

	if _, _, err := runCLI(t, []string{"merge", left, right, "--keys", "id", "-o", output}, env.configPath); err != nil {
		t.Fatalf("merge: %v", err)
	}
	tbl, err := table.ReadFile(output)
	if err != nil {
		t.Fatalf("read xlsx: %v", err)
	}
	if strings.Join(tbl.Columns, ",") != "id,a,b" || len(tbl.Rows) != 1 || strings.Join(tbl.Rows[0], ",") != "2,y,z" {
		t.Fatalf("unexpected table %v %v", tbl.Columns, tbl.Rows)
	}
}

func TestMergeRecordsCatalogRun(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithCatalog())
	writeSegmentTables(t, env)

	if _, _, err := runCLI(t, []string{"merge"}, env.configPath); err != nil {
		t.Fatalf("merge: %v", err)
	}
	out, _, err := runCLI(t, []string{"catalog", "runs", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog runs: %v", err)
	}
	var runs []struct {
		Kind string `json:"kind"`
		Rows int    `json:"rows"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].Kind != "merge" || runs[0].Rows != 1 {
		t.Fatalf("unexpected runs %+v", runs)
	}
}

func TestMergeKeysFlagOverridesConfiguredInference(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithInferKeys())
	testsupport.WriteFile(t, env.cfg.Merge.Left, "id,tag,a\n1,x,A\n")
	testsupport.WriteFile(t, env.cfg.Merge.Right, "id,tag,b\n1,y,B\n")

	if _, _, err := runCLI(t, []string{"merge"}, env.configPath); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got := readFile(t, env.cfg.Merge.Output); got != "id,tag,a,b\n" {
		t.Fatalf("expected inferred keys to match nothing, got:\n%s", got)
	}

	if _, _, err := runCLI(t, []string{"merge", "--keys", "id"}, env.configPath); err != nil {
		t.Fatalf("merge --keys: %v", err)
	}
	if got := readFile(t, env.cfg.Merge.Output); got != "id,tag_x,a,tag_y,b\n1,x,A,y,B\n" {
		t.Fatalf("expected explicit keys to win, got:\n%s", got)
	}

	if _, _, err := runCLI(t, []string{"merge", "--keys", "id", "--infer-keys"}, env.configPath); err == nil {
		t.Fatal("expected --keys and --infer-keys to be rejected together")
	}
}

func TestMergeCatalogFailureKeepsOutput(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithCorruptCatalog())
	writeSegmentTables(t, env)

	_, stderr, err := runCLI(t, []string{"merge"}, env.configPath)
	if err != nil {
		t.Fatalf("merge should succeed without the catalog: %v", err)
	}
	requireContains(t, readFile(t, env.cfg.Merge.Output), "INTJ")
	requireContains(t, stderr, "catalog update failed")
}

func TestMergeLogsUniqueColumnsOnSchemaMismatch(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.cfg.Merge.Left, segmentKeys+",pos\n")
	testsupport.WriteFile(t, env.cfg.Merge.Right, "file,start,end,pitch\n")

	_, stderr, err := runCLI(t, []string{"merge"}, env.configPath)
	if err == nil {
		t.Fatal("expected schema mismatch")
	}
	requireContains(t, stderr, "partitioned columns")
	requireContains(t, stderr, "pitch")
}
