package table_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"corpusmeta/internal/table"
)

func TestNewRejectsDuplicateColumns(t *testing.T) {
	_, err := table.New("file", "speaker", "file")
	if !errors.Is(err, table.ErrDuplicateColumn) {
		t.Fatalf("expected ErrDuplicateColumn, got %v", err)
	}
}

func TestAddRowEnforcesWidth(t *testing.T) {
	tbl, err := table.New("a", "b")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tbl.AddRow("1"); err == nil {
		t.Fatal("expected width mismatch error")
	}
	if err := tbl.AddRow("1", "2"); err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if rows, cols := tbl.Shape(); rows != 1 || cols != 2 {
		t.Fatalf("unexpected shape (%d, %d)", rows, cols)
	}
	if tbl.ShapeString() != "(1, 2)" {
		t.Fatalf("unexpected shape string %q", tbl.ShapeString())
	}
	if got := tbl.Value(0, "b"); got != "2" {
		t.Fatalf("unexpected value %q", got)
	}
	if missing := tbl.Missing([]string{"a", "c", "d"}); strings.Join(missing, ",") != "c,d" {
		t.Fatalf("unexpected missing columns %v", missing)
	}
}

func TestReadCSVHandlesQuotedFieldsAndBOM(t *testing.T) {
	input := "\ufefffile,text\ndata/a.WAV,\"hello, world\"\ndata/b.WAV,\"line one\nline two\"\n"
	tbl, err := table.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.Columns[0] != "file" {
		t.Fatalf("expected BOM stripped from header, got %q", tbl.Columns[0])
	}
	texts, ok := tbl.Column("text")
	if !ok {
		t.Fatal("expected text column")
	}
	if texts[0] != "hello, world" || texts[1] != "line one\nline two" {
		t.Fatalf("unexpected texts %q", texts)
	}
}

func TestReadCSVRejectsRaggedRows(t *testing.T) {
	if _, err := table.ReadCSV(strings.NewReader("a,b\n1,2,3\n")); err == nil {
		t.Fatal("expected ragged row error")
	}
}

func TestReadCSVRejectsEmptyInput(t *testing.T) {
	if _, err := table.ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected missing header error")
	}
}

func TestCSVWriteIsStable(t *testing.T) {
	tbl, _ := table.New("file", "transcription")
	_ = tbl.AddRow("data/a.WAV", "hi \"there\"")
	_ = tbl.AddRow("data/b.WAV", "")

	first, err := table.EncodeCSV(tbl)
	if err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}
	want := "file,transcription\ndata/a.WAV,\"hi \"\"there\"\"\"\ndata/b.WAV,\n"
	if string(first) != want {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", first, want)
	}

	parsed, err := table.ReadCSV(strings.NewReader(string(first)))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	second, err := table.EncodeCSV(parsed)
	if err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("re-encoding changed bytes:\n%s\nvs\n%s", first, second)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	tbl, _ := table.New("file", "age", "transcription")
	_ = tbl.AddRow("data/a.WAV", "34", "hello")
	_ = tbl.AddRow("data/b.WAV", "37", "")

	data, err := table.Encode(tbl, table.FormatXLSX)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := table.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Join(got.Columns, ",") != "file,age,transcription" {
		t.Fatalf("unexpected columns %v", got.Columns)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Rows))
	}
	if got.Rows[0][1] != "34" || got.Rows[1][2] != "" {
		t.Fatalf("unexpected rows %q", got.Rows)
	}
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]table.Format{
		"metadata.csv":  table.FormatCSV,
		"metadata.XLSX": table.FormatXLSX,
		"metadata":      table.FormatCSV,
	}
	for path, want := range cases {
		if got := table.FormatForPath(path); got != want {
			t.Fatalf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSelectReordersColumns(t *testing.T) {
	tbl, err := table.New("a", "b", "c")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tbl.AddRow("1", "2", "3"); err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	sel, err := tbl.Select("c", "a")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if strings.Join(sel.Columns, ",") != "c,a" || strings.Join(sel.Rows[0], ",") != "3,1" {
		t.Fatalf("unexpected selection %v %v", sel.Columns, sel.Rows)
	}
	if _, err := tbl.Select("a", "z"); err == nil {
		t.Fatal("expected error for unknown column")
	}
}
