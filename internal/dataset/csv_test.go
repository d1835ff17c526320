package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aipulse/aipulse/internal/model"
)

func TestReadCSV_Missing(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, model.ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}
}

func TestWriteCSV_CreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "processed", "out.csv")

	tbl := New([]string{"text", "platform"})
	_ = tbl.AppendRow([]string{"hello, world", "Reddit"})
	_ = tbl.AppendRow([]string{"line with \"quotes\"", "Twitter"})

	if err := WriteCSV(tbl, path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file not created: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	v, _ := got.Cell(0, "text")
	if v != "hello, world" {
		t.Errorf("comma not preserved: %q", v)
	}
	v, _ = got.Cell(1, "text")
	if v != "line with \"quotes\"" {
		t.Errorf("quotes not preserved: %q", v)
	}
}

func TestReadCSV_OverWideRowFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.csv")
	content := "text,platform\nok,Reddit\ntoo,many,cells\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadCSV(path)
	if err == nil {
		t.Fatal("a row wider than the header should be a parse error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should locate the bad row: %v", err)
	}
}

func TestReadCSV_RaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	content := "text,platform,score\nshort row\nfull,Reddit,0.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tbl, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
	// Short rows pad with empty cells.
	v, _ := tbl.Cell(0, "platform")
	if v != "" {
		t.Errorf("expected empty pad cell, got %q", v)
	}
}
