package dataset

import (
	"path/filepath"
	"testing"

	"github.com/aipulse/aipulse/internal/model"
)

func writeSource(t *testing.T, path string, rows ...[]string) {
	t.Helper()
	tbl := New([]string{"text", "platform"})
	for _, row := range rows {
		if err := tbl.AppendRow(row); err != nil {
			t.Fatal(err)
		}
	}
	if err := WriteCSV(tbl, path); err != nil {
		t.Fatal(err)
	}
}

func TestMerge_AllSourcesPresent(t *testing.T) {
	dir := t.TempDir()
	reddit := filepath.Join(dir, "reddit.csv")
	twitter := filepath.Join(dir, "twitter.csv")
	hn := filepath.Join(dir, "hn.csv")
	writeSource(t, reddit, []string{"r1", ""}, []string{"r2", ""})
	writeSource(t, twitter, []string{"t1", "wrong"})
	writeSource(t, hn, []string{"h1", ""})

	merged, err := Merge([]Source{
		{Path: reddit, Platform: model.PlatformReddit},
		{Path: twitter, Platform: model.PlatformTwitter},
		{Path: hn, Platform: model.PlatformHackerNews},
	})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if merged.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", merged.Len())
	}

	// Relative order within each source and source order are preserved.
	texts, _ := merged.Column(model.ColText)
	want := []string{"r1", "r2", "t1", "h1"}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, texts[i], want[i])
		}
	}

	// The file's platform is authoritative, embedded values are overwritten.
	platforms, _ := merged.Column(model.ColPlatform)
	if platforms[2] != string(model.PlatformTwitter) {
		t.Errorf("embedded platform not overwritten: %q", platforms[2])
	}
}

func TestMerge_MissingSourceSkipped(t *testing.T) {
	dir := t.TempDir()
	reddit := filepath.Join(dir, "reddit.csv")
	hn := filepath.Join(dir, "hn.csv")
	writeSource(t, reddit, []string{"r1", ""})
	writeSource(t, hn, []string{"h1", ""}, []string{"h2", ""})

	merged, err := Merge([]Source{
		{Path: reddit, Platform: model.PlatformReddit},
		{Path: filepath.Join(dir, "missing.csv"), Platform: model.PlatformTwitter},
		{Path: hn, Platform: model.PlatformHackerNews},
	})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if merged.Len() != 3 {
		t.Fatalf("expected 3 rows (reddit + hn), got %d", merged.Len())
	}
	platforms, _ := merged.Column(model.ColPlatform)
	for _, p := range platforms {
		if p == string(model.PlatformTwitter) {
			t.Error("missing source should contribute zero rows")
		}
	}
}

func TestMerge_AllSourcesMissing(t *testing.T) {
	dir := t.TempDir()
	merged, err := Merge([]Source{
		{Path: filepath.Join(dir, "a.csv"), Platform: model.PlatformReddit},
		{Path: filepath.Join(dir, "b.csv"), Platform: model.PlatformTwitter},
		{Path: filepath.Join(dir, "c.csv"), Platform: model.PlatformHackerNews},
	})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if merged.Len() != 0 {
		t.Errorf("expected empty table, got %d rows", merged.Len())
	}
}
