package dataset

import (
	"errors"
	"fmt"
	"os"

	"github.com/aipulse/aipulse/internal/model"
)

// Source pairs a cleaned per-platform file with its canonical platform.
// The file's location is authoritative: whatever platform value a row
// already carries is overwritten with this one.
type Source struct {
	Path     string
	Platform model.Platform
}

// DefaultSources returns the three platform files in canonical order.
func DefaultSources(paths model.PathsConfig) []Source {
	return []Source{
		{Path: paths.RedditClean, Platform: model.PlatformReddit},
		{Path: paths.TwitterClean, Platform: model.PlatformTwitter},
		{Path: paths.HackerNewsClean, Platform: model.PlatformHackerNews},
	}
}

// Merge loads every source and concatenates them into one table,
// preserving row order within each source and source order across them.
// A missing file contributes zero rows and a warning rather than
// aborting the merge; all sources missing yields an empty table.
func Merge(sources []Source) (*Table, error) {
	merged := New(nil)
	for _, src := range sources {
		t, err := ReadCSV(src.Path)
		if err != nil {
			if errors.Is(err, model.ErrMissingInput) {
				fmt.Fprintf(os.Stderr, "⚠ Missing file: %s (skipping %s)\n", src.Path, src.Platform)
				continue
			}
			return nil, fmt.Errorf("load %s: %w", src.Platform, err)
		}
		t.SetColumn(model.ColPlatform, string(src.Platform))
		merged.AppendFrom(t)
		fmt.Fprintf(os.Stderr, "✓ Loaded %s: %d rows\n", src.Path, t.Len())
	}
	return merged, nil
}
