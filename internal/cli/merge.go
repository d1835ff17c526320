package cli

import (
	"fmt"
	"os"

	"github.com/aipulse/aipulse/internal/clean"
	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/model"
	"github.com/spf13/cobra"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge per-platform cleaned files into one dataset",
	Long: `Merge loads the cleaned Reddit, Twitter, and Hacker News files,
tags each record with its canonical platform name, normalizes the text
column (URLs, HTML, whitespace), and concatenates everything into one
table.

A missing platform file is skipped with a warning; it never aborts the
merge. The file's location decides the platform, overriding any
platform value already embedded in its rows.

Example:
  aipulse merge
  aipulse merge --out data/clean/all_clean.csv`,
	RunE: runMerge,
}

var mergeOut string

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVar(&mergeOut, "out", "", "output path (default from config)")
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	out := mergeOut
	if out == "" {
		out = cfg.Paths.Merged
	}

	fmt.Fprintf(os.Stderr, "Merging clean datasets...\n")
	table, err := dataset.Merge(dataset.DefaultSources(cfg.Paths))
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	if table.HasColumn(model.ColText) {
		if err := table.MapColumn(model.ColText, clean.NormalizeHTML); err != nil {
			return fmt.Errorf("normalize text: %w", err)
		}
	}

	if err := dataset.WriteCSV(table, out); err != nil {
		return fmt.Errorf("write merged data: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Merged %d rows → %s\n", table.Len(), out)
	return nil
}
