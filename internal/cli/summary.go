package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/model"
	"github.com/aipulse/aipulse/internal/summary"
	"github.com/spf13/cobra"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print aggregate statistics from the final dataset",
	Long: `Summary computes per-platform mean sentiment and toxicity and the
global sentiment-label distribution from the final enriched table.
Columns a failed stage never produced are reported as unavailable
rather than failing the whole view.

Example:
  aipulse summary
  aipulse summary --data data/processed/final_ai_attitudes.csv`,
	RunE: runSummary,
}

var summaryData string

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryData, "data", "", "enriched dataset path (default from config)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	path := summaryData
	if path == "" {
		path = cfg.Paths.Final
	}

	table, err := dataset.ReadCSV(path)
	if err != nil {
		if errors.Is(err, model.ErrMissingInput) {
			return fmt.Errorf("no enriched dataset at %s; run 'aipulse pipeline' first", path)
		}
		return err
	}

	s, err := summary.Compute(table)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if !s.HasSentiment {
		fmt.Fprintf(os.Stderr, "⚠ sentiment columns absent, sentiment metrics unavailable\n")
	}
	if !s.HasToxicity {
		fmt.Fprintf(os.Stderr, "⚠ toxicity column absent, toxicity metrics unavailable\n")
	}

	fmt.Print(s.Render())
	return nil
}
