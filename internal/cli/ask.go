package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aipulse/aipulse/internal/assistant"
	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/model"
	"github.com/aipulse/aipulse/internal/summary"
	"github.com/spf13/cobra"
)

var (
	askProvider string
	askModel    string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the assistant a question about the dataset",
	Long: `Ask sends a free-text question to the data assistant, grounded in the
summary statistics of the final enriched dataset. With a configured
provider the answer comes from an external text-generation service;
without one, or when the service fails, a deterministic local answer is
computed from the same statistics.

Example:
  aipulse ask "which platform is most negative about AI?"
  aipulse ask --provider dashscope --model qwen-turbo "compare the platforms"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askProvider, "provider", "", "text-generation provider (openai, dashscope; empty = local only)")
	askCmd.Flags().StringVar(&askModel, "model", "", "provider model name")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if askProvider != "" {
		cfg.Assistant.Provider = askProvider
	}
	if askModel != "" {
		cfg.Assistant.Model = askModel
	}

	table, err := dataset.ReadCSV(cfg.Paths.Final)
	if err != nil && !errors.Is(err, model.ErrMissingInput) {
		return err
	}
	if table == nil {
		fmt.Fprintf(os.Stderr, "⚠ No enriched dataset at %s; answering with no data\n", cfg.Paths.Final)
		table = dataset.New(nil)
	}

	s, err := summary.Compute(table)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	provider, err := assistant.NewProvider(cfg.Assistant)
	if err != nil {
		var credErr *model.CredentialError
		if !errors.As(err, &credErr) {
			return err
		}
		fmt.Fprintf(os.Stderr, "⚠ %v; answering locally\n", err)
	}

	a := assistant.New(provider, assistant.NewContext(s))
	answer, err := a.Ask(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "(answered by %s)\n", answer.Source)
	}
	fmt.Println(answer.Text)
	return nil
}
