package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aipulse/aipulse/internal/cache"
	"github.com/aipulse/aipulse/internal/infer"
	"github.com/aipulse/aipulse/internal/model"
	"github.com/aipulse/aipulse/internal/pipeline"
	"github.com/aipulse/aipulse/internal/stage"
	"github.com/spf13/cobra"
)

var keepGoing bool

// pipelineCmd represents the pipeline command
var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run all enrichment stages in order",
	Long: `Pipeline runs sentiment → emotions → topics → toxicity, each stage
reading the previous stage's output file and writing its own. Completed
stages are recorded in a ledger with a hash of the input they consumed;
a stage whose input is unchanged since its last completed run is
skipped, and a stage whose input is missing or stale blocks the
remaining stages.

Example:
  aipulse pipeline
  aipulse pipeline --keep-going`,
	RunE: runPipeline,
}

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <stage>",
	Short: "Run a single enrichment stage",
	Long: `Analyze re-runs one stage independently: sentiment, emotions, topics,
or toxicity. The stage reads its usual input file and rewrites its
output file; downstream stages are untouched.

Example:
  aipulse analyze sentiment
  aipulse analyze toxicity`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sentiment", "emotions", "topics", "toxicity"},
	RunE:      runAnalyze,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(analyzeCmd)
	pipelineCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "run later stages even after a failure (their input may be stale)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	p.KeepGoing = keepGoing

	report, err := p.Run(context.Background())
	if err != nil {
		return err
	}
	if report.BlockedAt != "" {
		return fmt.Errorf("pipeline blocked at %s", report.BlockedAt)
	}
	if !report.Succeeded() {
		return fmt.Errorf("one or more stages failed")
	}
	fmt.Fprintf(os.Stderr, "✓ All analysis stages completed\n")
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	res, err := p.RunStage(context.Background(), args[0])
	if err != nil {
		return err
	}
	switch res.Status {
	case pipeline.StatusCompleted:
		fmt.Fprintf(os.Stderr, "✓ %s: %d rows\n", res.Name, res.Rows)
		return nil
	case pipeline.StatusSkipped:
		fmt.Fprintf(os.Stderr, "✓ %s: up to date, skipped\n", res.Name)
		return nil
	default:
		return fmt.Errorf("%s: %w", res.Name, res.Err)
	}
}

// buildPipeline wires the inference clients, cache, stages, and ledger
// from configuration.
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, error) {
	server := infer.NewModelServer(cfg.Inference, cfg.Stages.TopicMinDocuments)

	var emotionScorer infer.EmotionScorer = server
	var toxicityScorer infer.ToxicityScorer

	perspective, err := infer.NewPerspective(cfg.Toxicity)
	if err != nil {
		var credErr *model.CredentialError
		if !errors.As(err, &credErr) {
			return nil, fmt.Errorf("toxicity client: %w", err)
		}
		// Recoverable: the stage null-fills the column, but the
		// operator must see why.
		fmt.Fprintf(os.Stderr, "⚠ %v; toxicity scores will be null\n", err)
	} else {
		toxicityScorer = perspective
	}

	if cfg.Cache.Enabled {
		store := cache.NewLayered(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		emotionScorer = infer.NewCachedEmotionScorer(emotionScorer, store)
		if toxicityScorer != nil {
			toxicityScorer = infer.NewCachedToxicityScorer(toxicityScorer, store)
		}
	}

	steps := []pipeline.Step{
		{
			Stage:      stage.NewSentiment(server, cfg.Stages.SentimentBatchSize, cfg.Stages.ClassifierMaxChars, progressPrinter("sentiment")),
			InputPath:  cfg.Paths.Merged,
			OutputPath: cfg.Paths.WithSentiment,
		},
		{
			Stage:      stage.NewEmotion(emotionScorer, cfg.Stages.ClassifierMaxChars, progressPrinter("emotions")),
			InputPath:  cfg.Paths.WithSentiment,
			OutputPath: cfg.Paths.WithEmotions,
		},
		{
			Stage:      stage.NewTopic(server, cfg.Paths.TopicInfo, cfg.Stages.ClassifierMaxChars),
			InputPath:  cfg.Paths.WithEmotions,
			OutputPath: cfg.Paths.WithTopics,
		},
		{
			Stage:      stage.NewToxicity(toxicityScorer, cfg.Toxicity.QuotaCap, cfg.Stages.ToxicityMaxChars, progressPrinter("toxicity")),
			InputPath:  cfg.Paths.WithTopics,
			OutputPath: cfg.Paths.Final,
		},
	}

	ledger, err := pipeline.LoadLedger(cfg.Paths.Ledger)
	if err != nil {
		return nil, err
	}
	return pipeline.New(steps, ledger), nil
}

// progressPrinter reports batch completion the way the stages always
// have: a line every hundred records and one at the end.
func progressPrinter(name string) stage.Progress {
	return func(done, total int) {
		if done%100 == 0 || done == total {
			fmt.Fprintf(os.Stderr, "  %s: processed %d/%d\n", name, done, total)
		}
	}
}
