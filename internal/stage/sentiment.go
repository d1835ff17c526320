package stage

import (
	"context"
	"strconv"

	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/infer"
	"github.com/aipulse/aipulse/internal/model"
)

// Sentiment annotates each record with a sentiment label and a
// confidence score. Batches that fail get the ERROR/0.0 sentinel pair;
// the label alone marks the failure, so 0.0 stays a safe neutral score.
type Sentiment struct {
	classifier infer.SentimentClassifier
	runner     Runner
}

// NewSentiment creates the sentiment stage.
func NewSentiment(classifier infer.SentimentClassifier, batchSize, maxChars int, progress Progress) *Sentiment {
	return &Sentiment{
		classifier: classifier,
		runner: Runner{
			BatchSize: batchSize,
			MaxChars:  maxChars,
			Progress:  progress,
		},
	}
}

// Name implements Stage.
func (s *Sentiment) Name() string { return "sentiment" }

// Enrich implements Stage.
func (s *Sentiment) Enrich(ctx context.Context, t *dataset.Table) error {
	return s.runner.Run(ctx, s.Name(), t, (*sentimentAnnotator)(s))
}

type sentimentAnnotator Sentiment

func (a *sentimentAnnotator) Columns() []string {
	return []string{model.ColSentimentLabel, model.ColSentimentScore}
}

func (a *sentimentAnnotator) Annotate(ctx context.Context, texts []string) ([][]string, error) {
	results, err := a.classifier.ClassifyBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(results))
	for i, res := range results {
		rows[i] = []string{res.Label, formatScore(res.Score)}
	}
	return rows, nil
}

func (a *sentimentAnnotator) Sentinel() []string {
	return []string{model.SentimentError, "0.0"}
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
