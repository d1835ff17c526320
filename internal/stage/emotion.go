package stage

import (
	"context"

	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/infer"
	"github.com/aipulse/aipulse/internal/model"
)

// Emotion annotates each record with one intensity column per emotion
// category. Records the scorer fails on get empty (null) cells, never
// 0.0: a true zero means "no detected intensity", a null means "not
// scored", and the two must stay distinguishable.
type Emotion struct {
	scorer infer.EmotionScorer
	runner Runner
}

// NewEmotion creates the emotion stage. The scorer works one record at
// a time, so failures are per item by construction.
func NewEmotion(scorer infer.EmotionScorer, maxChars int, progress Progress) *Emotion {
	return &Emotion{
		scorer: scorer,
		runner: Runner{
			BatchSize: 1,
			MaxChars:  maxChars,
			Progress:  progress,
		},
	}
}

// Name implements Stage.
func (e *Emotion) Name() string { return "emotions" }

// Enrich implements Stage.
func (e *Emotion) Enrich(ctx context.Context, t *dataset.Table) error {
	return e.runner.Run(ctx, e.Name(), t, (*emotionAnnotator)(e))
}

type emotionAnnotator Emotion

func (a *emotionAnnotator) Columns() []string {
	cols := make([]string, len(infer.EmotionCategories))
	for i, cat := range infer.EmotionCategories {
		cols[i] = model.EmotionPrefix + cat
	}
	return cols
}

func (a *emotionAnnotator) Annotate(ctx context.Context, texts []string) ([][]string, error) {
	rows := make([][]string, len(texts))
	for i, text := range texts {
		scores, err := a.scorer.ScoreEmotions(ctx, text)
		if err != nil {
			return nil, err
		}
		cells := make([]string, len(infer.EmotionCategories))
		for j, cat := range infer.EmotionCategories {
			cells[j] = formatScore(scores[cat])
		}
		rows[i] = cells
	}
	return rows, nil
}

func (a *emotionAnnotator) Sentinel() []string {
	return make([]string, len(infer.EmotionCategories))
}
