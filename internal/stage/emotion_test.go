package stage

import (
	"context"
	"errors"
	"testing"

	"github.com/aipulse/aipulse/internal/infer"
	"github.com/aipulse/aipulse/internal/model"
)

type fakeEmotionScorer struct {
	failOn map[string]bool
}

func (f *fakeEmotionScorer) ScoreEmotions(ctx context.Context, text string) (map[string]float64, error) {
	if f.failOn[text] {
		return nil, errors.New("scorer down")
	}
	scores := make(map[string]float64, len(infer.EmotionCategories))
	for _, cat := range infer.EmotionCategories {
		scores[cat] = 0
	}
	scores["joy"] = 0.8
	return scores, nil
}

func TestEmotion_AllCategoriesAppended(t *testing.T) {
	tbl := textTable("happy text")
	e := NewEmotion(&fakeEmotionScorer{}, 0, nil)
	if err := e.Enrich(context.Background(), tbl); err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	for _, cat := range infer.EmotionCategories {
		col := model.EmotionPrefix + cat
		if !tbl.HasColumn(col) {
			t.Errorf("missing column %q", col)
		}
	}
	joy, _ := tbl.Cell(0, model.EmotionPrefix+"joy")
	if joy != "0.8" {
		t.Errorf("expected joy 0.8, got %q", joy)
	}
	// A genuine zero intensity is written as 0, not null.
	anger, _ := tbl.Cell(0, model.EmotionPrefix+"anger")
	if anger != "0" {
		t.Errorf("expected real zero, got %q", anger)
	}
}

func TestEmotion_FailureIsNullNotZero(t *testing.T) {
	tbl := textTable("fine", "broken")
	e := NewEmotion(&fakeEmotionScorer{failOn: map[string]bool{"broken": true}}, 0, nil)
	if err := e.Enrich(context.Background(), tbl); err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
	// The unscored record reads as null, distinguishable from a true 0.
	v, _ := tbl.Cell(1, model.EmotionPrefix+"joy")
	if v != "" {
		t.Errorf("failed record should be null, got %q", v)
	}
	v, _ = tbl.Cell(0, model.EmotionPrefix+"joy")
	if v != "0.8" {
		t.Errorf("scored record should keep its value, got %q", v)
	}
}
