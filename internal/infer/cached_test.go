package infer

import (
	"context"
	"errors"
	"testing"

	"github.com/aipulse/aipulse/internal/cache"
)

type countingEmotionScorer struct {
	calls  int
	scores map[string]float64
	err    error
}

func (c *countingEmotionScorer) ScoreEmotions(_ context.Context, _ string) (map[string]float64, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.scores, nil
}

type countingToxicityScorer struct {
	calls int
	score *float64
	err   error
}

func (c *countingToxicityScorer) ScoreToxicity(_ context.Context, _ string) (*float64, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.score, nil
}

func TestCachedEmotionScorer_SingleBackendCall(t *testing.T) {
	backend := &countingEmotionScorer{scores: map[string]float64{"joy": 0.9, "anger": 0.1}}
	scorer := NewCachedEmotionScorer(backend, cache.NewMemoryCache(0, 0))

	for i := 0; i < 3; i++ {
		scores, err := scorer.ScoreEmotions(context.Background(), "great release")
		if err != nil {
			t.Fatalf("ScoreEmotions failed: %v", err)
		}
		if scores["joy"] != 0.9 {
			t.Errorf("unexpected joy score: %f", scores["joy"])
		}
	}
	if backend.calls != 1 {
		t.Errorf("expected 1 backend call, got %d", backend.calls)
	}
}

func TestCachedEmotionScorer_DistinctTexts(t *testing.T) {
	backend := &countingEmotionScorer{scores: map[string]float64{"neutral": 1}}
	scorer := NewCachedEmotionScorer(backend, cache.NewMemoryCache(0, 0))

	if _, err := scorer.ScoreEmotions(context.Background(), "first"); err != nil {
		t.Fatalf("ScoreEmotions failed: %v", err)
	}
	if _, err := scorer.ScoreEmotions(context.Background(), "second"); err != nil {
		t.Fatalf("ScoreEmotions failed: %v", err)
	}
	if backend.calls != 2 {
		t.Errorf("expected 2 backend calls, got %d", backend.calls)
	}
}

func TestCachedEmotionScorer_ErrorNotCached(t *testing.T) {
	backend := &countingEmotionScorer{err: errors.New("model not loaded")}
	scorer := NewCachedEmotionScorer(backend, cache.NewMemoryCache(0, 0))

	if _, err := scorer.ScoreEmotions(context.Background(), "text"); err == nil {
		t.Fatal("expected error from backend")
	}

	backend.err = nil
	backend.scores = map[string]float64{"joy": 0.5}
	if _, err := scorer.ScoreEmotions(context.Background(), "text"); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if backend.calls != 2 {
		t.Errorf("expected 2 backend calls, got %d", backend.calls)
	}
}

func TestCachedToxicityScorer_SingleBackendCall(t *testing.T) {
	v := 0.73
	backend := &countingToxicityScorer{score: &v}
	scorer := NewCachedToxicityScorer(backend, cache.NewMemoryCache(0, 0))

	for i := 0; i < 3; i++ {
		score, err := scorer.ScoreToxicity(context.Background(), "hostile comment")
		if err != nil {
			t.Fatalf("ScoreToxicity failed: %v", err)
		}
		if score == nil || *score != 0.73 {
			t.Errorf("unexpected score: %v", score)
		}
	}
	if backend.calls != 1 {
		t.Errorf("expected 1 backend call, got %d", backend.calls)
	}
}

func TestCachedToxicityScorer_NilScoreNotCached(t *testing.T) {
	backend := &countingToxicityScorer{score: nil}
	scorer := NewCachedToxicityScorer(backend, cache.NewMemoryCache(0, 0))

	score, err := scorer.ScoreToxicity(context.Background(), "text")
	if err != nil {
		t.Fatalf("ScoreToxicity failed: %v", err)
	}
	if score != nil {
		t.Errorf("expected nil score, got %v", score)
	}

	v := 0.2
	backend.score = &v
	score, err = scorer.ScoreToxicity(context.Background(), "text")
	if err != nil {
		t.Fatalf("ScoreToxicity failed: %v", err)
	}
	if score == nil || *score != 0.2 {
		t.Errorf("expected retried score 0.2, got %v", score)
	}
	if backend.calls != 2 {
		t.Errorf("expected 2 backend calls, got %d", backend.calls)
	}
}
