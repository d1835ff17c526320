package infer

import (
	"context"
	"encoding/json"

	"github.com/aipulse/aipulse/internal/cache"
)

// CachedEmotionScorer memoizes per-text emotion scores. Only successful
// results are cached; failures are retried on the next run.
type CachedEmotionScorer struct {
	backend EmotionScorer
	store   cache.Cache
}

// NewCachedEmotionScorer wraps a scorer with the given cache.
func NewCachedEmotionScorer(backend EmotionScorer, store cache.Cache) *CachedEmotionScorer {
	return &CachedEmotionScorer{backend: backend, store: store}
}

// ScoreEmotions checks the cache before calling the backend.
func (c *CachedEmotionScorer) ScoreEmotions(ctx context.Context, text string) (map[string]float64, error) {
	key := cache.Key("emotions", text)
	if data, found := c.store.Get(key); found {
		var scores map[string]float64
		if json.Unmarshal(data, &scores) == nil {
			return scores, nil
		}
	}

	scores, err := c.backend.ScoreEmotions(ctx, text)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(scores); err == nil {
		_ = c.store.Set(key, data, 0)
	}
	return scores, nil
}

// CachedToxicityScorer memoizes per-text toxicity scores, saving quota
// when a stage is re-run after partial failure.
type CachedToxicityScorer struct {
	backend ToxicityScorer
	store   cache.Cache
}

// NewCachedToxicityScorer wraps a scorer with the given cache.
func NewCachedToxicityScorer(backend ToxicityScorer, store cache.Cache) *CachedToxicityScorer {
	return &CachedToxicityScorer{backend: backend, store: store}
}

// ScoreToxicity checks the cache before calling the backend. A cached
// nil ("not scored") is never stored, so declined texts can be retried.
func (c *CachedToxicityScorer) ScoreToxicity(ctx context.Context, text string) (*float64, error) {
	key := cache.Key("toxicity", text)
	if data, found := c.store.Get(key); found {
		var score float64
		if json.Unmarshal(data, &score) == nil {
			return &score, nil
		}
	}

	score, err := c.backend.ScoreToxicity(ctx, text)
	if err != nil || score == nil {
		return score, err
	}
	if data, err := json.Marshal(*score); err == nil {
		_ = c.store.Set(key, data, 0)
	}
	return score, nil
}
