// Package cache memoizes per-text inference results so that re-running
// a stage after partial failure does not re-score records the service
// already scored.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching serialized inference results.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds the cache key for one text scored by one stage. Keys are
// namespaced per stage so a sentiment result can never be replayed as
// a toxicity score.
func Key(stage, text string) string {
	hash := sha256.Sum256([]byte(text))
	return "aipulse:v1:" + stage + ":" + hex.EncodeToString(hash[:])
}
