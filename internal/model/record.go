package model

import (
	"fmt"
	"strings"
)

// Platform identifies the social-media source of a record.
type Platform string

const (
	PlatformReddit     Platform = "Reddit"
	PlatformTwitter    Platform = "Twitter"
	PlatformHackerNews Platform = "Hacker News"
)

// Platforms returns all platforms in canonical order. Tie-breaking in
// aggregate queries follows this order.
func Platforms() []Platform {
	return []Platform{PlatformReddit, PlatformTwitter, PlatformHackerNews}
}

// ParsePlatform maps a raw platform string to its canonical value.
// Matching is case-insensitive and ignores surrounding whitespace.
// Unrecognized names are an error: aggregates must never accumulate
// into a silent "unknown" bucket.
func ParsePlatform(raw string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "reddit":
		return PlatformReddit, nil
	case "twitter", "x":
		return PlatformTwitter, nil
	case "hacker news", "hackernews", "hacker_news", "hn":
		return PlatformHackerNews, nil
	default:
		return "", fmt.Errorf("unrecognized platform %q", raw)
	}
}

// Column names shared across stages. Each stage appends its own columns
// and never removes or renames the ones it inherited.
const (
	ColPlatform       = "platform"
	ColText           = "text"
	ColSentimentLabel = "sentiment_label"
	ColSentimentScore = "sentiment_score"
	ColTopicID        = "topic_id"
	ColToxicity       = "toxicity"

	// EmotionPrefix prefixes one column per emotion category,
	// e.g. emotion_joy.
	EmotionPrefix = "emotion_"
)

// SentimentError is the label written for records whose sentiment batch
// failed. The paired score is 0.0; the label alone marks the failure.
const SentimentError = "ERROR"

// TopicOutlier is a valid topic id meaning "unclustered", not an error.
const TopicOutlier = -1
