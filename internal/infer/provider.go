// Package infer holds the clients for the black-box inference services
// behind the enrichment stages. Each service has a stable contract
// (text in, score/label out); model internals live elsewhere.
package infer

import "context"

// SentimentResult is one classifier prediction for one text.
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentClassifier scores a batch of texts and returns exactly one
// result per input, in order.
type SentimentClassifier interface {
	ClassifyBatch(ctx context.Context, texts []string) ([]SentimentResult, error)
}

// EmotionCategories is the fixed category set the emotion model emits.
// Every call covers all categories; missing ones are zero-filled.
var EmotionCategories = []string{
	"anger", "disgust", "fear", "joy", "neutral", "sadness", "surprise",
}

// EmotionScorer scores a single text across all emotion categories,
// each intensity in [0,1].
type EmotionScorer interface {
	ScoreEmotions(ctx context.Context, text string) (map[string]float64, error)
}

// TopicInfo describes one discovered topic cluster.
type TopicInfo struct {
	TopicID  int      `json:"topic_id"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
	Count    int      `json:"count"`
}

// TopicResult is the output of fitting the topic model over a corpus.
type TopicResult struct {
	// IDs assigns a cluster id per document, same length and order as
	// the input corpus. -1 marks an unclustered outlier.
	IDs []int `json:"topic_ids"`
	// Topics is the model-level topic table (id, label, keywords).
	Topics []TopicInfo `json:"topics"`
}

// TopicModeler clusters an entire corpus at once. It needs the full
// text column in one call, not per-record streaming.
type TopicModeler interface {
	FitTopics(ctx context.Context, texts []string) (*TopicResult, error)
}

// ToxicityScorer scores a single text in [0,1]. A nil score with a nil
// error means the service declined to score this text ("not scored"),
// which stays distinguishable from a true zero.
type ToxicityScorer interface {
	ScoreToxicity(ctx context.Context, text string) (*float64, error)
}
