package model

import "time"

// Config holds the full runtime configuration.
type Config struct {
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Stages    StagesConfig    `yaml:"stages" mapstructure:"stages"`
	Inference InferenceConfig `yaml:"inference" mapstructure:"inference"`
	Toxicity  ToxicityConfig  `yaml:"toxicity" mapstructure:"toxicity"`
	Assistant AssistantConfig `yaml:"assistant" mapstructure:"assistant"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// PathsConfig locates every file the pipeline reads or writes.
// Each stage reads the previous stage's output path; the file is the
// interface between stages, so any single stage can be re-run alone.
type PathsConfig struct {
	RedditClean     string `yaml:"reddit_clean" mapstructure:"reddit_clean"`
	TwitterClean    string `yaml:"twitter_clean" mapstructure:"twitter_clean"`
	HackerNewsClean string `yaml:"hackernews_clean" mapstructure:"hackernews_clean"`

	Merged        string `yaml:"merged" mapstructure:"merged"`
	WithSentiment string `yaml:"with_sentiment" mapstructure:"with_sentiment"`
	WithEmotions  string `yaml:"with_emotions" mapstructure:"with_emotions"`
	WithTopics    string `yaml:"with_topics" mapstructure:"with_topics"`
	Final         string `yaml:"final" mapstructure:"final"`

	TopicInfo string `yaml:"topic_info" mapstructure:"topic_info"`
	Ledger    string `yaml:"ledger" mapstructure:"ledger"`
}

// StagesConfig controls batching and the truncation applied at the
// inference boundary. The stored text column is never truncated.
type StagesConfig struct {
	SentimentBatchSize int `yaml:"sentiment_batch_size" mapstructure:"sentiment_batch_size"`
	ClassifierMaxChars int `yaml:"classifier_max_chars" mapstructure:"classifier_max_chars"`
	ToxicityMaxChars   int `yaml:"toxicity_max_chars" mapstructure:"toxicity_max_chars"`
	TopicMinDocuments  int `yaml:"topic_min_documents" mapstructure:"topic_min_documents"`
}

// InferenceConfig points at the local model server that backs the
// sentiment, emotion, and topic stages.
type InferenceConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ToxicityConfig configures the Perspective API client. The API key is
// read from the environment, never from the config file.
type ToxicityConfig struct {
	APIKeyEnv         string        `yaml:"api_key_env" mapstructure:"api_key_env"`
	QuotaCap          int           `yaml:"quota_cap" mapstructure:"quota_cap"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// AssistantConfig configures the Q&A assistant's text-generation backend.
// Provider "" disables the external service; the assistant then answers
// from the derived summary statistics alone.
type AssistantConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"`
	Model     string        `yaml:"model" mapstructure:"model"`
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	APIKeyEnv string        `yaml:"api_key_env" mapstructure:"api_key_env"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// CacheConfig controls memoization of per-text inference results.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls operator-facing output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults. Paths mirror the layout
// the collectors already produce under data/.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			RedditClean:     "data/clean/ai_reddit_posts.csv",
			TwitterClean:    "data/clean/twitter_ai_data_clean.csv",
			HackerNewsClean: "data/clean/hackernews_ai_comments.csv",
			Merged:          "data/clean/all_clean.csv",
			WithSentiment:   "data/processed/with_sentiment.csv",
			WithEmotions:    "data/processed/with_emotions.csv",
			WithTopics:      "data/processed/with_topics.csv",
			Final:           "data/processed/final_ai_attitudes.csv",
			TopicInfo:       "data/processed/topic_info.csv",
			Ledger:          "data/processed/pipeline_ledger.json",
		},
		Stages: StagesConfig{
			SentimentBatchSize: 8,
			ClassifierMaxChars: 512,
			ToxicityMaxChars:   3000,
			TopicMinDocuments:  10,
		},
		Inference: InferenceConfig{
			BaseURL: "http://localhost:8090",
			Timeout: 60 * time.Second,
		},
		Toxicity: ToxicityConfig{
			APIKeyEnv:         "PERSPECTIVE_API_KEY",
			QuotaCap:          500,
			RequestsPerSecond: 1,
			Burst:             1,
			Timeout:           30 * time.Second,
		},
		Assistant: AssistantConfig{
			Provider:  "",
			Model:     "qwen-turbo",
			BaseURL:   "",
			APIKeyEnv: "DASHSCOPE_API_KEY",
			MaxTokens: 500,
			Timeout:   30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".aipulse-cache",
			TTL:     7 * 24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
