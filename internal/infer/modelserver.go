package infer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aipulse/aipulse/internal/model"
)

// ModelServer is an HTTP client for the local inference server hosting
// the sentiment, emotion, and topic models. The server exposes plain
// JSON endpoints; this client never retries. A failed call becomes a
// per-record sentinel at the stage layer.
type ModelServer struct {
	baseURL    string
	httpClient *http.Client
	minDocs    int
}

// NewModelServer creates a client for the given base URL.
func NewModelServer(cfg model.InferenceConfig, minTopicDocs int) *ModelServer {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &ModelServer{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		minDocs:    minTopicDocs,
	}
}

type sentimentRequest struct {
	Texts []string `json:"texts"`
}

type sentimentResponse struct {
	Results []SentimentResult `json:"results"`
}

type emotionRequest struct {
	Text string `json:"text"`
}

type emotionResponse struct {
	Scores map[string]float64 `json:"scores"`
}

type topicRequest struct {
	Texts []string `json:"texts"`
}

type serverError struct {
	Error string `json:"error"`
}

// ClassifyBatch sends a batch of texts to the sentiment endpoint and
// returns one (label, confidence) pair per text.
func (m *ModelServer) ClassifyBatch(ctx context.Context, texts []string) ([]SentimentResult, error) {
	var resp sentimentResponse
	if err := m.post(ctx, "/v1/sentiment", sentimentRequest{Texts: texts}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) != len(texts) {
		return nil, fmt.Errorf("sentiment: got %d results for %d texts", len(resp.Results), len(texts))
	}
	return resp.Results, nil
}

// ScoreEmotions scores one text across the full category set. Missing
// categories are zero-filled so every call covers all of them.
func (m *ModelServer) ScoreEmotions(ctx context.Context, text string) (map[string]float64, error) {
	var resp emotionResponse
	if err := m.post(ctx, "/v1/emotions", emotionRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	scores := make(map[string]float64, len(EmotionCategories))
	for _, cat := range EmotionCategories {
		scores[cat] = resp.Scores[cat]
	}
	return scores, nil
}

// FitTopics fits the topic model over the whole corpus in one call.
// A corpus below the model's minimum is rejected up front.
func (m *ModelServer) FitTopics(ctx context.Context, texts []string) (*TopicResult, error) {
	if len(texts) < m.minDocs {
		return nil, &model.InsufficientDataError{Need: m.minDocs, Got: len(texts)}
	}
	var resp TopicResult
	if err := m.post(ctx, "/v1/topics", topicRequest{Texts: texts}, &resp); err != nil {
		return nil, err
	}
	if len(resp.IDs) != len(texts) {
		return nil, fmt.Errorf("topics: got %d assignments for %d texts", len(resp.IDs), len(texts))
	}
	return &resp, nil
}

func (m *ModelServer) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		var srvErr serverError
		if json.Unmarshal(data, &srvErr) == nil && srvErr.Error != "" {
			return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, srvErr.Error)
		}
		return fmt.Errorf("%s returned %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
