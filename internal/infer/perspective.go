package infer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/aipulse/aipulse/internal/model"
	"golang.org/x/time/rate"
)

const perspectiveBaseURL = "https://commentanalyzer.googleapis.com/v1alpha1"

// Perspective scores toxicity through the Perspective API. The service
// is quota limited, so every call waits on a client-side rate limiter;
// quota capping across a whole table is the toxicity stage's job.
type Perspective struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewPerspective creates a client from configuration, reading the API
// key from the configured environment variable. A missing key is a
// CredentialError: the stage recovers with null scores, but the
// condition must be surfaced, not swallowed.
func NewPerspective(cfg model.ToxicityConfig) (*Perspective, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, &model.CredentialError{Service: "Perspective API", EnvVar: cfg.APIKeyEnv}
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Perspective{
		apiKey:     apiKey,
		baseURL:    perspectiveBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}, nil
}

// Perspective API structures (comments:analyze).
type perspectiveRequest struct {
	Comment             perspectiveComment        `json:"comment"`
	RequestedAttributes map[string]map[string]any `json:"requestedAttributes"`
}

type perspectiveComment struct {
	Text string `json:"text"`
}

type perspectiveResponse struct {
	AttributeScores map[string]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

// ScoreToxicity scores one text in [0,1], waiting for rate-limit
// clearance first.
func (p *Perspective) ScoreToxicity(ctx context.Context, text string) (*float64, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(perspectiveRequest{
		Comment:             perspectiveComment{Text: text},
		RequestedAttributes: map[string]map[string]any{"TOXICITY": {}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/comments:analyze?key=%s", p.baseURL, url.QueryEscape(p.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call perspective: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("perspective returned %d: %s", resp.StatusCode, string(data))
	}

	var parsed perspectiveResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	attr, ok := parsed.AttributeScores["TOXICITY"]
	if !ok {
		return nil, fmt.Errorf("response missing TOXICITY attribute")
	}
	score := attr.SummaryScore.Value
	return &score, nil
}
