// Package assistant answers free-text questions about the enriched
// dataset, grounded in the derived summary statistics. An external
// text-generation service is optional; without one (or when it fails)
// a deterministic local answer is computed from the same statistics.
package assistant

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aipulse/aipulse/internal/model"
)

// Provider generates a free-text answer from a prompt.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// DashScope's OpenAI-compatible endpoint; the qwen models are served
// through the same chat-completions contract.
const dashScopeBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

// NewProvider creates a provider from configuration. Provider "" means
// disabled: the assistant then answers locally. A configured provider
// with a missing API key is a CredentialError, surfaced to the caller
// rather than silently degrading.
func NewProvider(cfg model.AssistantConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "":
		return nil, nil
	case "openai":
		return newChatProvider("openai", cfg, cfg.BaseURL)
	case "dashscope", "qwen":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = dashScopeBaseURL
		}
		return newChatProvider("dashscope", cfg, baseURL)
	default:
		return nil, fmt.Errorf("unknown assistant provider: %s (supported: openai, dashscope)", cfg.Provider)
	}
}

func newChatProvider(name string, cfg model.AssistantConfig, baseURL string) (Provider, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, &model.CredentialError{Service: name, EnvVar: cfg.APIKeyEnv}
	}
	return newOpenAIProvider(name, apiKey, baseURL, cfg)
}
