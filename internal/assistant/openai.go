package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aipulse/aipulse/internal/model"
	"github.com/sashabaranov/go-openai"
)

// openAIProvider speaks the chat-completions contract against OpenAI
// or any compatible endpoint (DashScope compatible mode included).
type openAIProvider struct {
	name      string
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

func newOpenAIProvider(name, apiKey, baseURL string, cfg model.AssistantConfig) (*openAIProvider, error) {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &openAIProvider{
		name:      name,
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: maxTokens,
		timeout:   timeout,
	}, nil
}

// Name returns the provider name.
func (p *openAIProvider) Name() string { return p.name }

// Generate sends the prompt and returns the first choice's content.
// An empty choice list is an explicit error, not a shape to probe.
func (p *openAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a data analyst assistant for a project analyzing public attitudes toward AI. Answer concisely in 2-4 sentences, using numbers where possible.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   p.maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("%s API error: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from %s", p.name)
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("empty response from %s", p.name)
	}
	return answer, nil
}
