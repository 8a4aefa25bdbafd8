package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/dotsetgreg/minagent/pkg/config"
	"github.com/dotsetgreg/minagent/pkg/providers"
)

// ErrMissingCredential is returned at construction when no API key is
// available from the environment or the command line.
var ErrMissingCredential = providers.ErrMissingCredential

// Completer turns a prompt into generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompletionClient wraps the one outbound call the agent makes. Decoding
// settings are fixed at construction.
type CompletionClient struct {
	provider    providers.LLMProvider
	model       string
	temperature float64
	maxTokens   int
}

func NewCompletionClient(cfg *config.Config) (*CompletionClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	provider, err := providers.NewOpenAIProvider(cfg)
	if err != nil {
		return nil, err
	}
	return newCompletionClient(provider, cfg), nil
}

func newCompletionClient(provider providers.LLMProvider, cfg *config.Config) *CompletionClient {
	maxTokens := cfg.Agent.MaxTokens
	if maxTokens <= 0 {
		maxTokens = config.DefaultMaxTokens
	}
	return &CompletionClient{
		provider:    provider,
		model:       strings.TrimSpace(cfg.Agent.Model),
		temperature: cfg.Agent.Temperature,
		maxTokens:   maxTokens,
	}
}

func (c *CompletionClient) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the trimmed
// text of the first choice. Failures are returned as-is; there is no retry.
func (c *CompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []providers.Message{{Role: "user", Content: prompt}}
	resp, err := c.provider.Chat(ctx, messages, c.model, map[string]interface{}{
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}
