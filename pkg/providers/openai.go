package providers

import (
	"fmt"
	"strings"

	"github.com/dotsetgreg/minagent/pkg/config"
)

const (
	ProviderOpenAI = "openai"

	apiKeyEnvVar = "OPENAI_API_KEY"
)

// NewOpenAIProvider builds a chat-completions provider from cfg. The
// credential is captured by the provider's auth strategy and nowhere else.
func NewOpenAIProvider(cfg *config.Config) (LLMProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	apiKey := cfg.GetAPIKey()
	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	auth := NewBearerTokenAuth(NewStaticTokenSource(apiKey, apiKeyEnvVar))
	return newChatCompletionsProvider(
		ProviderOpenAI,
		cfg.GetAPIBase(),
		strings.TrimSpace(cfg.Agent.Model),
		cfg.Provider.HTTPTimeout,
		auth,
	)
}
