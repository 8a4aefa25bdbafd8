package providers

import (
	"context"
	"errors"
)

var (
	// ErrNoChoices is returned when a completion response carries no choices.
	ErrNoChoices = errors.New("completion response contained no choices")

	// ErrMissingCredential is returned at construction when no API key is
	// available from the environment or the command line.
	ErrMissingCredential = errors.New("OPENAI_API_KEY not set; export it or pass --api-key")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type LLMResponse struct {
	Content      string     `json:"content"`
	FinishReason string     `json:"finish_reason"`
	Usage        *UsageInfo `json:"usage,omitempty"`
}

// LLMProvider sends one chat request and returns the first choice.
type LLMProvider interface {
	Chat(ctx context.Context, messages []Message, model string, options map[string]interface{}) (*LLMResponse, error)
	GetDefaultModel() string
}
