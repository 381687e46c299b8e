// Package llm talks to chat-completion backends and wraps them behind
// the pipeline's "always returns a displayable answer" client.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the interface for chat-completion backends.
type Provider interface {
	// Chat sends a chat completion request.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest is a chat completion request.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the response from a chat completion.
type ChatResponse struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	FinishReason string `json:"finish_reason"`
}

// ErrInvalidResponse marks a backend reply whose shape could not be
// interpreted as a chat completion.
var ErrInvalidResponse = errors.New("llm: invalid response")

// Config configures an LLM provider.
type Config struct {
	Provider string `json:"provider"` // together, ollama, custom
	Model    string `json:"model"`
	BaseURL  string `json:"base_url"`
	APIKey   string `json:"api_key"`
}

// NewProvider creates an LLM provider from configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "together":
		return NewTogether(cfg), nil
	case "ollama":
		return NewOllama(cfg), nil
	case "custom":
		return NewOpenAICompat(cfg), nil
	case "":
		return nil, fmt.Errorf("llm provider not specified")
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
