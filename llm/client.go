package llm

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"
)

// Client call parameters.
const (
	requestTimeout  = 30 * time.Second
	maxAnswerTokens = 1500
	tempCasual      = 0.7
	tempDefault     = 0.3
)

// User-facing messages for the failure modes. The chat transcript must
// always show something, so failures render to these instead of errors.
const (
	msgTimeout         = "Request to AI service timed out. Please try again later."
	msgInvalidResponse = "Received an invalid response from the AI service."
	msgConnectPrefix   = "Failed to connect to AI service: "
)

// Client performs the final answer-generation call. Its Generate method
// never fails: every failure mode is pre-rendered into a displayable
// string, which makes the "always produces an answer" contract explicit
// in the type rather than hidden behind a suppressed error.
type Client struct {
	provider Provider
	model    string
	timeout  time.Duration
}

// NewClient wraps a provider for answer generation with the given model.
func NewClient(p Provider, model string) *Client {
	return &Client{provider: p, model: model, timeout: requestTimeout}
}

// Generate sends the prompt as a single system message and returns the
// generated text, or a human-readable placeholder on failure. Temperature
// is raised for casual-toned prompts.
func (c *Client) Generate(ctx context.Context, promptText string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temperature := tempDefault
	if strings.Contains(strings.ToLower(promptText), "casual") {
		temperature = tempCasual
	}

	resp, err := c.provider.Chat(ctx, ChatRequest{
		Model:       c.model,
		Messages:    []Message{{Role: "system", Content: promptText}},
		Temperature: temperature,
		MaxTokens:   maxAnswerTokens,
	})
	if err != nil {
		switch {
		case isTimeout(err):
			slog.Error("llm: request timed out", "model", c.model)
			return msgTimeout
		case errors.Is(err, ErrInvalidResponse):
			slog.Error("llm: invalid response", "model", c.model, "error", err)
			return msgInvalidResponse
		default:
			slog.Error("llm: request failed", "model", c.model, "error", err)
			return msgConnectPrefix + err.Error()
		}
	}

	if resp == nil || resp.Content == "" {
		slog.Error("llm: empty completion", "model", c.model)
		return msgInvalidResponse
	}
	return resp.Content
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
