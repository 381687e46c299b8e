package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const answerJSON = `{"model":"test-model","choices":[{"message":{"content":"The sky is blue."},"finish_reason":"stop"}]}`

// newTestClient points a custom provider at the given test server.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	p := NewOpenAICompat(Config{Provider: "custom", Model: "test-model", BaseURL: srv.URL})
	return NewClient(p, "test-model")
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(answerJSON))
	}))
	defer srv.Close()

	p := NewOpenAICompat(Config{Model: "test-model", BaseURL: srv.URL, APIKey: "sk-test"})
	c := NewClient(p, "test-model")

	got := c.Generate(context.Background(), "What color is the sky?")
	if got != "The sky is blue." {
		t.Errorf("Generate = %q", got)
	}
	if gotPath != "/v1/chat/completions" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("authorization header = %q", gotAuth)
	}
}

func TestGenerateRequestShape(t *testing.T) {
	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(answerJSON))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	c.Generate(context.Background(), "summarize the paper")

	if got.Model != "test-model" {
		t.Errorf("model = %q", got.Model)
	}
	if got.MaxTokens != 1500 {
		t.Errorf("max_tokens = %d, want 1500", got.MaxTokens)
	}
	if got.Temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3", got.Temperature)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v, want a single system message", got.Messages)
	}
	if got.Messages[0].Content != "summarize the paper" {
		t.Errorf("message content = %q", got.Messages[0].Content)
	}
}

func TestGenerateCasualTemperature(t *testing.T) {
	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(answerJSON))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	c.Generate(context.Background(), "Keep a casual tone and say hi")

	if got.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7 for casual prompts", got.Temperature)
	}
}

func TestGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	c.timeout = 50 * time.Millisecond

	got := c.Generate(context.Background(), "slow question")
	if got != "Request to AI service timed out. Please try again later." {
		t.Errorf("Generate on timeout = %q", got)
	}
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	got := c.Generate(context.Background(), "q")
	if !strings.HasPrefix(got, "Failed to connect to AI service: ") {
		t.Errorf("Generate on 500 = %q", got)
	}
	if !strings.Contains(got, "500") {
		t.Errorf("message should carry the status code, got %q", got)
	}
}

func TestGenerateInvalidResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway error</html>"},
		{"no choices", `{"model":"m","choices":[]}`},
		{"empty content", `{"model":"m","choices":[{"message":{"content":""},"finish_reason":"stop"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv)
			got := c.Generate(context.Background(), "q")
			if got != "Received an invalid response from the AI service." {
				t.Errorf("Generate = %q", got)
			}
		})
	}
}

func TestGenerateConnectionRefused(t *testing.T) {
	// Reserve a port, then close it so the dial is refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewOpenAICompat(Config{Model: "m", BaseURL: url})
	c := NewClient(p, "m")

	got := c.Generate(context.Background(), "q")
	if !strings.HasPrefix(got, "Failed to connect to AI service: ") {
		t.Errorf("Generate on refused connection = %q", got)
	}
}
