package llm

import "context"

// NewOllama creates a provider for a local Ollama server, using its
// OpenAI-compatible endpoint.
func NewOllama(cfg Config) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	return &ollamaProvider{base: newOpenAICompatClient(cfg)}
}

type ollamaProvider struct {
	base openAICompatClient
}

func (p *ollamaProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return p.base.chat(ctx, req)
}
