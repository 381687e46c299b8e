package llm

import "context"

// NewTogether creates a provider for the Together AI hosted API.
func NewTogether(cfg Config) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.together.xyz"
	}
	return &togetherProvider{base: newOpenAICompatClient(cfg)}
}

type togetherProvider struct {
	base openAICompatClient
}

func (p *togetherProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return p.base.chat(ctx, req)
}
