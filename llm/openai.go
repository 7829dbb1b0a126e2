package llm

import "context"

type openAIProvider struct {
	base client
}

// NewOpenAI creates a provider for the OpenAI API.
func NewOpenAI(cfg Config) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	return &openAIProvider{base: newClient(cfg)}
}

func (p *openAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return p.base.generate(ctx, prompt)
}

type customProvider struct {
	base client
}

// NewCustom creates a provider for any OpenAI-compatible endpoint
// (LM Studio, vLLM, OpenRouter, a corporate gateway).
func NewCustom(cfg Config) Provider {
	return &customProvider{base: newClient(cfg)}
}

func (p *customProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return p.base.generate(ctx, prompt)
}
