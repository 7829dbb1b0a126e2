package llm

import "context"

// ollamaProvider implements Provider for Ollama's OpenAI-compatible API.
type ollamaProvider struct {
	base client
}

// NewOllama creates a provider for a local Ollama server.
func NewOllama(cfg Config) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	return &ollamaProvider{base: newClient(cfg)}
}

func (p *ollamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return p.base.generate(ctx, prompt)
}
