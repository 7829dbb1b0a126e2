package llm

import "context"

// geminiProvider implements Provider for Google's Gemini API via the
// OpenAI-compatible endpoint, which uses a different path prefix than
// standard OpenAI providers (no /v1).
//
// API key: set via config or the GEMINI_API_KEY env var picked up by the CLI.
type geminiProvider struct {
	base client
}

// NewGemini creates a provider for Google Gemini.
func NewGemini(cfg Config) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	return &geminiProvider{base: newClientPrefix(cfg, "")}
}

func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return p.base.generate(ctx, prompt)
}
