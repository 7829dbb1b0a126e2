package llm

import (
	"context"
	"fmt"
	"time"
)

// Provider is the oracle interface: a black-box text-to-text function.
// All prompt construction and response parsing is the caller's problem;
// implementations only guarantee retry/backoff around transport failures.
type Provider interface {
	// Generate sends a prompt and returns the raw response text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config configures an oracle provider.
type Config struct {
	Provider    string        `json:"provider" yaml:"provider"` // gemini, ollama, openai, custom
	Model       string        `json:"model" yaml:"model"`
	BaseURL     string        `json:"base_url" yaml:"base_url"`
	APIKey      string        `json:"api_key" yaml:"api_key"`
	Temperature float64       `json:"temperature" yaml:"temperature"`
	MaxRetries  int           `json:"max_retries" yaml:"max_retries"`
	RetryDelay  time.Duration `json:"retry_delay" yaml:"retry_delay"`
}

// NewProvider creates an oracle provider from configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGemini(cfg), nil
	case "ollama":
		return NewOllama(cfg), nil
	case "openai":
		return NewOpenAI(cfg), nil
	case "custom":
		return NewCustom(cfg), nil
	case "":
		return nil, fmt.Errorf("llm provider not specified")
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
