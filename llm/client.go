package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
)

// client is the shared base for all OpenAI-compatible providers. It wraps
// the chat-completions endpoint as a plain prompt-in/text-out call with
// bounded retry: the wait before attempt n+1 is RetryDelay × n, and the
// last error surfaces to the caller once MaxRetries attempts are spent.
type client struct {
	cfg        Config
	http       *http.Client
	pathPrefix string // API path prefix, defaults to "/v1"
}

func newClient(cfg Config) client {
	return newClientPrefix(cfg, "/v1")
}

func newClientPrefix(cfg Config, prefix string) client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	return client{
		cfg:        cfg,
		pathPrefix: prefix,
		http: &http.Client{
			// Generous for local providers that load models on first
			// request, short enough to avoid multi-minute hangs.
			Timeout: 120 * time.Second,
		},
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *client) generate(ctx context.Context, prompt string) (string, error) {
	body := chatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
	}

	respBody, err := c.doPost(ctx, c.pathPrefix+"/chat/completions", body)
	if err != nil {
		return "", err
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// retryableStatusCode returns true for HTTP status codes that warrant a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable ||
		code == http.StatusGatewayTimeout
}

func (c *client) doPost(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := c.cfg.BaseURL + path

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			delay := c.cfg.RetryDelay * time.Duration(attempt-1)
			slog.Warn("llm: retrying request",
				"url", url,
				"attempt", attempt,
				"delay", delay,
				"error", lastErr,
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("request to %s failed: %w", url, err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response body: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return respBody, nil
		}

		lastErr = fmt.Errorf("oracle API error %d: %s", resp.StatusCode, string(respBody))
		if !retryableStatusCode(resp.StatusCode) {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
