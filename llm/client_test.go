package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func completionJSON(content string) string {
	return `{"choices":[{"message":{"content":"` + content + `"},"finish_reason":"stop"}]}`
}

func TestGenerateRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(completionJSON("ok")))
	}))
	defer srv.Close()

	p := NewCustom(Config{
		Provider:   "custom",
		Model:      "test-model",
		BaseURL:    srv.URL,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})

	got, err := p.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "ok" {
		t.Errorf("Generate = %q, want %q", got, "ok")
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server saw %d calls, want 3", n)
	}
}

func TestGenerateExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewCustom(Config{
		Provider:   "custom",
		Model:      "test-model",
		BaseURL:    srv.URL,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})

	if _, err := p.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("Generate: want error after exhausting retries")
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("server saw %d calls, want 2", n)
	}
}

func TestGenerateNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewCustom(Config{
		Provider:   "custom",
		Model:      "test-model",
		BaseURL:    srv.URL,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})

	if _, err := p.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("Generate: want error on 400")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server saw %d calls, want 1 (400 is not retryable)", n)
	}
}

func TestNewProvider(t *testing.T) {
	for _, name := range []string{"gemini", "ollama", "openai", "custom"} {
		if _, err := NewProvider(Config{Provider: name, Model: "m"}); err != nil {
			t.Errorf("NewProvider(%q): %v", name, err)
		}
	}
	if _, err := NewProvider(Config{}); err == nil {
		t.Error("NewProvider with empty provider: want error")
	}
	if _, err := NewProvider(Config{Provider: "bogus"}); err == nil {
		t.Error("NewProvider with unknown provider: want error")
	}
}
