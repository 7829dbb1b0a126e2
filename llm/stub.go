package llm

import (
	"context"
	"sync"
)

// Stub is a canned-response Provider for tests. Responses are returned in
// order; the last one repeats once the slice is exhausted. When Err is
// set every call fails with it.
type Stub struct {
	Responses []string
	Err       error

	mu    sync.Mutex
	calls int
}

func (s *Stub) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Responses) == 0 {
		return "", nil
	}
	i := s.calls - 1
	if i >= len(s.Responses) {
		i = len(s.Responses) - 1
	}
	return s.Responses[i], nil
}

// Calls reports how many times Generate was invoked.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
