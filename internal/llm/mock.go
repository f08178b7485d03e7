package llm

import (
	"context"
	"sync"
)

// MockResult is a canned reply for the MockProvider.
type MockResult struct {
	Text         string
	InputTokens  int
	OutputTokens int
	Err          error
}

// MockProvider is a deterministic Provider for testing. It returns
// canned results in FIFO order and records every request it sees.
type MockProvider struct {
	mu      sync.Mutex
	results []MockResult
	Calls   []Request
}

// NewMockProvider creates a MockProvider with the given canned results.
func NewMockProvider(results ...MockResult) *MockProvider {
	return &MockProvider{results: results}
}

// Generate returns the next canned result, or UnavailableError when the
// queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.results) == 0 {
		return nil, &UnavailableError{}
	}

	next := m.results[0]
	m.results = m.results[1:]

	if next.Err != nil {
		return nil, next.Err
	}

	return &Result{
		Text:         next.Text,
		Model:        "mock",
		InputTokens:  next.InputTokens,
		OutputTokens: next.OutputTokens,
	}, nil
}

// AddResult appends a canned result to the queue.
func (m *MockProvider) AddResult(res MockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
}
