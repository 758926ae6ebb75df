package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider. It returns canned responses in
// FIFO order and records all requests. Once the queue is empty it answers
// with Fallback, or fails when Fallback is nil.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// Fallback builds a reply when no canned response is queued.
	Fallback func(Request) string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewOfflineProvider returns the provider selected by
// AILEARN_LLM_PROVIDER=mock: it answers every question with a fixed note
// quoting the question, so the backend can run without an API key.
func NewOfflineProvider() *MockProvider {
	m := NewMockProvider()
	m.Fallback = OfflineReply
	return m
}

// OfflineReply is the answer given by NewOfflineProvider.
func OfflineReply(req Request) string {
	q := lastUserText(req.Messages)
	if q == "" {
		return "The study assistant is running in offline mode."
	}
	return "The study assistant is running in offline mode. You asked: " + q
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		if m.Fallback == nil {
			return nil, &ErrProviderUnavailable{}
		}
		return &Response{Content: m.Fallback(req), Model: "mock", StopReason: StopEnd}, nil
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Text,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
