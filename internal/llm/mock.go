package llm

import (
	"context"
	"sync"
)

// MockProvider is a canned-response provider for tests and offline use.
// Responses are consumed in FIFO order; when the queue runs out a
// default explanation is returned.
type MockProvider struct {
	mu        sync.Mutex
	responses []mockResponse
	calls     []ExplainRequest
	model     string
}

type mockResponse struct {
	explanation *Explanation
	err         error
}

// NewMockProvider creates a mock provider with no queued responses.
func NewMockProvider() *MockProvider {
	return &MockProvider{model: "mock"}
}

// AddResponse queues a successful explanation.
func (m *MockProvider) AddResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{
		explanation: &Explanation{
			Text:       text,
			Model:      m.model,
			StopReason: "end",
		},
	})
}

// AddError queues an error response.
func (m *MockProvider) AddError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{err: err})
}

func (m *MockProvider) Explain(ctx context.Context, req ExplainRequest) (*Explanation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if len(m.responses) == 0 {
		return &Explanation{
			Text:       "This is a placeholder explanation.",
			Model:      m.model,
			StopReason: "end",
		}, nil
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.err != nil {
		return nil, resp.err
	}
	return resp.explanation, nil
}

func (m *MockProvider) ModelID() string {
	return m.model
}

// CallCount returns how many Explain calls have been made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded requests.
func (m *MockProvider) Calls() []ExplainRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ExplainRequest, len(m.calls))
	copy(out, m.calls)
	return out
}
