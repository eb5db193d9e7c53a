package predict

import (
	"context"
	"sync"

	"github.com/abhisek/cropcast/internal/form"
)

// MockResponse is a canned response for the MockPredictor.
type MockResponse struct {
	Predictions []Prediction
	Err         error
}

// MockPredictor is a deterministic Predictor for testing.
// It returns canned responses in FIFO order and records all requests.
type MockPredictor struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []form.Request

	// Block, when set, is waited on before answering so tests can observe
	// the in-flight state.
	Block chan struct{}
}

// NewMockPredictor creates a MockPredictor with the given canned responses.
func NewMockPredictor(responses ...MockResponse) *MockPredictor {
	return &MockPredictor{responses: responses}
}

// Predict returns the next canned response, or a NetworkError if the queue
// is empty.
func (m *MockPredictor) Predict(ctx context.Context, req form.Request) ([]Prediction, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, &NetworkError{Err: ctx.Err()}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.responses) == 0 {
		return nil, &NetworkError{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Predictions, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockPredictor) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Predict calls made.
func (m *MockPredictor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
