package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one scripted reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records each request.
// It backs the tests and, with a repeating sample batch, the "mock"
// provider.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockResponse
	repeat  *MockResponse
	Calls   []Request
}

// sampleBatch is the offline trivia batch served by the "mock" provider.
const sampleBatch = `{"questions":[
  {"question":"Which planet is known as the Red Planet?","category":"Science","correct_answer":"Mars","incorrect_answers":["Venus","Jupiter","Mercury"]},
  {"question":"Who painted the Mona Lisa?","category":"Art","correct_answer":"Leonardo da Vinci","incorrect_answers":["Michelangelo","Raphael","Donatello"]},
  {"question":"What is the capital of Canada?","category":"Geography","correct_answer":"Ottawa","incorrect_answers":["Toronto","Montreal","Vancouver"]},
  {"question":"How many sides does a hexagon have?","category":"Mathematics","correct_answer":"6","incorrect_answers":["5","7","8"]},
  {"question":"Which element has the chemical symbol O?","category":"Science","correct_answer":"Oxygen","incorrect_answers":["Gold","Osmium","Oganesson"]}
]}`

// NewSampleProvider returns a mock that answers every request with a
// fixed five-question trivia batch.
func NewSampleProvider() *MockProvider {
	return NewMockProvider().Repeat(MockResponse{Content: json.RawMessage(sampleBatch)})
}

func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

// Repeat makes m answer with r once the script is exhausted.
func (m *MockProvider) Repeat(r MockResponse) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.repeat = &r
	return m
}

// Generate pops the next reply. Scripted content still goes through schema
// validation. An exhausted script without a repeat reply reports
// KindUnavailable.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	var next MockResponse
	switch {
	case len(m.replies) > 0:
		next = m.replies[0]
		m.replies = m.replies[1:]
	case m.repeat != nil:
		next = *m.repeat
	default:
		return nil, &Error{Kind: KindUnavailable, Provider: "mock", Err: errors.New("no scripted reply left")}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return finish("mock", req, next.Content, StopEnd, next.Usage, "mock")
}

func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
