package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted model reply. Text is the raw model output
// (fences and prose included); Content is shorthand for output that is
// already JSON. Text wins when both are set.
type MockResponse struct {
	Text    string
	Content json.RawMessage
	Usage   Usage
	Err     error
}

func (r MockResponse) raw() string {
	if r.Text != "" {
		return r.Text
	}
	return string(r.Content)
}

// MockProvider replays scripted replies in order and records every request.
// Replies go through the same cleaning and schema checks as real providers,
// so a reply that breaks a strict schema fails with ErrInvalidResponse.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockResponse
	Calls   []Request
}

// NewMockProvider creates a MockProvider that answers with replies.
func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

// Generate returns the next scripted reply. An exhausted script answers
// with ErrProviderUnavailable, as an unreachable gateway would.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]

	if reply.Err != nil {
		return nil, reply.Err
	}

	content, err := conformContent(req.Schema, reply.raw())
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:    content,
		Usage:      reply.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(reply MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, reply)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// SentImages returns every image attached to the user messages of call n.
func (m *MockProvider) SentImages(n int) []Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 0 || n >= len(m.Calls) {
		return nil
	}
	var imgs []Image
	for _, msg := range m.Calls[n].Messages {
		imgs = append(imgs, msg.Images...)
	}
	return imgs
}
