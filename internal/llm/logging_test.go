package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhisek/erdgrade/internal/store"
)

// recordingRepo captures appended events; other EventRepo methods are unused.
type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvent(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"elements":[]}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7, TotalTokens: 19},
	})
	repo := &recordingRepo{}
	var logs bytes.Buffer
	p := WithLogging(mock, "openrouter", repo, slog.New(slog.NewJSONHandler(&logs, nil)))

	ctx := WithRunID(WithPurpose(context.Background(), PurposeDetectERD), "run-7")
	img := Image{MIMEType: "image/png", Data: []byte("12345")}
	_, err := p.Generate(ctx, Request{
		System:   "You read ER diagrams.",
		Messages: []Message{UserMessage("Read this.", img)},
		Schema:   &Schema{Name: "erd-elements", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Purpose != "detect-erd" || e.RunID != "run-7" || e.Provider != "openrouter" {
		t.Errorf("unexpected event labels: %+v", e)
	}
	if !e.Success || e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Errorf("unexpected usage: %+v", e)
	}
	if e.ResponseBody != `{"elements":[]}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	if !strings.Contains(e.RequestBody, "[image: image/png, 5 bytes]") {
		t.Errorf("request body should summarize the image, got %q", e.RequestBody)
	}
	if strings.Contains(e.RequestBody, img.Base64()) {
		t.Error("request body must not contain image data")
	}
	if !strings.Contains(logs.String(), `"msg":"llm request"`) {
		t.Errorf("expected an info log line, got %s", logs.String())
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}})
	repo := &recordingRepo{}
	var logs bytes.Buffer
	p := WithLogging(mock, "openrouter", repo, slog.New(slog.NewJSONHandler(&logs, nil)))

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].Success {
		t.Fatalf("expected one failed event, got %+v", repo.events)
	}
	if !strings.Contains(repo.events[0].ErrorMessage, "slow down") {
		t.Errorf("error message = %q", repo.events[0].ErrorMessage)
	}
	if !strings.Contains(logs.String(), `"level":"WARN"`) {
		t.Errorf("expected a warning, got %s", logs.String())
	}
}

func TestLoggingProvider_RepoErrorDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(mock, "mock", repo, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("expected success despite repo error, got %v", err)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected ModelID to delegate, got %q", p.ModelID())
	}
}
