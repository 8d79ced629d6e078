package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// A named shared-cache DB keeps pooled connections on the same data
	// while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func seedEvents(t *testing.T, repo EventRepo) {
	t.Helper()
	ctx := context.Background()
	events := []LLMRequestEventData{
		{RunID: "run-1", Provider: "openrouter", Model: "google/gemini-2.5-flash", Purpose: "detect-erd",
			InputTokens: 1200, OutputTokens: 300, LatencyMs: 900, Success: true,
			RequestBody: "[user]\nRead this diagram.", ResponseBody: `{"elements":[]}`},
		{RunID: "run-1", Provider: "openrouter", Model: "google/gemini-2.5-flash", Purpose: "detect-rubric",
			InputTokens: 800, OutputTokens: 200, LatencyMs: 700, Success: true},
		{RunID: "run-2", Provider: "openrouter", Model: "openai/gpt-4o", Purpose: "erd-feedback",
			InputTokens: 500, OutputTokens: 400, LatencyMs: 1500, Success: false, ErrorMessage: "rate limited"},
		{RunID: "run-2", Provider: "openrouter", Model: "openai/gpt-4o", Purpose: "erd-feedback",
			InputTokens: 500, OutputTokens: 420, LatencyMs: 1100, Success: true},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
}

func TestQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d events, want 4", len(all))
	}
	if all[0].ID < all[len(all)-1].ID {
		t.Errorf("expected newest first, got ids %d..%d", all[0].ID, all[len(all)-1].ID)
	}

	tests := []struct {
		name string
		opts QueryOpts
		want int
	}{
		{"limit", QueryOpts{Limit: 2}, 2},
		{"purpose", QueryOpts{Purpose: "erd-feedback"}, 2},
		{"run id", QueryOpts{RunID: "run-1"}, 2},
		{"after", QueryOpts{After: all[1].ID}, 1},
		{"before", QueryOpts{Before: all[2].ID}, 1},
		{"from future", QueryOpts{From: time.Now().Add(time.Hour)}, 0},
		{"to past", QueryOpts{To: time.Now().Add(-time.Hour)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryLLMEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "detect-erd"})
	if err != nil || len(events) != 1 {
		t.Fatalf("query detect-erd: %v (%d events)", err, len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.ResponseBody != `{"elements":[]}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	if !e.Success || e.RunID != "run-1" || e.InputTokens != 1200 {
		t.Errorf("unexpected event: %+v", e)
	}
	if time.Since(e.Timestamp) > time.Minute {
		t.Errorf("timestamp %v too old", e.Timestamp)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)

	stats, err := repo.LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d purposes, want 3", len(stats))
	}

	// Ordered by purpose name.
	fb := stats[2]
	if fb.Purpose != "erd-feedback" {
		t.Fatalf("purpose = %q, want erd-feedback", fb.Purpose)
	}
	if fb.Calls != 2 || fb.Failures != 1 {
		t.Errorf("calls/failures = %d/%d, want 2/1", fb.Calls, fb.Failures)
	}
	if fb.InputTokens != 1000 || fb.OutputTokens != 820 {
		t.Errorf("tokens = %d/%d, want 1000/820", fb.InputTokens, fb.OutputTokens)
	}
	if fb.AvgLatencyMs != 1300 {
		t.Errorf("avg latency = %d, want 1300", fb.AvgLatencyMs)
	}
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)

	usage, err := repo.LLMUsageByModel(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("got %d models, want 2", len(usage))
	}
	if usage[0].Model != "google/gemini-2.5-flash" || usage[0].Calls != 2 || usage[0].InputTokens != 2000 {
		t.Errorf("unexpected usage row: %+v", usage[0])
	}
}

func TestPruneLLMEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &eventRepo{db: s.DB(), now: func() time.Time { return now }}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "detect-erd", Success: true}); err != nil {
		t.Fatalf("append old: %v", err)
	}
	now = now.Add(48 * time.Hour)
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "detect-erd", Success: true}); err != nil {
		t.Fatalf("append new: %v", err)
	}

	n, err := repo.PruneLLMEvents(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d, want 1", n)
	}

	left, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(left) != 1 || !left[0].Timestamp.Equal(now) {
		t.Errorf("unexpected remaining events: %+v", left)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "grade.db")
		t.Setenv("ERDGRADE_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("ERDGRADE_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if want := filepath.Join(dir, "erdgrade", "erdgrade.db"); got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}
