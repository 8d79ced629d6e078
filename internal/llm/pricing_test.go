package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		found bool
		in    float64
	}{
		{"gpt-4o", true, 2.5},
		{"google/gemini-2.5-flash", true, 0.3},
		{"anthropic/claude-sonnet-4", true, 3},
		{"qwen/qwen2.5-vl-72b-instruct", true, 0.25},
		{"someone/unknown-model", false, 0},
		{"", false, 0},
	}
	for _, tt := range tests {
		c := LookupCost(tt.model)
		if (c != nil) != tt.found {
			t.Errorf("LookupCost(%q) found = %v, want %v", tt.model, c != nil, tt.found)
			continue
		}
		if c != nil && c.InputPerMTok != tt.in {
			t.Errorf("LookupCost(%q).InputPerMTok = %v, want %v", tt.model, c.InputPerMTok, tt.in)
		}
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 0.3, OutputPerMTok: 2.5}
	got := c.Cost(1_000_000, 200_000)
	if math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("cost = %v, want 0.8", got)
	}
}
