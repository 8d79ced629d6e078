// Package feedback turns a grading result into student-facing prose. The
// model only explains scores; it never changes them.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/erdgrade/internal/grading"
	"github.com/abhisek/erdgrade/internal/llm"
)

// Config holds feedback generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for feedback generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.3,
	}
}

// Feedback is the prose attached to a grading result.
type Feedback struct {
	Correct        []string `json:"correct"`
	Missing        []string `json:"missing"`
	Incorrect      []string `json:"incorrect"`
	OverallComment string   `json:"overallComment"`

	// Categories maps a rubric category to its comment. Categories the
	// model skipped keep the grader's summary.
	Categories map[string]string `json:"-"`
}

// Renderer asks a model to explain a grading result.
type Renderer struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// NewRenderer creates a feedback renderer.
func NewRenderer(provider llm.Provider, cfg Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{provider: provider, cfg: cfg, logger: logger}
}

type feedbackOutput struct {
	Correct    []string `json:"correct"`
	Missing    []string `json:"missing"`
	Incorrect  []string `json:"incorrect"`
	Categories []struct {
		Category string `json:"category"`
		Feedback string `json:"feedback"`
	} `json:"categories"`
	OverallComment string `json:"overallComment"`
}

// Render makes one model call for res. Any error means the caller should
// fall back to templated feedback.
func (r *Renderer) Render(ctx context.Context, res *grading.Result) (*Feedback, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)

	userMsg, err := buildFeedbackMessage(res)
	if err != nil {
		return nil, fmt.Errorf("build feedback prompt: %w", err)
	}

	resp, err := r.provider.Generate(ctx, llm.Request{
		System:      feedbackSystemPrompt,
		Messages:    []llm.Message{llm.UserMessage(userMsg)},
		Schema:      FeedbackSchema,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("feedback generation: %w", err)
	}

	var out feedbackOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse feedback response: %w", err)
	}
	if out.OverallComment == "" {
		return nil, fmt.Errorf("parse feedback response: empty overall comment")
	}

	fb := &Feedback{
		Correct:        out.Correct,
		Missing:        out.Missing,
		Incorrect:      out.Incorrect,
		OverallComment: out.OverallComment,
		Categories:     make(map[string]string, len(out.Categories)),
	}
	for _, c := range out.Categories {
		if c.Feedback != "" {
			fb.Categories[c.Category] = c.Feedback
		}
	}
	return fill(fb, res), nil
}

// RenderOrFallback renders feedback for res and substitutes the templated
// fallback on any failure. The second result reports whether the fallback
// was used.
func (r *Renderer) RenderOrFallback(ctx context.Context, res *grading.Result) (*Feedback, bool) {
	fb, err := r.Render(ctx, res)
	if err != nil {
		r.logger.WarnContext(ctx, "feedback generation failed, using fallback",
			"run_id", llm.RunIDFrom(ctx),
			"error", err,
		)
		return Fallback(res), true
	}
	return fb, false
}

// fill replaces lists the model left empty with the templated items so
// that nothing the grader found is dropped from the response.
func fill(fb *Feedback, res *grading.Result) *Feedback {
	def := Fallback(res)
	if len(fb.Correct) == 0 {
		fb.Correct = def.Correct
	}
	if len(fb.Missing) == 0 {
		fb.Missing = def.Missing
	}
	if len(fb.Incorrect) == 0 {
		fb.Incorrect = def.Incorrect
	}
	return fb
}
