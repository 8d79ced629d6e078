// Package detect reads ER diagrams and rubrics from images or text with a
// vision model.
package detect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/erdgrade/internal/erd"
	"github.com/abhisek/erdgrade/internal/llm"
	"github.com/abhisek/erdgrade/internal/rubric"
)

// ErrNoInput is returned when a rubric request has neither image nor text.
var ErrNoInput = errors.New("rubric image or text is required")

// Config holds detection settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for detection.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0,
	}
}

// Detector extracts structured data from diagrams and rubrics.
type Detector struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// NewDetector creates a detector backed by provider.
func NewDetector(provider llm.Provider, cfg Config, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{provider: provider, cfg: cfg, logger: logger}
}

// RubricInput is a rubric given as an image, pasted text, or both.
type RubricInput struct {
	Image *llm.Image
	Text  string
}

// DetectERD transcribes the diagram in img. Elements of unknown type are
// dropped.
func (d *Detector) DetectERD(ctx context.Context, img llm.Image) ([]erd.Element, error) {
	if len(img.Data) == 0 {
		return nil, llm.ErrNoImage
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeDetectERD)

	resp, err := d.provider.Generate(ctx, llm.Request{
		System:      erdSystemPrompt,
		Messages:    []llm.Message{llm.UserMessage(erdUserPrompt, img)},
		Schema:      ERDSchema,
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("erd detection: %w", err)
	}

	els, err := erd.DecodeElements(resp.Content)
	if err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("parse erd response: %w", err)}
	}

	kept := make([]erd.Element, 0, len(els))
	for _, e := range els {
		switch e.Type {
		case erd.TypeEntity, erd.TypeRelationship, erd.TypeAttribute:
			if e.Name == "" {
				continue
			}
			kept = append(kept, e)
		default:
			d.logger.DebugContext(ctx, "dropping detected element", "name", e.Name, "type", e.Type)
		}
	}
	return kept, nil
}

// DetectRubric converts a rubric image and/or text into a structured
// rubric.
func (d *Detector) DetectRubric(ctx context.Context, in RubricInput) (*rubric.Rubric, error) {
	hasImage := in.Image != nil && len(in.Image.Data) > 0
	if !hasImage && in.Text == "" {
		return nil, ErrNoInput
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeDetectRubric)

	msg := llm.UserMessage(buildRubricUserMessage(in.Text, hasImage))
	if hasImage {
		msg.Images = []llm.Image{*in.Image}
	}

	resp, err := d.provider.Generate(ctx, llm.Request{
		System:      rubricSystemPrompt,
		Messages:    []llm.Message{msg},
		Schema:      RubricSchema,
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("rubric detection: %w", err)
	}

	r, err := rubric.DecodeRubric(resp.Content)
	if err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("parse rubric response: %w", err)}
	}
	if r.TotalPoints <= 0 {
		r.TotalPoints = r.MaxScore()
	}
	return r, nil
}
