package detect

import "github.com/abhisek/erdgrade/internal/llm"

// ERDSchema describes the element list expected from diagram detection.
// It is advisory: vision models routed through OpenRouter often cannot
// honor strict structured output, so replies are decoded defensively.
var ERDSchema = &llm.Schema{
	Name:        "erd-elements",
	Description: "Entities, relationships and attributes read from an ER diagram",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"elements": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":   map[string]any{"type": "string"},
						"name": map[string]any{"type": "string"},
						"type": map[string]any{
							"type": "string",
							"enum": []any{"entity", "relationship", "attribute"},
						},
						"subType":         map[string]any{"type": "string"},
						"from":            map[string]any{"type": "string"},
						"to":              map[string]any{"type": "string"},
						"cardinalityFrom": map[string]any{"type": "string"},
						"cardinalityTo":   map[string]any{"type": "string"},
						"belongsTo":       map[string]any{"type": "string"},
						"belongsToType":   map[string]any{"type": "string"},
						"confidence":      map[string]any{"type": "number"},
					},
					"required": []any{"name", "type"},
				},
			},
		},
		"required": []any{"elements"},
	},
}

// RubricSchema describes the structured rubric expected from rubric
// detection.
var RubricSchema = &llm.Schema{
	Name:        "erd-rubric",
	Description: "A grading rubric with per-category point caps",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"totalPoints": map[string]any{"type": "number"},
			"criteria": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category":    map[string]any{"type": "string"},
						"maxPoints":   map[string]any{"type": "number"},
						"description": map[string]any{"type": "string"},
					},
					"required": []any{"category", "maxPoints", "description"},
				},
			},
			"notes": map[string]any{"type": "string"},
		},
		"required": []any{"totalPoints", "criteria"},
	},
}
