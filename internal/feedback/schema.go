package feedback

import "github.com/abhisek/erdgrade/internal/llm"

// FeedbackSchema defines the JSON schema for grading feedback prose.
var FeedbackSchema = &llm.Schema{
	Name:        "erd-feedback",
	Description: "Student-facing feedback explaining an already computed ER diagram grade",
	Strict:      true,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "array",
				"description": "One sentence per correct item, drawn only from the correct item list",
				"items":       map[string]any{"type": "string"},
			},
			"missing": map[string]any{
				"type":        "array",
				"description": "One sentence per missing item, drawn only from the missing item list",
				"items":       map[string]any{"type": "string"},
			},
			"incorrect": map[string]any{
				"type":        "array",
				"description": "One sentence per incorrect item, drawn only from the incorrect item list",
				"items":       map[string]any{"type": "string"},
			},
			"categories": map[string]any{
				"type":        "array",
				"description": "A short comment for each rubric category, in rubric order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category": map[string]any{
							"type":        "string",
							"description": "The rubric category name exactly as given",
						},
						"feedback": map[string]any{
							"type":        "string",
							"description": "One or two sentences about this category",
						},
					},
					"required":             []any{"category", "feedback"},
					"additionalProperties": false,
				},
			},
			"overallComment": map[string]any{
				"type":        "string",
				"description": "Two to four encouraging sentences summarizing the result",
			},
		},
		"required":             []any{"correct", "missing", "incorrect", "categories", "overallComment"},
		"additionalProperties": false,
	},
}
