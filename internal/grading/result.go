package grading

import "github.com/abhisek/erdgrade/internal/rubric"

// Result is the outcome of grading one submission. It is request-scoped and
// never persisted.
type Result struct {
	TotalScore float64         `json:"totalScore"`
	MaxScore   float64         `json:"maxScore"`
	Breakdown  []CategoryScore `json:"breakdown"`

	// Item lists keyed by rubric category name.
	CorrectElements   map[string][]string `json:"correctElements"`
	MissingElements   map[string][]string `json:"missingElements"`
	IncorrectElements map[string][]string `json:"incorrectElements"`

	Debug Debug `json:"_debug"`
}

// CategoryScore is one breakdown row.
type CategoryScore struct {
	Category string  `json:"category"`
	Earned   float64 `json:"earned"`
	Max      float64 `json:"max"`
	Feedback string  `json:"feedback"`
}

// Debug explains how each criterion was scored.
type Debug struct {
	Criteria     []CriterionTrace `json:"criteria"`
	Aliases      AliasMap         `json:"aliases"`
	Unrecognized []string         `json:"unrecognized,omitempty"`
}

// CriterionTrace records the inputs and intermediate values of one
// criterion.
type CriterionTrace struct {
	Category      string      `json:"category"`
	Kind          rubric.Kind `json:"kind"`
	Focus         string      `json:"focus,omitempty"`
	FormulaFound  bool        `json:"formulaFound"`
	Multiplier    float64     `json:"multiplier"`
	ExpectedCount int         `json:"expectedCount"`
	CorrectCount  int         `json:"correctCount"`
	Mode          Mode        `json:"cardinalityMode,omitempty"`
}
