// Package rubric models grading rubrics and interprets their free-text
// criterion descriptions.
package rubric

import (
	"regexp"
	"strconv"
)

// Rubric is an instructor's scoring scheme.
type Rubric struct {
	TotalPoints float64     `json:"totalPoints"`
	Criteria    []Criterion `json:"criteria"`
	Notes       string      `json:"notes,omitempty"`
}

// Criterion is one scoring category with a point cap.
type Criterion struct {
	Category    string  `json:"category"`
	MaxPoints   float64 `json:"maxPoints"`
	Description string  `json:"description"`
}

// MaxScore is the rubric's declared total, or the sum of the criteria caps
// when no total was declared.
func (r *Rubric) MaxScore() float64 {
	if r.TotalPoints > 0 {
		return r.TotalPoints
	}
	var sum float64
	for _, c := range r.Criteria {
		if c.MaxPoints > 0 {
			sum += c.MaxPoints
		}
	}
	return sum
}

// Default is the rubric applied when a grading request carries none.
func Default() *Rubric {
	return &Rubric{
		TotalPoints: 100,
		Criteria: []Criterion{
			{Category: "Entities", MaxPoints: 25, Description: "Entities identified with the correct shape"},
			{Category: "Attributes", MaxPoints: 25, Description: "Attributes attached to the correct owner"},
			{Category: "Relationships", MaxPoints: 25, Description: "Relationships connect the correct entities"},
			{Category: "Cardinality", MaxPoints: 25, Description: "Cardinality on both sides of each relationship"},
		},
	}
}

// Formula is a per-unit multiplier recovered from a description.
type Formula struct {
	Multiplier    float64
	ExpectedCount int
}

// formulaPattern is the literal "<number> x <integer>" form, e.g. "0.5 x 16".
// Anything else is not a formula.
var formulaPattern = regexp.MustCompile(`(\d*\.?\d+)\s*[xX]\s*(\d+)`)

// ParseFormula extracts a multiplier formula from a criterion description.
// It returns false when none is present; that is the common case.
func ParseFormula(description string) (Formula, bool) {
	m := formulaPattern.FindStringSubmatch(description)
	if m == nil {
		return Formula{}, false
	}
	mult, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Formula{}, false
	}
	count, err := strconv.Atoi(m[2])
	if err != nil {
		return Formula{}, false
	}
	return Formula{Multiplier: mult, ExpectedCount: count}, true
}

// Multiplier resolves the points earned per correct unit. A parsed formula
// wins; otherwise maxPoints is spread over expectedCount. With nothing to
// go on the multiplier stays 1.
func Multiplier(f Formula, found bool, maxPoints float64, expectedCount int) float64 {
	if found {
		return f.Multiplier
	}
	if expectedCount > 0 {
		return maxPoints / float64(expectedCount)
	}
	return 1
}
