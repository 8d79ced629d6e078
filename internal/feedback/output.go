package feedback

import "github.com/abhisek/erdgrade/internal/grading"

// Output is the grading response returned to clients.
type Output struct {
	TotalScore     float64                 `json:"totalScore"`
	MaxScore       float64                 `json:"maxScore"`
	Breakdown      []grading.CategoryScore `json:"breakdown"`
	Feedback       Lists                   `json:"feedback"`
	OverallComment string                  `json:"overallComment"`
	Debug          *grading.Debug          `json:"_debug,omitempty"`
}

// Lists are the per-item feedback sentences.
type Lists struct {
	Correct   []string `json:"correct"`
	Missing   []string `json:"missing"`
	Incorrect []string `json:"incorrect"`
}

// Compose merges a grading result with its feedback. Scores are always
// taken from res; a nil fb selects the templated fallback.
func Compose(res *grading.Result, fb *Feedback) *Output {
	if fb == nil {
		fb = Fallback(res)
	}

	out := &Output{
		TotalScore:     res.TotalScore,
		MaxScore:       res.MaxScore,
		Breakdown:      make([]grading.CategoryScore, len(res.Breakdown)),
		Feedback:       Lists{Correct: nonNil(fb.Correct), Missing: nonNil(fb.Missing), Incorrect: nonNil(fb.Incorrect)},
		OverallComment: fb.OverallComment,
	}
	for i, row := range res.Breakdown {
		if text, ok := fb.Categories[row.Category]; ok && text != "" {
			row.Feedback = text
		}
		out.Breakdown[i] = row
	}
	return out
}

// WithDebug attaches the grader's debug block to the output.
func (o *Output) WithDebug(res *grading.Result) *Output {
	d := res.Debug
	o.Debug = &d
	return o
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
