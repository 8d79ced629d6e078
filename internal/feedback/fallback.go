package feedback

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/erdgrade/internal/grading"
)

// Fallback builds deterministic feedback from the grader's own item lists.
func Fallback(res *grading.Result) *Feedback {
	fb := &Feedback{
		Correct:    []string{},
		Missing:    []string{},
		Incorrect:  []string{},
		Categories: map[string]string{},
	}

	for _, row := range res.Breakdown {
		for _, item := range res.CorrectElements[row.Category] {
			fb.Correct = append(fb.Correct, fmt.Sprintf("%s: %s", row.Category, item))
		}
		for _, item := range res.MissingElements[row.Category] {
			fb.Missing = append(fb.Missing, fmt.Sprintf("%s: %s is missing", row.Category, item))
		}
		for _, item := range res.IncorrectElements[row.Category] {
			fb.Incorrect = append(fb.Incorrect, fmt.Sprintf("%s: %s", row.Category, item))
		}
	}

	fb.OverallComment = overallComment(res, len(fb.Missing)+len(fb.Incorrect))
	return fb
}

func overallComment(res *grading.Result, problems int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You scored %s out of %s", formatPoints(res.TotalScore), formatPoints(res.MaxScore))
	if res.MaxScore > 0 {
		fmt.Fprintf(&b, " (%d%%)", int(math.Round(res.TotalScore/res.MaxScore*100)))
	}
	b.WriteString(".")

	switch {
	case problems == 0 && res.TotalScore >= res.MaxScore:
		b.WriteString(" Your diagram matches the reference answer.")
	case problems == 0:
		b.WriteString(" Review the category breakdown for details.")
	case problems == 1:
		b.WriteString(" Review the item listed as missing or incorrect below.")
	default:
		fmt.Fprintf(&b, " Review the %d items listed as missing or incorrect below.", problems)
	}
	return b.String()
}
