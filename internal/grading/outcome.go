package grading

import (
	"fmt"

	"github.com/abhisek/erdgrade/internal/erd"
	"github.com/abhisek/erdgrade/internal/fuzzy"
)

// Outcome is what a classifier reports for one rubric criterion.
type Outcome struct {
	// CorrectCount is the number of graded units the student got right.
	CorrectCount int

	// Expected is the number of gradeable units in the reference answer.
	// It is the fallback divisor when the rubric states no formula.
	Expected int

	CorrectItems []string
	Missing      []string
	Incorrect    []string
}

func (o *Outcome) correct(item string) {
	o.CorrectCount++
	o.CorrectItems = append(o.CorrectItems, item)
}

func (o *Outcome) missing(item string) {
	o.Missing = append(o.Missing, item)
}

func (o *Outcome) incorrect(item string) {
	o.Incorrect = append(o.Incorrect, item)
}

// noMatch is the rank of a candidate that cannot stand in for a reference
// item.
const noMatch = -1

// assign pairs each reference item in want with at most one candidate in
// have. Exact pairs are claimed first, so a lenient match never takes the
// candidate of a later exact one. Remaining items take the highest-ranked
// unused candidate, earliest first on ties. The result holds the candidate
// index per reference item (-1 when unmatched) and the used candidates.
func assign(want, have []erd.Element, exact func(c, s erd.Element) bool, rank func(c, s erd.Element) int) (got []int, used []bool) {
	got = make([]int, len(want))
	used = make([]bool, len(have))
	for i := range got {
		got[i] = -1
	}

	for wi, c := range want {
		for hi, s := range have {
			if !used[hi] && exact(c, s) {
				got[wi], used[hi] = hi, true
				break
			}
		}
	}

	for wi, c := range want {
		if got[wi] >= 0 {
			continue
		}
		best, bestRank := -1, noMatch
		for hi, s := range have {
			if used[hi] {
				continue
			}
			if r := rank(c, s); r > bestRank {
				best, bestRank = hi, r
			}
		}
		if best >= 0 {
			got[wi], used[best] = best, true
		}
	}
	return got, used
}

// renameNote is appended to a credited item when the student used a lenient
// variant of the reference name.
func renameNote(canonical, written string) string {
	if fuzzy.Exact(canonical, written) {
		return ""
	}
	return fmt.Sprintf(" (Note: you wrote '%s')", written)
}

func attributeLabel(a erd.Element) string {
	if a.BelongsTo == "" {
		return a.Name
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.BelongsTo)
}

func relationshipLabel(r erd.Element) string {
	return fmt.Sprintf("%s (%s - %s)", r.Name, r.From, r.To)
}
