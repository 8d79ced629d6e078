package grading

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/erdgrade/internal/erd"
)

// ErrMalformedCardinality is returned when a reference-answer tag cannot be
// split into min and max. Grading aborts; student tags never trigger it.
var ErrMalformedCardinality = errors.New("malformed cardinality in reference answer")

// cardinalitySide is one graded side of a reference relationship.
type cardinalitySide struct {
	entity   string
	fromSide bool
	correct  string
	student  string
}

// classifyCardinality grades the cardinality tags of every reference
// relationship. The student relationship is located by endpoints and its
// tags are swapped when it was drawn in the opposite direction.
func (g *Grader) classifyCardinality(correct, student []erd.Element, aliases AliasMap, mode Mode) (Outcome, error) {
	want := erd.Relationships(correct)
	have := erd.Relationships(student)
	got, _ := g.matchRelationships(want, have, aliases)

	var out Outcome
	for wi, c := range want {
		sides := []cardinalitySide{
			{entity: c.From, fromSide: true, correct: c.CardinalityFrom},
			{entity: c.To, correct: c.CardinalityTo},
		}

		// Count gradeable units before looking at the student.
		var graded []cardinalitySide
		for _, side := range sides {
			card, err := erd.ParseCardinality(side.correct)
			if err != nil && mode == ModeComponent {
				return Outcome{}, fmt.Errorf("%s side of %s: %w: %v", side.entity, c.Name, ErrMalformedCardinality, err)
			}
			if err == nil && card.Absent {
				continue
			}
			graded = append(graded, side)
		}
		if len(graded) == 0 {
			continue
		}
		units := len(graded)
		if mode == ModeComponent {
			units *= 2
		}
		out.Expected += units

		i := got[wi]
		if i < 0 {
			out.missing(fmt.Sprintf("Cardinality of %s: relationship not found", relationshipLabel(c)))
			continue
		}
		s := have[i]

		_, reversed := g.endpoints(s, c, aliases)
		sFrom, sTo := s.CardinalityFrom, s.CardinalityTo
		if reversed {
			sFrom, sTo = sTo, sFrom
		}
		for _, side := range graded {
			side.student = sTo
			if side.fromSide {
				side.student = sFrom
			}
			label := fmt.Sprintf("%s [%s side]", c.Name, side.entity)
			if mode == ModeComponent {
				compareComponents(&out, label, side)
			} else {
				compareEndpoint(&out, label, side)
			}
		}
	}
	return out, nil
}

// compareEndpoint accepts equal tags or one containing the other; partial
// notations like "M" for "1..M" pass.
func compareEndpoint(out *Outcome, label string, side cardinalitySide) {
	want := erd.NormalizeTag(side.correct)
	got := erd.NormalizeTag(side.student)
	if got == "" || got == "NONE..NONE" {
		out.incorrect(fmt.Sprintf("%s: expected %s, found none", label, want))
		return
	}
	if want == got || strings.Contains(want, got) || strings.Contains(got, want) {
		out.correct(fmt.Sprintf("%s: %s", label, want))
		return
	}
	out.incorrect(fmt.Sprintf("%s: expected %s, found %s", label, want, got))
}

// compareComponents grades min and max independently.
func compareComponents(out *Outcome, label string, side cardinalitySide) {
	want, _ := erd.ParseCardinality(side.correct)
	got, err := erd.ParseCardinality(side.student)
	if err != nil || got.Absent {
		found := "none"
		if err != nil {
			found = fmt.Sprintf("unreadable %q", side.student)
		}
		out.incorrect(fmt.Sprintf("%s min: expected %s, found %s", label, want.Min, found))
		out.incorrect(fmt.Sprintf("%s max: expected %s, found %s", label, want.Max, found))
		return
	}

	for _, part := range []struct{ name, want, got string }{
		{"min", want.Min, got.Min},
		{"max", want.Max, got.Max},
	} {
		if part.want == part.got {
			out.correct(fmt.Sprintf("%s %s: %s", label, part.name, part.want))
		} else {
			out.incorrect(fmt.Sprintf("%s %s: expected %s, found %s", label, part.name, part.want, part.got))
		}
	}
}
