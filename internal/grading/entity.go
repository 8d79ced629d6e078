package grading

import (
	"fmt"

	"github.com/abhisek/erdgrade/internal/erd"
	"github.com/abhisek/erdgrade/internal/fuzzy"
)

var entityShapes = map[string]string{
	erd.EntityStrong:      "rectangle",
	erd.EntityWeak:        "double rectangle",
	erd.EntityAssociative: "rectangle with diamond",
}

// classifyEntities matches reference entities to student entities by name
// and records every match in aliases. Credit requires the same subtype; a
// wrong subtype still consumes the student entity. focus, when set,
// restricts both the graded reference entities and the extras to that
// subtype.
func (g *Grader) classifyEntities(correct, student []erd.Element, aliases AliasMap, focus string) Outcome {
	var want []erd.Element
	for _, e := range erd.Entities(correct) {
		if focus == "" || e.EntitySubType() == focus {
			want = append(want, e)
		}
	}
	have := erd.Entities(student)
	got, used := assign(want, have,
		func(c, s erd.Element) bool { return fuzzy.Exact(s.Name, c.Name) },
		func(c, s erd.Element) int {
			if !g.matcher.Similar(s.Name, c.Name) {
				return noMatch
			}
			if s.EntitySubType() == c.EntitySubType() {
				return 1
			}
			return 0
		},
	)

	out := Outcome{Expected: len(want)}
	for wi, c := range want {
		i := got[wi]
		if i < 0 {
			out.missing(c.Name)
			continue
		}

		s := have[i]
		aliases.Add(s.Name, c.Name)

		note := renameNote(c.Name, s.Name)
		if s.EntitySubType() != c.EntitySubType() {
			out.incorrect(fmt.Sprintf("%s: wrong shape - expected %s entity (%s), found %s entity (%s)%s",
				c.Name,
				c.EntitySubType(), entityShapes[c.EntitySubType()],
				s.EntitySubType(), entityShapes[s.EntitySubType()],
				note))
			continue
		}
		out.correct(c.Name + note)
	}

	for i, s := range have {
		if used[i] || (focus != "" && s.EntitySubType() != focus) {
			continue
		}
		out.incorrect(fmt.Sprintf("Extra entity: %s", s.Name))
	}
	return out
}

// buildAliases runs the entity pass over every entity so later classifiers
// can resolve renamed owners and endpoints regardless of rubric order.
func (g *Grader) buildAliases(correct, student []erd.Element) AliasMap {
	aliases := AliasMap{}
	g.classifyEntities(correct, student, aliases, "")
	return aliases
}
