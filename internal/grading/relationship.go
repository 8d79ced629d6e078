package grading

import (
	"fmt"

	"github.com/abhisek/erdgrade/internal/erd"
	"github.com/abhisek/erdgrade/internal/fuzzy"
)

var relationshipShapes = map[string]string{
	erd.RelationshipStrong: "single diamond",
	erd.RelationshipWeak:   "double diamond",
}

// endpoints reports whether student relationship s connects the same pair
// of entities as reference relationship c, in either direction. reversed is
// true when the student drew it the other way round.
func (g *Grader) endpoints(s, c erd.Element, aliases AliasMap) (match, reversed bool) {
	from, to := aliases.Resolve(s.From), aliases.Resolve(s.To)
	if g.matcher.Similar(from, c.From) && g.matcher.Similar(to, c.To) {
		return true, false
	}
	if g.matcher.Similar(from, c.To) && g.matcher.Similar(to, c.From) {
		return true, true
	}
	return false, false
}

// exactEndpoints reports whether s joins exactly the entities of c, in
// either direction, once aliases are resolved.
func exactEndpoints(s, c erd.Element, aliases AliasMap) bool {
	from, to := aliases.Resolve(s.From), aliases.Resolve(s.To)
	return (fuzzy.Exact(from, c.From) && fuzzy.Exact(to, c.To)) ||
		(fuzzy.Exact(from, c.To) && fuzzy.Exact(to, c.From))
}

// matchRelationships pairs reference relationships with student ones joining
// the same entities. Exact endpoints outrank a similar name, which outranks
// a matching diamond type.
func (g *Grader) matchRelationships(want, have []erd.Element, aliases AliasMap) ([]int, []bool) {
	return assign(want, have,
		func(c, s erd.Element) bool {
			return fuzzy.Exact(s.Name, c.Name) && exactEndpoints(s, c, aliases)
		},
		func(c, s erd.Element) int {
			if ok, _ := g.endpoints(s, c, aliases); !ok {
				return noMatch
			}
			rank := 0
			if exactEndpoints(s, c, aliases) {
				rank += 4
			}
			if g.matcher.Similar(s.Name, c.Name) {
				rank += 2
			}
			if s.RelationshipSubType() == c.RelationshipSubType() {
				rank++
			}
			return rank
		},
	)
}

// classifyRelationships credits a relationship when its endpoints match and
// its diamond type (strong/weak) is the same.
func (g *Grader) classifyRelationships(correct, student []erd.Element, aliases AliasMap) Outcome {
	want := erd.Relationships(correct)
	have := erd.Relationships(student)
	got, used := g.matchRelationships(want, have, aliases)

	out := Outcome{Expected: len(want)}
	for wi, c := range want {
		i := got[wi]
		if i < 0 {
			out.missing(relationshipLabel(c))
			continue
		}

		s := have[i]

		note := renameNote(c.Name, s.Name)
		if s.RelationshipSubType() != c.RelationshipSubType() {
			out.incorrect(fmt.Sprintf("%s: incorrect type - expected %s relationship (%s), found %s relationship (%s)%s",
				relationshipLabel(c),
				c.RelationshipSubType(), relationshipShapes[c.RelationshipSubType()],
				s.RelationshipSubType(), relationshipShapes[s.RelationshipSubType()],
				note))
			continue
		}
		out.correct(relationshipLabel(c) + note)
	}

	for i, s := range have {
		if used[i] {
			continue
		}
		out.incorrect(fmt.Sprintf("Extra relationship: %s", relationshipLabel(s)))
	}
	return out
}
