package grading

import (
	"fmt"

	"github.com/abhisek/erdgrade/internal/erd"
	"github.com/abhisek/erdgrade/internal/fuzzy"
)

// notationHints explain the visual notation a focused attribute category
// expects.
var notationHints = map[string]string{
	erd.AttrPrimaryKey:  "not marked as a primary key (underline the attribute name)",
	erd.AttrForeignKey:  "not marked as a foreign key",
	erd.AttrMultivalued: "not drawn as multivalued (double oval)",
	erd.AttrDerived:     "not drawn as derived (dashed oval)",
	erd.AttrComposite:   "not drawn as composite (oval with sub-attributes)",
}

// classifyAttributes matches attributes by name and owner. A non-empty
// focus restricts grading to one attribute subtype and requires the student
// to use that notation; a generic category ignores subtype.
func (g *Grader) classifyAttributes(correct, student []erd.Element, aliases AliasMap, focus string) Outcome {
	var want []erd.Element
	for _, a := range erd.Attributes(correct) {
		if focus == "" || a.AttributeSubType() == focus {
			want = append(want, a)
		}
	}
	have := erd.Attributes(student)
	got, used := assign(want, have,
		func(c, s erd.Element) bool {
			return fuzzy.Exact(s.Name, c.Name) && fuzzy.Exact(resolveOwner(s, aliases), c.BelongsTo)
		},
		func(c, s erd.Element) int { return g.rankAttribute(c, s, aliases) },
	)

	out := Outcome{Expected: len(want)}
	for wi, c := range want {
		i := got[wi]
		if i < 0 {
			out.missing(attributeLabel(c))
			continue
		}

		s := have[i]

		note := renameNote(c.Name, s.Name)
		if focus != "" && s.AttributeSubType() != focus {
			out.incorrect(fmt.Sprintf("%s: %s, found %s%s",
				attributeLabel(c), notationHints[focus], s.AttributeSubType(), note))
			continue
		}
		out.correct(attributeLabel(c) + note)
	}

	for i, s := range have {
		if used[i] || (focus != "" && s.AttributeSubType() != focus) {
			continue
		}
		out.incorrect(fmt.Sprintf("Extra attribute: %s", attributeLabel(s)))
	}
	return out
}

// rankAttribute scores student attribute s as a stand-in for reference
// attribute c. Name and owner must both be similar; an exact owner outranks
// an exact name, which outranks a matching subtype.
func (g *Grader) rankAttribute(c, s erd.Element, aliases AliasMap) int {
	owner := resolveOwner(s, aliases)
	if !g.matcher.Similar(s.Name, c.Name) || !g.matcher.Similar(owner, c.BelongsTo) {
		return noMatch
	}
	rank := 0
	if fuzzy.Exact(owner, c.BelongsTo) {
		rank += 4
	}
	if fuzzy.Exact(s.Name, c.Name) {
		rank += 2
	}
	if s.AttributeSubType() == c.AttributeSubType() {
		rank++
	}
	return rank
}

// resolveOwner returns the reference name of the element owning s. Entity
// owners go through the alias map.
func resolveOwner(s erd.Element, aliases AliasMap) string {
	if s.OwnedByEntity() {
		return aliases.Resolve(s.BelongsTo)
	}
	return s.BelongsTo
}
