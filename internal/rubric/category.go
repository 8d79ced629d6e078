package rubric

import (
	"strings"

	"github.com/abhisek/erdgrade/internal/erd"
)

// Kind is the grading routine a criterion is dispatched to.
type Kind string

const (
	KindEntity       Kind = "entity"
	KindAttribute    Kind = "attribute"
	KindRelationship Kind = "relationship"
	KindCardinality  Kind = "cardinality"
	KindUnrecognized Kind = "unrecognized"
)

// ClassifyCategory maps a rubric category name to a Kind. Keywords are
// checked in order: entity, attribute/key, relationship (unless it also
// names cardinality), cardinality/multiplicity.
func ClassifyCategory(category string) Kind {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "entit"):
		return KindEntity
	case strings.Contains(c, "attribut"), strings.Contains(c, "key"):
		return KindAttribute
	case strings.Contains(c, "relationship") && !strings.Contains(c, "cardinalit"):
		return KindRelationship
	case strings.Contains(c, "cardinalit"), strings.Contains(c, "multiplicit"):
		return KindCardinality
	}
	return KindUnrecognized
}

// AttributeFocus returns the attribute subtype an attribute category is
// restricted to, or "" for a generic attributes category.
func AttributeFocus(category string) string {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "foreign"):
		return erd.AttrForeignKey
	case strings.Contains(c, "primary"):
		return erd.AttrPrimaryKey
	case strings.Contains(c, "multivalue"), strings.Contains(c, "multi-value"), strings.Contains(c, "multi value"):
		return erd.AttrMultivalued
	case strings.Contains(c, "derived"):
		return erd.AttrDerived
	case strings.Contains(c, "composite"):
		return erd.AttrComposite
	case strings.Contains(c, "key") && !strings.Contains(c, "attribut"):
		return erd.AttrPrimaryKey
	}
	return ""
}

// EntityFocus returns the entity subtype an entity category is restricted
// to, or "" when the category covers every entity.
func EntityFocus(category string) string {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "weak"):
		return erd.EntityWeak
	case strings.Contains(c, "associative"):
		return erd.EntityAssociative
	case strings.Contains(c, "strong"):
		return erd.EntityStrong
	}
	return ""
}
