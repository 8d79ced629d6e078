package erd

// ElementType classifies a detected diagram unit.
type ElementType string

const (
	TypeEntity       ElementType = "entity"
	TypeRelationship ElementType = "relationship"
	TypeAttribute    ElementType = "attribute"
)

// Entity subtypes.
const (
	EntityStrong      = "strong"
	EntityWeak        = "weak"
	EntityAssociative = "associative"
)

// Relationship subtypes.
const (
	RelationshipStrong = "strong"
	RelationshipWeak   = "weak"
)

// Attribute subtypes.
const (
	AttrPrimaryKey  = "primary_key"
	AttrForeignKey  = "foreign_key"
	AttrRegular     = "regular"
	AttrDerived     = "derived"
	AttrMultivalued = "multivalued"
	AttrComposite   = "composite"
)

// Element is a detected diagram unit. Relationship-only fields (From, To,
// CardinalityFrom, CardinalityTo) and attribute-only fields (BelongsTo,
// BelongsToType) are empty for other types.
type Element struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Type            ElementType `json:"type"`
	SubType         string      `json:"subType,omitempty"`
	From            string      `json:"from,omitempty"`
	To              string      `json:"to,omitempty"`
	CardinalityFrom string      `json:"cardinalityFrom,omitempty"`
	CardinalityTo   string      `json:"cardinalityTo,omitempty"`
	BelongsTo       string      `json:"belongsTo,omitempty"`
	BelongsToType   string      `json:"belongsToType,omitempty"`
	Confidence      float64     `json:"confidence,omitempty"`
}

// EntitySubType returns the subtype with the strong default applied.
func (e Element) EntitySubType() string {
	if e.SubType == "" {
		return EntityStrong
	}
	return e.SubType
}

// RelationshipSubType returns the subtype with the strong default applied.
// Legacy cardinality-style subtypes ("1:N", "M:N") also count as strong.
func (e Element) RelationshipSubType() string {
	if e.SubType == RelationshipWeak {
		return RelationshipWeak
	}
	return RelationshipStrong
}

// AttributeSubType returns the subtype with the regular default applied.
func (e Element) AttributeSubType() string {
	if e.SubType == "" {
		return AttrRegular
	}
	return e.SubType
}

// OwnedByEntity reports whether the attribute's owner is an entity. An
// unspecified owner kind is assumed to be an entity.
func (e Element) OwnedByEntity() bool {
	return e.BelongsToType == "" || e.BelongsToType == string(TypeEntity)
}

// Entities returns the entity elements of els, preserving order.
func Entities(els []Element) []Element {
	return ofType(els, TypeEntity)
}

// Relationships returns the relationship elements of els, preserving order.
func Relationships(els []Element) []Element {
	return ofType(els, TypeRelationship)
}

// Attributes returns the attribute elements of els, preserving order.
func Attributes(els []Element) []Element {
	return ofType(els, TypeAttribute)
}

func ofType(els []Element, t ElementType) []Element {
	var out []Element
	for _, e := range els {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
