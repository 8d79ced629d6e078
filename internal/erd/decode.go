package erd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// ErrNoElements indicates the payload held no recognizable element list.
var ErrNoElements = errors.New("no element list found")

// DecodeElements parses a loosely conforming element list. It accepts a bare
// JSON array or an object carrying the array under "elements". Scalars are
// coerced (numeric names, string confidences), type and subtype spellings are
// normalized, and missing IDs are synthesized as e1, e2, ...
func DecodeElements(raw []byte) ([]Element, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("decode elements: invalid JSON")
	}

	root := gjson.ParseBytes(raw)
	list := root
	if root.IsObject() {
		list = root.Get("elements")
	}
	if !list.IsArray() {
		return nil, ErrNoElements
	}

	return decodeList(list), nil
}

// DecodeElementList decodes an already-extracted gjson array.
func DecodeElementList(list gjson.Result) []Element {
	if !list.IsArray() {
		return nil
	}
	return decodeList(list)
}

func decodeList(list gjson.Result) []Element {
	out := []Element{}
	n := 0
	list.ForEach(func(_, v gjson.Result) bool {
		n++
		if !v.IsObject() {
			return true
		}
		out = append(out, decodeElement(v, n))
		return true
	})
	return out
}

func decodeElement(v gjson.Result, n int) Element {
	str := func(key string) string {
		f := v.Get(key)
		if !f.Exists() || f.Type == gjson.Null {
			return ""
		}
		return strings.TrimSpace(cast.ToString(f.Value()))
	}

	typ, impliedSub := normalizeType(str("type"))
	e := Element{
		ID:              str("id"),
		Name:            str("name"),
		Type:            typ,
		From:            str("from"),
		To:              str("to"),
		CardinalityFrom: str("cardinalityFrom"),
		CardinalityTo:   str("cardinalityTo"),
		BelongsTo:       str("belongsTo"),
		BelongsToType:   strings.ToLower(str("belongsToType")),
		Confidence:      cast.ToFloat64(v.Get("confidence").Value()),
	}
	if e.ID == "" {
		e.ID = fmt.Sprintf("e%d", n)
	}

	sub := str("subType")
	if sub == "" {
		sub = impliedSub
	}
	e.SubType = NormalizeSubType(e.Type, sub)
	return e
}

// normalizeType maps a free-form type label to an ElementType. Compound
// labels like "weak entity" also yield the implied subtype.
func normalizeType(t string) (ElementType, string) {
	t = canonicalToken(t)
	switch t {
	case "entity", "strong_entity":
		return TypeEntity, ""
	case "weak_entity":
		return TypeEntity, EntityWeak
	case "associative_entity":
		return TypeEntity, EntityAssociative
	case "relationship", "relation":
		return TypeRelationship, ""
	case "weak_relationship", "identifying_relationship":
		return TypeRelationship, RelationshipWeak
	case "attribute":
		return TypeAttribute, ""
	case "key_attribute", "primary_key":
		return TypeAttribute, AttrPrimaryKey
	}
	return ElementType(t), ""
}

// NormalizeSubType maps common spellings of a subtype to the canonical
// constants for the given element type. Unknown spellings are returned in
// canonical token form.
func NormalizeSubType(t ElementType, sub string) string {
	s := canonicalToken(sub)
	if s == "" {
		return ""
	}

	switch t {
	case TypeEntity:
		switch s {
		case "strong", "regular", "strong_entity":
			return EntityStrong
		case "weak", "weak_entity":
			return EntityWeak
		case "associative", "associative_entity", "bridge", "junction":
			return EntityAssociative
		}
	case TypeRelationship:
		switch s {
		case "weak", "identifying", "weak_relationship":
			return RelationshipWeak
		case "strong", "regular", "non_identifying", "strong_relationship":
			return RelationshipStrong
		}
		// Legacy cardinality-style tags ("1:N") are kept verbatim.
		return strings.TrimSpace(sub)
	case TypeAttribute:
		switch s {
		case "primary_key", "pk", "key", "primary", "key_attribute":
			return AttrPrimaryKey
		case "foreign_key", "fk", "foreign":
			return AttrForeignKey
		case "multivalued", "multi_valued", "multivalue", "multi_value":
			return AttrMultivalued
		case "derived":
			return AttrDerived
		case "composite":
			return AttrComposite
		case "regular", "simple", "normal", "plain":
			return AttrRegular
		}
	}
	return s
}

func canonicalToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}
