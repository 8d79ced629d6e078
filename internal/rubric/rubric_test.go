package rubric

import (
	"testing"

	"github.com/abhisek/erdgrade/internal/erd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormula(t *testing.T) {
	tests := []struct {
		desc      string
		wantFound bool
		wantMult  float64
		wantCount int
	}{
		{"Cardinality correct: 0.5 x 16", true, 0.5, 16},
		{"2x5 entities", true, 2, 5},
		{"1 X 10", true, 1, 10},
		{"Each entity earns .5 x 8", true, 0.5, 8},
		{"All relationships present", false, 0, 0},
		{"", false, 0, 0},
		{"max 3 points", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			f, found := ParseFormula(tt.desc)
			assert.Equal(t, tt.wantFound, found)
			assert.InDelta(t, tt.wantMult, f.Multiplier, 1e-9)
			assert.Equal(t, tt.wantCount, f.ExpectedCount)
		})
	}
}

func TestMultiplier(t *testing.T) {
	f, found := ParseFormula("Cardinality correct: 0.5 x 16")
	assert.InDelta(t, 0.5, Multiplier(f, found, 8, 4), 1e-9)

	f, found = ParseFormula("no formula here")
	assert.InDelta(t, 2.0, Multiplier(f, found, 30, 15), 1e-9)
	assert.InDelta(t, 1.0, Multiplier(f, found, 30, 0), 1e-9)
}

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		category string
		want     Kind
	}{
		{"Entities", KindEntity},
		{"Weak Entity Identification", KindEntity},
		{"Attributes", KindAttribute},
		{"Primary Keys", KindAttribute},
		{"Relationships", KindRelationship},
		{"Relationship Cardinality", KindCardinality},
		{"Cardinality", KindCardinality},
		{"Multiplicity", KindCardinality},
		{"Neatness", KindUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCategory(tt.category))
		})
	}
}

func TestAttributeFocus(t *testing.T) {
	assert.Equal(t, erd.AttrPrimaryKey, AttributeFocus("Primary Keys"))
	assert.Equal(t, erd.AttrPrimaryKey, AttributeFocus("Keys"))
	assert.Equal(t, erd.AttrForeignKey, AttributeFocus("Foreign Keys"))
	assert.Equal(t, erd.AttrMultivalued, AttributeFocus("Multivalued Attributes"))
	assert.Equal(t, erd.AttrDerived, AttributeFocus("Derived attributes"))
	assert.Equal(t, erd.AttrComposite, AttributeFocus("Composite Attributes"))
	assert.Equal(t, "", AttributeFocus("Attributes"))
	assert.Equal(t, "", AttributeFocus("Attributes and keys"))
}

func TestEntityFocus(t *testing.T) {
	assert.Equal(t, erd.EntityWeak, EntityFocus("Weak entities"))
	assert.Equal(t, erd.EntityAssociative, EntityFocus("Associative Entity"))
	assert.Equal(t, "", EntityFocus("Entities"))
}

func TestDecodeRubric(t *testing.T) {
	raw := []byte(`{"rubricStructured":{"totalPoints":"50","criteria":[
		{"category":"Entities","maxPoints":"10","description":"2 x 5"},
		{"category":"Cardinality","maxPoints":8,"description":"0.5 x 16"},
		"junk"
	]}}`)
	r, err := DecodeRubric(raw)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, r.TotalPoints, 1e-9)
	require.Len(t, r.Criteria, 2)
	assert.Equal(t, "Entities", r.Criteria[0].Category)
	assert.InDelta(t, 10.0, r.Criteria[0].MaxPoints, 1e-9)
	assert.InDelta(t, 8.0, r.Criteria[1].MaxPoints, 1e-9)
}

func TestDecodeRubric_NoCriteria(t *testing.T) {
	_, err := DecodeRubric([]byte(`{"totalPoints":10}`))
	require.ErrorIs(t, err, ErrNoCriteria)
}

func TestMaxScore(t *testing.T) {
	r := &Rubric{Criteria: []Criterion{{MaxPoints: 10}, {MaxPoints: 5}, {MaxPoints: -1}}}
	assert.InDelta(t, 15.0, r.MaxScore(), 1e-9)
	r.TotalPoints = 20
	assert.InDelta(t, 20.0, r.MaxScore(), 1e-9)
	assert.InDelta(t, 100.0, Default().MaxScore(), 1e-9)
}
