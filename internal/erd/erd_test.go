package erd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardinality(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    Cardinality
		wantErr bool
	}{
		{"zero to many", "0..M", Cardinality{Min: "0", Max: "M"}, false},
		{"one to one", "1..1", Cardinality{Min: "1", Max: "1"}, false},
		{"many as N", "1..n", Cardinality{Min: "1", Max: "M"}, false},
		{"many as star", "0..*", Cardinality{Min: "0", Max: "M"}, false},
		{"spaces", " 1 .. M ", Cardinality{Min: "1", Max: "M"}, false},
		{"empty", "", Cardinality{Absent: true}, false},
		{"none", "none..none", Cardinality{Absent: true}, false},
		{"no separator", "1M", Cardinality{}, true},
		{"empty bound", "1..", Cardinality{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCardinality(tt.tag)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "0..M", NormalizeTag("0..many"))
	assert.Equal(t, "1..1", NormalizeTag("1..1"))
	assert.Equal(t, "", NormalizeTag("   "))
}

func TestDecodeElements_ObjectWrapper(t *testing.T) {
	raw := []byte(`{"elements":[
		{"id":"1","name":"Student","type":"entity","subType":"Strong"},
		{"name":"Enrolls","type":"Relationship","subType":"identifying","from":"Student","to":"Course","cardinalityFrom":"1..n","cardinalityTo":"0..M"},
		{"id":3,"name":"student_id","type":"attribute","subType":"Primary Key","belongsTo":"Student","belongsToType":"Entity","confidence":"0.9"}
	]}`)

	els, err := DecodeElements(raw)
	require.NoError(t, err)
	require.Len(t, els, 3)

	assert.Equal(t, TypeEntity, els[0].Type)
	assert.Equal(t, EntityStrong, els[0].SubType)

	assert.Equal(t, "e2", els[1].ID)
	assert.Equal(t, TypeRelationship, els[1].Type)
	assert.Equal(t, RelationshipWeak, els[1].SubType)
	assert.Equal(t, "1..n", els[1].CardinalityFrom)

	assert.Equal(t, "3", els[2].ID)
	assert.Equal(t, AttrPrimaryKey, els[2].SubType)
	assert.Equal(t, "entity", els[2].BelongsToType)
	assert.InDelta(t, 0.9, els[2].Confidence, 1e-9)
}

func TestDecodeElements_BareArrayAndCompoundType(t *testing.T) {
	els, err := DecodeElements([]byte(`[{"name":"Dependent","type":"weak entity"}, "junk"]`))
	require.NoError(t, err)
	require.Len(t, els, 1)
	assert.Equal(t, TypeEntity, els[0].Type)
	assert.Equal(t, EntityWeak, els[0].SubType)
}

func TestDecodeElements_Errors(t *testing.T) {
	_, err := DecodeElements([]byte(`{not json`))
	require.Error(t, err)

	_, err = DecodeElements([]byte(`{"items":[]}`))
	require.ErrorIs(t, err, ErrNoElements)
}

func TestFilters(t *testing.T) {
	els := []Element{
		{Name: "A", Type: TypeEntity},
		{Name: "r", Type: TypeRelationship},
		{Name: "x", Type: TypeAttribute},
		{Name: "?", Type: "reject"},
	}
	assert.Len(t, Entities(els), 1)
	assert.Len(t, Relationships(els), 1)
	assert.Len(t, Attributes(els), 1)
}

func TestSubTypeDefaults(t *testing.T) {
	assert.Equal(t, EntityStrong, Element{}.EntitySubType())
	assert.Equal(t, RelationshipStrong, Element{SubType: "1:N"}.RelationshipSubType())
	assert.Equal(t, AttrRegular, Element{}.AttributeSubType())
	assert.True(t, Element{}.OwnedByEntity())
	assert.False(t, Element{BelongsToType: "relationship"}.OwnedByEntity())
}
