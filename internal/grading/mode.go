package grading

// Mode is how cardinality is graded.
type Mode string

const (
	// ModeEndpoint grades each side's whole tag as one unit
	// (2 units per relationship).
	ModeEndpoint Mode = "endpoint"

	// ModeComponent grades min and max separately
	// (4 units per relationship).
	ModeComponent Mode = "component"
)

// componentRatio is the declared-units-per-relationship ratio at or above
// which a rubric is taken to count min and max separately.
const componentRatio = 3.5

// SelectMode picks the cardinality mode from the number of units the rubric
// declares and the number of relationships in the reference answer.
func SelectMode(expectedCount, relationshipCount int) Mode {
	if relationshipCount <= 0 {
		return ModeEndpoint
	}
	ratio := float64(expectedCount) / float64(relationshipCount)
	if ratio >= componentRatio {
		return ModeComponent
	}
	return ModeEndpoint
}
