package grading

import (
	"maps"
	"slices"

	"github.com/abhisek/erdgrade/internal/fuzzy"
)

// AliasMap maps a student's entity name to the reference entity name it was
// matched to. It lives for a single grading run.
type AliasMap map[string]string

// Add records that the student wrote studentName for canonical.
func (a AliasMap) Add(studentName, canonical string) {
	a[studentName] = canonical
}

// Resolve returns the canonical name for a student-side entity reference.
// Lookups fall back to a case-insensitive key match, then to the name
// itself.
func (a AliasMap) Resolve(name string) string {
	if c, ok := a[name]; ok {
		return c
	}
	for _, k := range slices.Sorted(maps.Keys(a)) {
		if fuzzy.Exact(k, name) {
			return a[k]
		}
	}
	return name
}
