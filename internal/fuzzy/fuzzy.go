// Package fuzzy decides whether two diagram labels name the same concept.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

// Matcher compares names with a fixed rule cascade. The edit-distance
// tolerances are tunable; the zero value disables the typo rule.
type Matcher struct {
	// MinContainLen is the length the shorter cleaned string must exceed
	// before substring containment counts as a match.
	MinContainLen int

	// LongLen and LongTolerance: edits allowed when the longer cleaned
	// string is longer than LongLen.
	LongLen       int
	LongTolerance int

	// ShortLen and ShortTolerance: edits allowed when the longer cleaned
	// string is longer than ShortLen.
	ShortLen       int
	ShortTolerance int
}

// Default is the matcher used by Similar.
var Default = Matcher{
	MinContainLen:  3,
	LongLen:        6,
	LongTolerance:  2,
	ShortLen:       3,
	ShortTolerance: 1,
}

// Similar reports whether a and b refer to the same concept under the
// default matcher.
func Similar(a, b string) bool {
	return Default.Similar(a, b)
}

// Similar applies the rules in order; the first that holds wins:
// exact (case-folded), punctuation-insensitive, containment, plural/tense
// stemming, word-bag reordering, bounded edit distance.
func (m Matcher) Similar(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == lb {
		return true
	}

	ca, cb := Clean(a), Clean(b)
	if ca == "" || cb == "" {
		return false
	}
	if ca == cb {
		return true
	}

	short, long := ca, cb
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) > m.MinContainLen && strings.Contains(long, short) {
		return true
	}

	if stemEqual(ca, cb) {
		return true
	}

	if wordBag(la) == wordBag(lb) {
		return true
	}

	tol := m.tolerance(len(long))
	return tol > 0 && levenshtein.Distance(ca, cb, nil) <= tol
}

// Exact reports a trimmed, case-folded equality. Callers use it to prefer
// verbatim matches over lenient ones.
func Exact(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Clean lower-cases s and drops every non-alphanumeric rune.
func Clean(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m Matcher) tolerance(longLen int) int {
	switch {
	case longLen > m.LongLen:
		return m.LongTolerance
	case longLen > m.ShortLen:
		return m.ShortTolerance
	}
	return 0
}

var stemSuffixes = []string{"s", "es", "ed"}

func stemEqual(a, b string) bool {
	for _, suf := range stemSuffixes {
		if a+suf == b || b+suf == a {
			return true
		}
	}
	return false
}

func wordBag(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_'
	})
	sort.Strings(words)
	return strings.Join(words, " ")
}
