package erd

import (
	"fmt"
	"strings"
)

// ManySymbol is the canonical spelling of an unbounded maximum.
const ManySymbol = "M"

// Cardinality is one side of a relationship, parsed from a "min..max" tag.
type Cardinality struct {
	Min    string
	Max    string
	Absent bool
}

// ParseCardinality parses a "min..max" tag. The empty string and
// "none..none" yield an absent cardinality. A non-empty tag without the ".."
// separator is an error.
func ParseCardinality(tag string) (Cardinality, error) {
	norm := NormalizeTag(tag)
	if norm == "" || norm == "NONE..NONE" || norm == "NONE" {
		return Cardinality{Absent: true}, nil
	}

	lo, hi, ok := strings.Cut(norm, "..")
	if !ok {
		return Cardinality{}, fmt.Errorf("cardinality %q: missing \"..\" separator", tag)
	}
	if lo == "" || hi == "" {
		return Cardinality{}, fmt.Errorf("cardinality %q: empty bound", tag)
	}
	return Cardinality{Min: lo, Max: hi}, nil
}

// String renders the cardinality back as a tag.
func (c Cardinality) String() string {
	if c.Absent {
		return "none..none"
	}
	return c.Min + ".." + c.Max
}

// NormalizeTag upper-cases a cardinality tag, drops whitespace and maps the
// many-symbols (N, *, MANY) to M on either side of the separator.
func NormalizeTag(tag string) string {
	tag = strings.ToUpper(strings.Join(strings.Fields(tag), ""))
	if tag == "" {
		return ""
	}
	parts := strings.Split(tag, "..")
	for i, p := range parts {
		parts[i] = normalizeBound(p)
	}
	return strings.Join(parts, "..")
}

func normalizeBound(b string) string {
	switch b {
	case "N", "*", "MANY":
		return ManySymbol
	}
	return b
}
