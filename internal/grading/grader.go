// Package grading scores a student's ER diagram against a reference answer
// under a rubric. Scoring is deterministic; no model is consulted.
package grading

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/abhisek/erdgrade/internal/erd"
	"github.com/abhisek/erdgrade/internal/fuzzy"
	"github.com/abhisek/erdgrade/internal/rubric"
)

// Grader runs the category classifiers over a rubric.
type Grader struct {
	matcher fuzzy.Matcher
	logger  *slog.Logger
}

// Option configures a Grader.
type Option func(*Grader)

// WithMatcher overrides the name matcher (e.g. to tune typo tolerance).
func WithMatcher(m fuzzy.Matcher) Option { return func(g *Grader) { g.matcher = m } }

// WithLogger sets the logger used for grading diagnostics.
func WithLogger(l *slog.Logger) Option { return func(g *Grader) { g.logger = l } }

// New returns a Grader with the default matcher.
func New(opts ...Option) *Grader {
	g := &Grader{matcher: fuzzy.Default, logger: slog.Default()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Grade scores student against correct under r. The inputs are not
// modified. Criteria are processed in rubric order and each criterion's
// earned points are capped at its maximum.
func (g *Grader) Grade(correct, student []erd.Element, r *rubric.Rubric) (*Result, error) {
	if r == nil {
		r = rubric.Default()
	}

	aliases := g.buildAliases(correct, student)
	relCount := len(erd.Relationships(correct))

	res := &Result{
		MaxScore:          r.MaxScore(),
		Breakdown:         []CategoryScore{},
		CorrectElements:   map[string][]string{},
		MissingElements:   map[string][]string{},
		IncorrectElements: map[string][]string{},
		Debug:             Debug{Criteria: []CriterionTrace{}, Aliases: aliases},
	}

	var total float64
	for _, crit := range r.Criteria {
		kind := rubric.ClassifyCategory(crit.Category)
		formula, found := rubric.ParseFormula(crit.Description)
		maxPts := math.Max(crit.MaxPoints, 0)

		trace := CriterionTrace{Category: crit.Category, Kind: kind, FormulaFound: found}

		var out Outcome
		switch kind {
		case rubric.KindEntity:
			trace.Focus = rubric.EntityFocus(crit.Category)
			// The shared aliases come from the full entity pass; a focused
			// pass must not rewrite them.
			out = g.classifyEntities(correct, student, AliasMap{}, trace.Focus)
		case rubric.KindAttribute:
			trace.Focus = rubric.AttributeFocus(crit.Category)
			out = g.classifyAttributes(correct, student, aliases, trace.Focus)
		case rubric.KindRelationship:
			out = g.classifyRelationships(correct, student, aliases)
		case rubric.KindCardinality:
			trace.Mode = ModeEndpoint
			if found {
				trace.Mode = SelectMode(formula.ExpectedCount, relCount)
			}
			var err error
			out, err = g.classifyCardinality(correct, student, aliases, trace.Mode)
			if err != nil {
				return nil, fmt.Errorf("grade %q: %w", crit.Category, err)
			}
		default:
			res.Debug.Unrecognized = append(res.Debug.Unrecognized, crit.Category)
			g.logger.Warn("rubric category not recognized; scoring 0",
				"category", crit.Category, "max_points", maxPts)
		}

		mult := rubric.Multiplier(formula, found, maxPts, out.Expected)
		earned := math.Min(math.Max(float64(out.CorrectCount)*mult, 0), maxPts)
		total += earned

		trace.Multiplier = mult
		trace.ExpectedCount = out.Expected
		trace.CorrectCount = out.CorrectCount
		res.Debug.Criteria = append(res.Debug.Criteria, trace)

		res.Breakdown = append(res.Breakdown, CategoryScore{
			Category: crit.Category,
			Earned:   round2(earned),
			Max:      maxPts,
			Feedback: summarize(kind, out, mult),
		})
		appendItems(res.CorrectElements, crit.Category, out.CorrectItems)
		appendItems(res.MissingElements, crit.Category, out.Missing)
		appendItems(res.IncorrectElements, crit.Category, out.Incorrect)
	}

	res.TotalScore = math.Min(round2(total), res.MaxScore)
	return res, nil
}

// Grade scores with a default Grader.
func Grade(correct, student []erd.Element, r *rubric.Rubric) (*Result, error) {
	return New().Grade(correct, student, r)
}

func appendItems(m map[string][]string, key string, items []string) {
	if _, ok := m[key]; !ok {
		m[key] = []string{}
	}
	m[key] = append(m[key], items...)
}

func summarize(kind rubric.Kind, out Outcome, mult float64) string {
	switch {
	case kind == rubric.KindUnrecognized:
		return "Category not recognized by the automatic grader; no points awarded."
	case out.Expected == 0:
		return "Nothing in the reference answer to grade for this category."
	}
	return fmt.Sprintf("%d of %d correct (%s points each).",
		out.CorrectCount, out.Expected, strconv.FormatFloat(round2(mult), 'f', -1, 64))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
