// Package report renders grading output for the terminal.
package report

import (
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/list"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/erdgrade/internal/feedback"
)

// DefaultWidth is used when the caller does not know the terminal width.
const DefaultWidth = 72

// Render lays out a grading output as styled text.
func Render(out *feedback.Output, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	ratio := 0.0
	if out.MaxScore > 0 {
		ratio = out.TotalScore / out.MaxScore
	}

	var sections []string
	sections = append(sections,
		titleStyle.Render("ER diagram grade")+"  "+
			scoreColor(ratio).Render(points(out.TotalScore)+" / "+points(out.MaxScore)),
		ScoreBar(ratio, width),
	)

	sections = append(sections, headingStyle.Render("Breakdown"), breakdownTable(out, width))

	for _, group := range []struct {
		title string
		items []string
		style lipgloss.Style
	}{
		{"Correct", out.Feedback.Correct, lipgloss.NewStyle().Foreground(Good)},
		{"Missing", out.Feedback.Missing, lipgloss.NewStyle().Foreground(Warn)},
		{"Incorrect", out.Feedback.Incorrect, lipgloss.NewStyle().Foreground(Bad)},
	} {
		if len(group.items) == 0 {
			continue
		}
		items := make([]any, len(group.items))
		for i, s := range group.items {
			items[i] = s
		}
		l := list.New(items...).
			Enumerator(list.Bullet).
			EnumeratorStyle(group.style).
			ItemStyle(lipgloss.NewStyle().Foreground(Text).Width(width - 4))
		sections = append(sections, headingStyle.Render(group.title), l.String())
	}

	if out.OverallComment != "" {
		sections = append(sections, "", commentStyle.Width(width).Render(out.OverallComment))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Write renders out to w, downsampling colors to what w supports.
func Write(w io.Writer, out *feedback.Output, width int) error {
	_, err := lipgloss.Fprintln(w, Render(out, width))
	return err
}

func breakdownTable(out *feedback.Output, width int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Border)).
		Headers("Category", "Score", "Notes").
		Width(width).
		Wrap(true)

	for _, row := range out.Breakdown {
		t.Row(row.Category, points(row.Earned)+" / "+points(row.Max), strings.TrimSpace(row.Feedback))
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerCell
		}
		if col == 1 && row < len(out.Breakdown) {
			b := out.Breakdown[row]
			r := 0.0
			if b.Max > 0 {
				r = b.Earned / b.Max
			}
			return scoreColor(r).Padding(0, 1)
		}
		return cell
	})
	return t.String()
}

func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
