package report

import "charm.land/lipgloss/v2"

// Palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Purple
	Good    = lipgloss.Color("#22C55E") // Green
	Warn    = lipgloss.Color("#F59E0B") // Amber
	Bad     = lipgloss.Color("#F43F5E") // Rose
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
	BarFill = lipgloss.Color("#14B8A6") // Teal
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			MarginTop(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	commentStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	headerCell = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	cell = lipgloss.NewStyle().
		Foreground(Text).
		Padding(0, 1)
)

// scoreColor picks a color for a ratio of earned to available points.
func scoreColor(ratio float64) lipgloss.Style {
	switch {
	case ratio >= 0.85:
		return lipgloss.NewStyle().Foreground(Good).Bold(true)
	case ratio >= 0.5:
		return lipgloss.NewStyle().Foreground(Warn).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Bad).Bold(true)
	}
}
