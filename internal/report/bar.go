package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// ScoreBar renders a horizontal bar for ratio (0..1) followed by the
// percentage. Width is the total width including the percentage.
func ScoreBar(ratio float64, width int) string {
	const percentWidth = 6 // "  100%"

	barWidth := width - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * ratio)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	bar := lipgloss.NewStyle().Foreground(BarFill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("░", barWidth-filled))

	return bar + dimStyle.Render(fmt.Sprintf("  %d%%", int(ratio*100+0.5)))
}
