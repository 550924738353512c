package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidlearn/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a 0-100 percentage.
type ProgressBar struct {
	Label   string
	Percent int
	Width   int
}

// View renders the progress bar followed by the percentage.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	barWidth := max(p.Width-lipgloss.Width(result)-6, 4)
	pct := min(max(p.Percent, 0), 100)
	filled := barWidth * pct / 100

	color := theme.Secondary
	if pct < 50 {
		color = theme.Accent
	}

	result += lipgloss.NewStyle().Background(color).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %3d%%", pct))
	return result
}
