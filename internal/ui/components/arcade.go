package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidlearn/internal/ui/theme"
)

// ContentWidth returns the inner width shared by boxed sections so they
// line up inside a cabinet frame.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// CabinetFrame wraps content in a double border centered in the area.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded card at the given content width.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Banner renders a bold yellow line centered at the content width.
func Banner(text string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.ArcadeYellow).
		Render(text)
}
