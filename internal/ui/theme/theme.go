// Package theme holds the colors and shared lipgloss styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Bright on a dark background, readable for young eyes.
var (
	Primary      = lipgloss.Color("#8B5CF6")
	Secondary    = lipgloss.Color("#14B8A6")
	Accent       = lipgloss.Color("#F97316")
	Success      = lipgloss.Color("#22C55E")
	Error        = lipgloss.Color("#F43F5E")
	Warning      = lipgloss.Color("#FACC15")
	Text         = lipgloss.Color("#F8FAFC")
	TextDim      = lipgloss.Color("#94A3B8")
	BgDark       = lipgloss.Color("#0F172A")
	BgCard       = lipgloss.Color("#1E293B")
	Border       = lipgloss.Color("#334155")
	ArcadeYellow = lipgloss.Color("#FDE047")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Prompt = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true).
		Align(lipgloss.Center)
)

var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Degraded = lipgloss.NewStyle().
			Foreground(Warning)

	Tile = lipgloss.NewStyle().
		Foreground(Text).
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Width(6).
		Align(lipgloss.Center)

	Blank = lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder()).
		Width(6)
)
