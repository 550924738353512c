package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidlearn/internal/ui/layout"
	"github.com/abhisek/kidlearn/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Getting your cards ready...")
	case phaseError:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", s.errMsg))
	case phaseRoundDone:
		return s.renderRoundDone(width)
	}

	var b strings.Builder
	b.WriteString("\n")

	if instr := s.ctrl.Subject().Instructions; instr != "" {
		b.WriteString(theme.Subtitle.Width(width).Render(instr))
		b.WriteString("\n\n")
	}

	item := s.state.Current
	b.WriteString(theme.Prompt.Width(width).Render(item.Prompt))
	b.WriteString("\n\n")
	b.WriteString(layout.Center("Answer: "+s.input.View(), width))
	b.WriteString("\n\n")

	if s.showHint && item.Hint != "" {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Hint: " + item.Hint))
		b.WriteString("\n\n")
	}

	if s.phase == phaseFeedback {
		b.WriteString(s.renderFeedback(width))
		b.WriteString("\n\n")
	}

	if s.state.Degraded != nil {
		b.WriteString(theme.Degraded.Width(width).Align(lipgloss.Center).
			Render("Progress is not being saved right now. Keep playing!"))
	}

	return b.String()
}

func (s *Screen) renderFeedback(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.outcome.Correct {
		msg := "Correct!"
		if s.state.Streak >= 3 {
			msg = fmt.Sprintf("Correct! %d in a row!", s.state.Streak)
		}
		return center.Inherit(theme.Correct).Render(msg)
	}
	return center.Inherit(theme.Incorrect).Render("Not quite") + "\n" +
		center.Foreground(theme.TextDim).Render("Correct answer: "+s.outcome.Expected)
}

func (s *Screen) renderRoundDone(width int) string {
	asked := s.state.Asked - s.roundBase.Asked
	correct := s.state.Correct - s.roundBase.Correct
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(center.Inherit(theme.Correct).Render("Round complete!"))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf("%d of %d correct", correct, asked)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("Best streak so far: %d", s.state.BestStreak)))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press any key for another round, Esc to stop."))
	return b.String()
}
