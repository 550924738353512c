// Package stats shows per-item accuracy for each subject, weakest first.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidlearn/internal/screen"
	"github.com/abhisek/kidlearn/internal/screens"
	"github.com/abhisek/kidlearn/internal/spacedrep"
	"github.com/abhisek/kidlearn/internal/subject"
	"github.com/abhisek/kidlearn/internal/ui/components"
	"github.com/abhisek/kidlearn/internal/ui/layout"
	"github.com/abhisek/kidlearn/internal/ui/theme"
)

type loadedMsg struct {
	Subject string
	Entries []spacedrep.Entry[subject.Item]
	Summary spacedrep.Summary
	Err     error
}

type resetMsg struct {
	Subject string
	Err     error
}

// Screen lists item accuracy for one subject at a time.
type Screen struct {
	env        *screens.Env
	subjects   []*subject.Subject
	index      int
	entries    []spacedrep.Entry[subject.Item]
	summary    spacedrep.Summary
	loadErr    error
	confirming bool
	notice     string
	offset     int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a stats screen starting at the subject with id start.
func New(env *screens.Env, start string) *Screen {
	s := &Screen{env: env, subjects: env.Registry.All()}
	for i, subj := range s.subjects {
		if subj.ID == start {
			s.index = i
		}
	}
	return s
}

func (s *Screen) current() *subject.Subject {
	return s.subjects[s.index]
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

// Refresh reloads the current subject.
func (s *Screen) Refresh() tea.Cmd {
	return s.load()
}

func (s *Screen) load() tea.Cmd {
	subj, env := s.current(), s.env
	return func() tea.Msg {
		sched := subject.NewScheduler(env.Store, subj, env.Log())
		progress, err := sched.Load(context.Background())
		now := env.Now()
		return loadedMsg{
			Subject: subj.ID,
			Entries: sched.Ranked(progress, subj.Items, now),
			Summary: sched.Summarize(progress, subj.Items, now),
			Err:     err,
		}
	}
}

func (s *Screen) Title() string {
	return "Progress"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Erase progress"},
			{Key: "N", Description: "Keep it"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Subject"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "R", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Subject != s.current().ID {
			return s, nil
		}
		s.entries = msg.Entries
		s.summary = msg.Summary
		s.loadErr = msg.Err
		return s, nil

	case resetMsg:
		if msg.Err != nil {
			s.notice = "Could not reset: " + msg.Err.Error()
			return s, nil
		}
		s.notice = "Progress erased."
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *Screen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if s.confirming {
		s.confirming = false
		if key != "y" && key != "Y" {
			return s, nil
		}
		subj, env := s.current(), s.env
		return s, func() tea.Msg {
			err := subject.NewScheduler(env.Store, subj, env.Log()).Reset(context.Background())
			return resetMsg{Subject: subj.ID, Err: err}
		}
	}

	switch key {
	case "left", "h":
		return s.switchTo((s.index + len(s.subjects) - 1) % len(s.subjects))
	case "right", "l":
		return s.switchTo((s.index + 1) % len(s.subjects))
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset = min(s.offset+1, max(len(s.entries)-1, 0))
	case "r", "R":
		s.confirming = true
		s.notice = ""
	}
	return s, nil
}

func (s *Screen) switchTo(i int) (screen.Screen, tea.Cmd) {
	s.index = i
	s.entries = nil
	s.offset = 0
	s.notice = ""
	return s, s.load()
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.Banner("◂ "+s.current().Name+" ▸", width))
	b.WriteString("\n\n")

	sum := s.summary
	b.WriteString(layout.Center(dim.Render(fmt.Sprintf(
		"%d items   %d practiced   %d due   %d mastered   %d%% overall",
		sum.Items, sum.Practiced, sum.Due, sum.Mastered, sum.Accuracy())), width))
	b.WriteString("\n\n")

	if s.loadErr != nil {
		b.WriteString(layout.Center(theme.Degraded.Render("Some saved progress could not be read."), width))
		b.WriteString("\n\n")
	}

	if s.confirming {
		b.WriteString(layout.Center(theme.Incorrect.Render(
			fmt.Sprintf("Erase all %s progress? [Y/N]", s.current().Name)), width))
		b.WriteString("\n\n")
	} else if s.notice != "" {
		b.WriteString(layout.Center(theme.Body.Render(s.notice), width))
		b.WriteString("\n\n")
	}

	rows := max(height-10, 1)
	end := min(s.offset+rows, len(s.entries))
	var lines []string
	for _, e := range s.entries[s.offset:end] {
		lines = append(lines, renderEntry(e, cw))
	}
	b.WriteString(layout.Center(strings.Join(lines, "\n"), width))
	return b.String()
}

func renderEntry(e spacedrep.Entry[subject.Item], cw int) string {
	label := fmt.Sprintf("%-8s", e.Item.Text)
	if !e.Practiced {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(label + "  not practiced yet")
	}
	bar := components.ProgressBar{Label: label, Percent: e.Accuracy, Width: cw - 12}.View()
	return bar + lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("  %d/%d r%d", e.Record.CorrectAttempts, e.Record.TotalAttempts, e.Record.Round))
}
