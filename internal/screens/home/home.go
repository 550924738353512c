// Package home is the subject picker shown at startup.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidlearn/internal/router"
	"github.com/abhisek/kidlearn/internal/screen"
	"github.com/abhisek/kidlearn/internal/screens"
	"github.com/abhisek/kidlearn/internal/screens/practice"
	"github.com/abhisek/kidlearn/internal/screens/puzzle"
	"github.com/abhisek/kidlearn/internal/screens/stats"
	"github.com/abhisek/kidlearn/internal/subject"
	"github.com/abhisek/kidlearn/internal/ui/components"
)

// dueMsg carries the number of due items per subject.
type dueMsg struct {
	Due      map[string]int
	Degraded bool
}

// HomeScreen is the main menu.
type HomeScreen struct {
	env      *screens.Env
	menu     components.Menu
	due      map[string]int
	degraded bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(env *screens.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	env := h.env
	var items []components.MenuItem
	for _, subj := range env.Registry.All() {
		detail := ""
		if n, ok := h.due[subj.ID]; ok {
			detail = fmt.Sprintf("%d due", n)
		}
		items = append(items, components.MenuItem{
			Label:  subj.Name,
			Detail: detail,
			Action: push(func() screen.Screen { return practice.New(env, subj) }),
		})
	}
	first := subject.Math
	if all := env.Registry.All(); len(all) > 0 {
		first = all[0].ID
	}
	return append(items,
		components.MenuItem{Label: "Progress", Action: push(func() screen.Screen { return stats.New(env, first) })},
		components.MenuItem{Label: "Puzzle", Action: push(func() screen.Screen { return puzzle.New(env, 3) })},
		components.MenuItem{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
	)
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.countDue()
}

// Refresh recounts due items after returning from practice.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.countDue()
}

func (h *HomeScreen) countDue() tea.Cmd {
	env := h.env
	return func() tea.Msg {
		ctx := context.Background()
		now := env.Now()
		msg := dueMsg{Due: make(map[string]int)}
		for _, subj := range env.Registry.All() {
			sched := subject.NewScheduler(env.Store, subj, env.Log())
			progress, err := sched.Load(ctx)
			if err != nil {
				msg.Degraded = true
			}
			msg.Due[subj.ID] = len(sched.Due(progress, subj.Items, now))
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(dueMsg); ok {
		h.due = m.Due
		h.degraded = m.Degraded
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.items())
		h.menu.Selected = selected
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		components.Banner(title, cw),
		components.ArcadeCard(strings.TrimRight(h.menu.View(), "\n"), cw),
	}
	if h.degraded {
		sections = append(sections, components.Banner("Saved progress is unavailable. Practice still works.", cw))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
