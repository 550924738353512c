// Package app is the root Bubble Tea model tying the router to the frame.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidlearn/internal/router"
	"github.com/abhisek/kidlearn/internal/screen"
	"github.com/abhisek/kidlearn/internal/screens"
	"github.com/abhisek/kidlearn/internal/screens/home"
	"github.com/abhisek/kidlearn/internal/screens/practice"
	"github.com/abhisek/kidlearn/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Env *screens.Env

	// Subject, when set, opens straight into practice for that subject.
	Subject string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  screen.Screen
	width  int
	height int
}

// newAppModel creates an AppModel with the home screen at the bottom of
// the stack.
func newAppModel(opts Options) (AppModel, error) {
	m := AppModel{router: router.New(home.New(opts.Env))}
	if opts.Subject != "" {
		subj, err := opts.Env.Registry.Get(opts.Subject)
		if err != nil {
			return AppModel{}, err
		}
		m.start = practice.New(opts.Env, subj)
	}
	return m, nil
}

// Init loads the home screen and, when a subject was requested, pushes
// its practice screen on top.
func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.start != nil {
		return tea.Batch(cmd, m.router.Push(m.start))
	}
	return cmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
