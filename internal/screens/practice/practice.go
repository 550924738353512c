// Package practice is the question-and-answer screen for one subject.
package practice

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidlearn/internal/router"
	"github.com/abhisek/kidlearn/internal/screen"
	"github.com/abhisek/kidlearn/internal/screens"
	"github.com/abhisek/kidlearn/internal/session"
	"github.com/abhisek/kidlearn/internal/subject"
	"github.com/abhisek/kidlearn/internal/ui/components"
	"github.com/abhisek/kidlearn/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseRoundDone
	phaseError
)

// startedMsg carries the state produced by Controller.Start.
type startedMsg struct {
	State session.State
}

// answeredMsg carries the result of Controller.Answer.
type answeredMsg struct {
	State   session.State
	Outcome session.Outcome
	Err     error
}

// Screen implements screen.Screen for a practice session.
type Screen struct {
	env      *screens.Env
	ctrl     *session.Controller
	state    session.State
	phase    phase
	input    components.TextInput
	outcome  session.Outcome
	showHint bool
	pending  bool
	errMsg   string

	// roundBase is the state when the current round began.
	roundBase session.State
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a practice screen for subj.
func New(env *screens.Env, subj *subject.Subject) *Screen {
	return &Screen{
		env:   env,
		ctrl:  env.Controller(subj),
		input: newInput(subj),
	}
}

func newInput(subj *subject.Subject) components.TextInput {
	placeholder := "Type your answer..."
	if subj.Kind == subject.KindCharacter {
		placeholder = "Type the pinyin..."
	}
	return components.NewTextInput(placeholder, 40)
}

func (s *Screen) Init() tea.Cmd {
	ctrl, env := s.ctrl, s.env
	return tea.Batch(
		func() tea.Msg {
			return startedMsg{State: ctrl.Start(context.Background(), env.Now())}
		},
		s.input.Init(),
	)
}

func (s *Screen) Title() string {
	return s.ctrl.Subject().Name
}

// Status shows the streak and score in the header.
func (s *Screen) Status() string {
	if s.phase == phaseLoading {
		return ""
	}
	return fmt.Sprintf("★ %d   ✓ %d/%d", s.state.Streak, s.state.Correct, s.state.Asked)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseFeedback, phaseRoundDone:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseQuestion:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
		if s.ctrl.Subject().Kind != subject.KindMath {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Hint"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

// State returns the current session state.
func (s *Screen) State() session.State {
	return s.state
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		s.state = msg.State
		if s.state.Current == nil {
			s.phase = phaseError
			s.errMsg = "There is nothing to practice in this subject yet."
			return s, nil
		}
		s.phase = phaseQuestion
		return s, nil

	case answeredMsg:
		return s.handleAnswered(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseQuestion {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseError:
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case phaseFeedback:
		if n := s.env.RoundSize; n > 0 && s.state.Asked%n == 0 {
			s.phase = phaseRoundDone
			return s, nil
		}
		return s.next()

	case phaseRoundDone:
		s.roundBase = s.state
		return s.next()

	case phaseQuestion:
		switch msg.String() {
		case "enter":
			return s.submit()
		case "tab":
			s.showHint = true
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit records the typed answer. Empty input is ignored.
func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	answer := s.input.Value()
	if strings.TrimSpace(answer) == "" || s.pending {
		return s, nil
	}
	s.pending = true

	ctrl, env, st := s.ctrl, s.env, s.state
	return s, func() tea.Msg {
		next, out, err := ctrl.Answer(context.Background(), st, answer, env.Now())
		return answeredMsg{State: next, Outcome: out, Err: err}
	}
}

func (s *Screen) handleAnswered(msg answeredMsg) (screen.Screen, tea.Cmd) {
	s.pending = false
	if msg.Err != nil {
		s.phase = phaseError
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if msg.State.Degraded != nil && s.state.Degraded == nil {
		s.env.Log().Warn("progress not saved", "subject", msg.State.Subject, "error", msg.State.Degraded)
	}
	s.state = msg.State
	s.outcome = msg.Outcome
	s.input.Submit(msg.Outcome.Correct)
	s.phase = phaseFeedback
	return s, nil
}

func (s *Screen) next() (screen.Screen, tea.Cmd) {
	s.state = s.ctrl.Next(s.state, s.env.Now())
	s.outcome = session.Outcome{}
	s.showHint = false
	s.input = newInput(s.ctrl.Subject())
	s.phase = phaseQuestion
	return s, s.input.Init()
}
