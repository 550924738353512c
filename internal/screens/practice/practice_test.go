package practice

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kidlearn/internal/kv"
	"github.com/abhisek/kidlearn/internal/router"
	"github.com/abhisek/kidlearn/internal/screens"
	"github.com/abhisek/kidlearn/internal/subject"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestScreen(t *testing.T, id string) (*Screen, *kv.Memory) {
	t.Helper()
	reg, err := subject.Load("")
	require.NoError(t, err)
	subj, err := reg.Get(id)
	require.NoError(t, err)

	store := kv.NewMemory()
	env := &screens.Env{
		Registry: reg,
		Store:    store,
		Clock:    func() time.Time { return now },
		Rand:     rand.New(rand.NewPCG(1, 2)),
	}
	s := New(env, subj)
	s.Update(startedMsg{State: s.ctrl.Start(context.Background(), now)})
	require.Equal(t, phaseQuestion, s.phase)
	return s, store
}

func typeAnswer(s *Screen, answer string) {
	for _, r := range answer {
		s.Update(keyPress(r))
	}
}

func submit(t *testing.T, s *Screen) {
	t.Helper()
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestCorrectAnswerShowsFeedbackAndSaves(t *testing.T) {
	s, store := newTestScreen(t, subject.Math)
	typeAnswer(s, s.State().Current.Answer)
	submit(t, s)

	assert.Equal(t, phaseFeedback, s.phase)
	assert.True(t, s.outcome.Correct)
	assert.Equal(t, 1, s.State().Correct)
	assert.Contains(t, s.View(80, 20), "Correct!")
	assert.Equal(t, "★ 1   ✓ 1/1", s.Status())

	raw, ok, err := store.Get(context.Background(), subject.StorageKey(subject.Math))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"round":1`)
}

func TestWrongAnswerShowsExpected(t *testing.T) {
	s, _ := newTestScreen(t, subject.Math)
	expected := s.State().Current.Answer
	typeAnswer(s, "999")
	submit(t, s)

	assert.False(t, s.outcome.Correct)
	view := s.View(80, 20)
	assert.Contains(t, view, "Not quite")
	assert.Contains(t, view, "Correct answer: "+expected)
	assert.Equal(t, 0, s.State().Streak)
}

func TestEmptyAnswerIgnored(t *testing.T) {
	s, _ := newTestScreen(t, subject.Math)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, phaseQuestion, s.phase)
}

func TestAnyKeyAfterFeedbackAsksNext(t *testing.T) {
	s, _ := newTestScreen(t, subject.Math)
	first := *s.State().Current
	typeAnswer(s, first.Answer)
	submit(t, s)

	s.Update(keyPress(' '))
	assert.Equal(t, phaseQuestion, s.phase)
	require.NotNil(t, s.State().Current)
	assert.NotEqual(t, first.Text, s.State().Current.Text, "no immediate repeat")
	assert.Empty(t, s.input.Value())
}

func TestHintShownOnTab(t *testing.T) {
	s, _ := newTestScreen(t, subject.ChineseCharacters)
	hint := s.State().Current.Hint
	require.NotEmpty(t, hint)

	s.Update(specialKey(tea.KeyTab))
	assert.Contains(t, s.View(80, 20), hint)
}

func TestStorageFailureKeepsPlaying(t *testing.T) {
	s, store := newTestScreen(t, subject.Math)
	store.Fail(errors.New("quota exceeded"))

	typeAnswer(s, s.State().Current.Answer)
	submit(t, s)

	assert.Equal(t, phaseFeedback, s.phase)
	assert.False(t, s.outcome.Saved)
	assert.Error(t, s.State().Degraded)
	assert.True(t, strings.Contains(s.View(80, 20), "not being saved"))
}

func TestFailedStartupReadKeepsNotice(t *testing.T) {
	s, store := newTestScreen(t, subject.Math)
	ctx := context.Background()
	store.Fail(errors.New("transient"))
	s.Update(startedMsg{State: s.ctrl.Start(ctx, now)})
	store.Fail(nil)

	typeAnswer(s, s.State().Current.Answer)
	submit(t, s)

	assert.True(t, s.outcome.Correct)
	assert.False(t, s.outcome.Saved)
	assert.Contains(t, s.View(80, 20), "not being saved")

	_, ok, err := store.Get(ctx, subject.StorageKey(subject.Math))
	require.NoError(t, err)
	assert.False(t, ok, "nothing is written over unread history")
}

func TestErrorPhasePopsOnKey(t *testing.T) {
	s, _ := newTestScreen(t, subject.Math)
	s.phase = phaseError
	s.errMsg = "boom"

	_, cmd := s.Update(keyPress('x'))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestRoundBreak(t *testing.T) {
	s, _ := newTestScreen(t, subject.Math)
	s.env.RoundSize = 2

	for i := range 2 {
		typeAnswer(s, s.State().Current.Answer)
		submit(t, s)
		s.Update(keyPress(' '))
		if i == 0 {
			assert.Equal(t, phaseQuestion, s.phase)
		}
	}
	assert.Equal(t, phaseRoundDone, s.phase)
	assert.Contains(t, s.View(80, 20), "2 of 2 correct")

	s.Update(keyPress(' '))
	assert.Equal(t, phaseQuestion, s.phase)
	assert.Equal(t, 2, s.roundBase.Asked)
}
