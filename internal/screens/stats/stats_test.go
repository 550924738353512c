package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kidlearn/internal/kv"
	"github.com/abhisek/kidlearn/internal/screens"
	"github.com/abhisek/kidlearn/internal/subject"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newTestEnv(t *testing.T) (*screens.Env, *kv.Memory) {
	t.Helper()
	reg, err := subject.Load("")
	require.NoError(t, err)
	store := kv.NewMemory()
	return &screens.Env{Registry: reg, Store: store, Clock: func() time.Time { return now }}, store
}

func record(t *testing.T, env *screens.Env, id, text string, correct ...bool) {
	t.Helper()
	subj, err := env.Registry.Get(id)
	require.NoError(t, err)
	item, ok := subj.Find(text)
	require.True(t, ok, text)

	sched := subject.NewScheduler(env.Store, subj, nil)
	ctx := context.Background()
	progress, err := sched.Load(ctx)
	require.NoError(t, err)
	for _, c := range correct {
		progress, _, err = sched.RecordAttempt(ctx, progress, item, c, now)
		require.NoError(t, err)
	}
}

func TestLoadRanksWeakestFirst(t *testing.T) {
	env, _ := newTestEnv(t)
	record(t, env, subject.ChineseCharacters, "日", true, true)
	record(t, env, subject.ChineseCharacters, "月", false, true)

	s := New(env, subject.ChineseCharacters)
	s.Update(s.Init()())

	require.NotEmpty(t, s.entries)
	assert.Equal(t, 2, s.summary.Practiced)
	assert.Equal(t, 75, s.summary.Accuracy())

	var practiced []string
	for _, e := range s.entries {
		if e.Practiced {
			practiced = append(practiced, e.Item.Text)
		}
	}
	assert.Equal(t, []string{"月", "日"}, practiced)
	assert.Contains(t, s.View(100, 40), "Characters")
}

func TestSwitchSubject(t *testing.T) {
	env, _ := newTestEnv(t)
	s := New(env, subject.Math)
	s.Update(s.Init()())

	_, cmd := s.Update(keyPress('l'))
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Equal(t, subject.ChineseCharacters, s.current().ID)

	_, cmd = s.Update(keyPress('h'))
	s.Update(cmd())
	_, cmd = s.Update(keyPress('h'))
	s.Update(cmd())
	assert.Equal(t, subject.EnglishWords, s.current().ID, "wraps around")
}

func TestStaleLoadIgnored(t *testing.T) {
	env, _ := newTestEnv(t)
	s := New(env, subject.Math)
	s.Update(loadedMsg{Subject: subject.EnglishWords, Summary: s.summary})
	assert.Nil(t, s.entries)
}

func TestResetNeedsConfirmation(t *testing.T) {
	env, store := newTestEnv(t)
	record(t, env, subject.Math, "2+3", true)
	s := New(env, subject.Math)
	s.Update(s.Init()())

	_, cmd := s.Update(keyPress('r'))
	assert.Nil(t, cmd)
	assert.True(t, s.confirming)

	_, cmd = s.Update(keyPress('n'))
	assert.Nil(t, cmd)
	_, ok, _ := store.Get(context.Background(), subject.StorageKey(subject.Math))
	assert.True(t, ok, "declined reset keeps progress")

	s.Update(keyPress('r'))
	_, cmd = s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	_, cmd = s.Update(cmd())
	assert.Equal(t, "Progress erased.", s.notice)
	_, ok, _ = store.Get(context.Background(), subject.StorageKey(subject.Math))
	assert.False(t, ok)
	require.NotNil(t, cmd)
}

func TestResetFailureIsShown(t *testing.T) {
	env, store := newTestEnv(t)
	s := New(env, subject.Math)
	s.Update(s.Init()())
	store.Fail(errors.New("locked"))

	s.Update(keyPress('r'))
	_, cmd := s.Update(keyPress('y'))
	s.Update(cmd())
	assert.Contains(t, s.notice, "Could not reset")
	assert.Contains(t, s.View(100, 40), "locked")
}
