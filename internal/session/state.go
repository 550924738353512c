// Package session runs a practice session over one subject. The session
// state is an explicit value owned by the caller; the controller takes a
// State and returns the next one.
package session

import (
	"github.com/abhisek/kidlearn/internal/spacedrep"
	"github.com/abhisek/kidlearn/internal/subject"
)

// State tracks the runtime state of a practice session.
type State struct {
	// ID identifies the session in logs.
	ID string

	// Subject is the subject being practiced.
	Subject string

	// Current is the question on screen, nil before the first pick.
	Current *subject.Item

	// Answered is true once Current has been answered.
	Answered bool

	// Asked and Correct count answers in this session.
	Asked   int
	Correct int

	// Streak is the current run of correct answers; BestStreak the longest.
	Streak     int
	BestStreak int

	// Progress is the in-memory progress document, authoritative for the
	// session even when persisting it fails.
	Progress spacedrep.Progress

	// Degraded holds the last storage error, nil while storage is healthy.
	Degraded error

	// LoadFailed is set when stored progress could not be read at start.
	// Progress then holds only this session's attempts, so nothing is
	// written back and Degraded stays set for the whole session.
	LoadFailed error
}

// Accuracy returns the session's rounded percentage of correct answers.
func (s State) Accuracy() int {
	return spacedrep.Accuracy(spacedrep.Record{TotalAttempts: s.Asked, CorrectAttempts: s.Correct})
}

// Outcome describes the result of answering the current question.
type Outcome struct {
	Correct  bool
	Expected string
	Record   spacedrep.Record
	Saved    bool
}
