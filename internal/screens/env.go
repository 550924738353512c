// Package screens holds the services shared by the TUI screens.
package screens

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/kidlearn/internal/kv"
	"github.com/abhisek/kidlearn/internal/session"
	"github.com/abhisek/kidlearn/internal/subject"
)

// Env carries what screens need to load content and progress.
type Env struct {
	Registry *subject.Registry
	Store    kv.Store
	Logger   *slog.Logger
	Clock    func() time.Time
	Rand     *rand.Rand

	// RoundSize is the number of answers between round-complete
	// breaks in practice. Zero disables breaks.
	RoundSize int
}

// Now returns the current time from Clock, or time.Now when unset.
func (e *Env) Now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

// Log returns the logger, discarding output when unset.
func (e *Env) Log() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// Controller creates a practice controller for s.
func (e *Env) Controller(s *subject.Subject) *session.Controller {
	return session.NewController(s, subject.NewScheduler(e.Store, s, e.Log()), e.RNG(), e.Log())
}

// RNG returns Rand, creating a time-seeded source on first use.
func (e *Env) RNG() *rand.Rand {
	if e.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		e.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return e.Rand
}
