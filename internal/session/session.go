package session

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/kidlearn/internal/spacedrep"
	"github.com/abhisek/kidlearn/internal/subject"
)

// ErrNoQuestion is returned when Answer is called with nothing to answer.
var ErrNoQuestion = errors.New("session: no open question")

// Controller drives practice over one subject.
type Controller struct {
	subject   *subject.Subject
	scheduler *spacedrep.Scheduler[subject.Item]
	rng       *rand.Rand
	logger    *slog.Logger
}

// NewController creates a controller. A nil rng uses a time-seeded source;
// a nil logger discards output.
func NewController(subj *subject.Subject, sched *spacedrep.Scheduler[subject.Item], rng *rand.Rand, logger *slog.Logger) *Controller {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		subject:   subj,
		scheduler: sched,
		rng:       rng,
		logger:    logger.With("subject", subj.ID),
	}
}

// Subject returns the subject being practiced.
func (c *Controller) Subject() *subject.Subject {
	return c.subject
}

// Scheduler returns the subject's scheduler.
func (c *Controller) Scheduler() *spacedrep.Scheduler[subject.Item] {
	return c.scheduler
}

// Start loads progress and picks the first question. A failed load
// degrades the session to empty progress rather than aborting it.
func (c *Controller) Start(ctx context.Context, now time.Time) State {
	progress, err := c.scheduler.Load(ctx)
	st := State{
		ID:       uuid.NewString(),
		Subject:  c.subject.ID,
		Progress: progress,
		Degraded: err,
	}
	if spacedrep.ReadFailed(err) {
		st.LoadFailed = err
	}
	c.logger.Info("session started", "session", st.ID, "known", len(progress), "degraded", err != nil)
	return c.Next(st, now)
}

// Candidates returns the items eligible now: the due items, or the whole
// pool when nothing is due.
func (c *Controller) Candidates(st State, now time.Time) []subject.Item {
	due := c.scheduler.Due(st.Progress, c.subject.Items, now)
	if len(due) == 0 {
		return c.subject.Items
	}
	return due
}

// Next picks a random candidate for the next question, avoiding an
// immediate repeat when there is a choice.
func (c *Controller) Next(st State, now time.Time) State {
	cands := c.Candidates(st, now)
	if st.Current != nil && len(cands) > 1 {
		currentKey := c.scheduler.Key(*st.Current)
		filtered := make([]subject.Item, 0, len(cands))
		for _, it := range cands {
			if c.scheduler.Key(it) != currentKey {
				filtered = append(filtered, it)
			}
		}
		if len(filtered) > 0 {
			cands = filtered
		}
	}
	if len(cands) == 0 {
		st.Current = nil
		return st
	}
	pick := cands[c.rng.IntN(len(cands))]
	st.Current = &pick
	st.Answered = false
	return st
}

// Answer checks answer against the current question and records the
// attempt. Storage failures do not fail the answer: the outcome is kept
// in State.Progress and the error is stored in State.Degraded. After a
// failed start-up read nothing is persisted.
func (c *Controller) Answer(ctx context.Context, st State, answer string, now time.Time) (State, Outcome, error) {
	if st.Current == nil || st.Answered {
		return st, Outcome{}, ErrNoQuestion
	}
	item := *st.Current
	correct := item.Check(answer)

	var (
		progress spacedrep.Progress
		rec      spacedrep.Record
		err      error
	)
	if st.LoadFailed != nil {
		progress, rec, err = c.scheduler.Apply(st.Progress, item, correct, now)
	} else {
		progress, rec, err = c.scheduler.RecordAttempt(ctx, st.Progress, item, correct, now)
	}
	if errors.Is(err, spacedrep.ErrInvalidItemKey) {
		return st, Outcome{}, err
	}

	st.Progress = progress
	st.Degraded = err
	if st.LoadFailed != nil {
		st.Degraded = st.LoadFailed
	}
	st.Answered = true
	st.Asked++
	if correct {
		st.Correct++
		st.Streak++
		st.BestStreak = max(st.BestStreak, st.Streak)
	} else {
		st.Streak = 0
	}

	c.logger.Debug("answer recorded",
		"session", st.ID,
		"item", c.scheduler.Key(item),
		"correct", correct,
		"round", rec.Round,
		"next_review", rec.NextReviewAt,
	)

	return st, Outcome{
		Correct:  correct,
		Expected: item.Answer,
		Record:   rec,
		Saved:    st.Degraded == nil,
	}, nil
}
