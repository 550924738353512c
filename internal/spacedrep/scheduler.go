package spacedrep

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/kidlearn/internal/kv"
)

// KeyFunc extracts the stable identity of an item.
type KeyFunc[T any] func(T) string

// Scheduler tracks practice progress for one subject. The whole progress
// document lives under a single storage key and is rewritten in full on
// every mutation.
type Scheduler[T any] struct {
	store     kv.Store
	namespace string
	key       KeyFunc[T]
	logger    *slog.Logger
}

// NewScheduler creates a scheduler persisting under namespace in store.
// A nil logger discards warnings.
func NewScheduler[T any](store kv.Store, namespace string, key KeyFunc[T], logger *slog.Logger) *Scheduler[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler[T]{
		store:     store,
		namespace: namespace,
		key:       key,
		logger:    logger.With("namespace", namespace),
	}
}

// Namespace returns the storage key the scheduler owns.
func (s *Scheduler[T]) Namespace() string {
	return s.namespace
}

// Key returns the identity of item.
func (s *Scheduler[T]) Key(item T) string {
	return s.key(item)
}

// Load reads the subject's progress. The returned Progress is always
// usable: on a storage or decode failure it holds whatever could be
// recovered (possibly nothing) and the error says what went wrong.
func (s *Scheduler[T]) Load(ctx context.Context) (Progress, error) {
	raw, ok, err := s.store.Get(ctx, s.namespace)
	if err != nil {
		s.logger.Warn("progress read failed, starting empty", "error", err)
		return Progress{}, &StorageError{Op: "read", Key: s.namespace, Err: err}
	}
	if !ok {
		return Progress{}, nil
	}

	p, err := DecodeProgress(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable progress entries", "error", err, "kept", len(p))
		return p, &StorageError{Op: "decode", Key: s.namespace, Err: err}
	}
	return p, nil
}

// RecordAttempt folds one attempt at item into progress and persists the
// result. The input map is not modified. When the write fails the updated
// progress and record are still returned, together with a *StorageError.
func (s *Scheduler[T]) RecordAttempt(ctx context.Context, progress Progress, item T, correct bool, now time.Time) (Progress, Record, error) {
	next, rec, err := s.Apply(progress, item, correct, now)
	if err != nil {
		return progress, Record{}, err
	}
	if err := s.save(ctx, next); err != nil {
		return next, rec, err
	}
	return next, rec, nil
}

// Apply folds one attempt into a copy of progress without persisting it.
// Use it instead of RecordAttempt when progress is known to be incomplete,
// since saving it would overwrite the stored document.
func (s *Scheduler[T]) Apply(progress Progress, item T, correct bool, now time.Time) (Progress, Record, error) {
	key := s.key(item)
	if strings.TrimSpace(key) == "" {
		return progress, Record{}, ErrInvalidItemKey
	}
	next := progress.Clone()
	rec := next[key]
	rec.apply(correct, now)
	next[key] = rec
	return next, rec, nil
}

func (s *Scheduler[T]) save(ctx context.Context, p Progress) error {
	data, err := EncodeProgress(p)
	if err != nil {
		s.logger.Warn("progress encode failed, keeping in memory", "error", err)
		return &StorageError{Op: "write", Key: s.namespace, Err: err}
	}
	if err := s.store.Set(ctx, s.namespace, data); err != nil {
		s.logger.Warn("progress write failed, keeping in memory", "error", err)
		return &StorageError{Op: "write", Key: s.namespace, Err: err}
	}
	return nil
}

// Due returns the items of pool that have never been practiced or whose
// review time has passed, in pool order.
func (s *Scheduler[T]) Due(progress Progress, pool []T, now time.Time) []T {
	var due []T
	for _, item := range pool {
		rec, ok := progress[s.key(item)]
		if !ok || rec.IsDue(now) {
			due = append(due, item)
		}
	}
	return due
}

// Entry pairs a pool item with its progress for listing views.
type Entry[T any] struct {
	Item      T
	Key       string
	Record    Record
	Practiced bool
	Accuracy  int
	Due       bool
}

// Ranked returns every pool item with its stats, lowest accuracy first.
// Items with equal accuracy keep their pool order.
func (s *Scheduler[T]) Ranked(progress Progress, pool []T, now time.Time) []Entry[T] {
	entries := make([]Entry[T], 0, len(pool))
	for _, item := range pool {
		key := s.key(item)
		rec, ok := progress[key]
		entries = append(entries, Entry[T]{
			Item:      item,
			Key:       key,
			Record:    rec,
			Practiced: ok,
			Accuracy:  Accuracy(rec),
			Due:       !ok || rec.IsDue(now),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Accuracy < entries[j].Accuracy
	})
	return entries
}

// Summary aggregates progress over a pool.
type Summary struct {
	Items     int
	Practiced int
	Due       int
	Mastered  int
	Attempts  int
	Correct   int
}

// Accuracy returns the overall rounded percentage of correct attempts.
func (s Summary) Accuracy() int {
	return Accuracy(Record{TotalAttempts: s.Attempts, CorrectAttempts: s.Correct})
}

// Summarize counts practiced, due and mastered items in pool.
func (s *Scheduler[T]) Summarize(progress Progress, pool []T, now time.Time) Summary {
	sum := Summary{Items: len(pool)}
	for _, item := range pool {
		rec, ok := progress[s.key(item)]
		if !ok {
			sum.Due++
			continue
		}
		sum.Practiced++
		sum.Attempts += rec.TotalAttempts
		sum.Correct += rec.CorrectAttempts
		if rec.IsDue(now) {
			sum.Due++
		}
		if rec.Mastered() {
			sum.Mastered++
		}
	}
	return sum
}

// Reset deletes all progress for the subject. Callers should show a
// returned error to the user.
func (s *Scheduler[T]) Reset(ctx context.Context) error {
	if err := s.store.Remove(ctx, s.namespace); err != nil {
		s.logger.Warn("progress reset failed", "error", err)
		return &StorageError{Op: "reset", Key: s.namespace, Err: err}
	}
	s.logger.Info("progress reset")
	return nil
}
