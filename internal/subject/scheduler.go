package subject

import (
	"log/slog"

	"github.com/abhisek/kidlearn/internal/kv"
	"github.com/abhisek/kidlearn/internal/spacedrep"
)

// NewScheduler returns the review scheduler for s. Progress is stored
// under StorageKey(s.ID) and items are keyed with s.Key.
func NewScheduler(store kv.Store, s *Subject, logger *slog.Logger) *spacedrep.Scheduler[Item] {
	return spacedrep.NewScheduler(store, StorageKey(s.ID), s.Key, logger)
}
