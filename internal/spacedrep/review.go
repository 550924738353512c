package spacedrep

import (
	"math"
	"time"
)

// Record holds the practice statistics and schedule for one item.
// NextReviewAt is always LastAttemptAt + IntervalForRound(Round).
type Record struct {
	TotalAttempts   int       `json:"totalAttempts"`
	CorrectAttempts int       `json:"correctAttempts"`
	Round           int       `json:"round"`
	LastAttemptAt   time.Time `json:"lastAttemptAt"`
	NextReviewAt    time.Time `json:"nextReviewAt"`
}

// apply folds one attempt into the record. Round walks one rung per
// attempt and saturates at both ends of the ladder.
func (r *Record) apply(correct bool, now time.Time) {
	r.TotalAttempts++
	if correct {
		r.CorrectAttempts++
		if r.Round < MaxRound {
			r.Round++
		}
	} else if r.Round > 0 {
		r.Round--
	}
	r.LastAttemptAt = now
	r.derive()
}

func (r *Record) derive() {
	r.Round = clampRound(r.Round)
	r.NextReviewAt = r.LastAttemptAt.Add(IntervalForRound(r.Round))
}

// IsDue returns true if the item is at or past its review time.
func (r Record) IsDue(now time.Time) bool {
	return !now.Before(r.NextReviewAt)
}

// Mastered returns true once the item sits on the longest interval.
func (r Record) Mastered() bool {
	return r.Round >= MaxRound
}

// Interval returns the interval of the record's current round.
func (r Record) Interval() time.Duration {
	return IntervalForRound(r.Round)
}

// Accuracy returns the rounded percentage of correct attempts, or 0 when
// the item has never been attempted.
func Accuracy(r Record) int {
	if r.TotalAttempts <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(r.CorrectAttempts) / float64(r.TotalAttempts)))
	return min(max(pct, 0), 100)
}

// Progress maps item keys to their records. A missing key means the item
// has never been practiced.
type Progress map[string]Record

// Clone returns an independent copy of p. A nil Progress clones to an
// empty, non-nil map.
func (p Progress) Clone() Progress {
	out := make(Progress, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Lookup returns the record for key and whether one exists.
func (p Progress) Lookup(key string) (Record, bool) {
	r, ok := p[key]
	return r, ok
}
