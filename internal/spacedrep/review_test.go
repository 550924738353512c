package spacedrep

import (
	"math/rand/v2"
	"testing"
	"time"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestApply_FirstCorrect(t *testing.T) {
	var rec Record
	rec.apply(true, t0)

	if rec.Round != 1 {
		t.Errorf("Round = %d, want 1", rec.Round)
	}
	if rec.TotalAttempts != 1 || rec.CorrectAttempts != 1 {
		t.Errorf("attempts = %d/%d, want 1/1", rec.CorrectAttempts, rec.TotalAttempts)
	}
	if want := t0.Add(30 * time.Minute); !rec.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", rec.NextReviewAt, want)
	}
}

func TestApply_WrongStepsDown(t *testing.T) {
	rec := Record{TotalAttempts: 5, CorrectAttempts: 3, Round: 3}
	now := t0.Add(1000 * time.Minute)
	rec.apply(false, now)

	if rec.Round != 2 {
		t.Errorf("Round = %d, want 2", rec.Round)
	}
	if rec.CorrectAttempts != 3 {
		t.Errorf("CorrectAttempts = %d, want 3", rec.CorrectAttempts)
	}
	if rec.TotalAttempts != 6 {
		t.Errorf("TotalAttempts = %d, want 6", rec.TotalAttempts)
	}
	if want := t0.Add(1060 * time.Minute); !rec.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", rec.NextReviewAt, want)
	}
}

func TestApply_WrongAtRoundZeroSaturates(t *testing.T) {
	rec := Record{TotalAttempts: 1, Round: 0}
	rec.apply(false, t0)

	if rec.Round != 0 {
		t.Errorf("Round = %d, want 0", rec.Round)
	}
	if want := t0.Add(5 * time.Minute); !rec.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", rec.NextReviewAt, want)
	}
}

func TestApply_CorrectAtMaxRoundSaturates(t *testing.T) {
	rec := Record{TotalAttempts: 9, CorrectAttempts: 9, Round: MaxRound}
	rec.apply(true, t0)

	if rec.Round != MaxRound {
		t.Errorf("Round = %d, want %d", rec.Round, MaxRound)
	}
	if want := t0.Add(7200 * time.Minute); !rec.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want %v", rec.NextReviewAt, want)
	}
}

func TestApply_RandomWalkInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	var rec Record
	now := t0
	for i := 0; i < 2000; i++ {
		prevRound := rec.Round
		rec.apply(rng.IntN(3) > 0, now)

		if rec.Round < 0 || rec.Round > MaxRound {
			t.Fatalf("step %d: round %d out of bounds", i, rec.Round)
		}
		if d := rec.Round - prevRound; d < -1 || d > 1 {
			t.Fatalf("step %d: round moved by %d", i, d)
		}
		if want := rec.LastAttemptAt.Add(IntervalForRound(rec.Round)); !rec.NextReviewAt.Equal(want) {
			t.Fatalf("step %d: NextReviewAt = %v, want %v", i, rec.NextReviewAt, want)
		}
		if rec.CorrectAttempts > rec.TotalAttempts {
			t.Fatalf("step %d: correct %d > total %d", i, rec.CorrectAttempts, rec.TotalAttempts)
		}
		if a := Accuracy(rec); a < 0 || a > 100 {
			t.Fatalf("step %d: accuracy %d out of bounds", i, a)
		}
		now = now.Add(time.Duration(rng.IntN(600)) * time.Minute)
	}
}

func TestIsDue(t *testing.T) {
	rec := Record{NextReviewAt: t0}
	if rec.IsDue(t0.Add(-time.Second)) {
		t.Error("expected not due before review time")
	}
	if !rec.IsDue(t0) {
		t.Error("expected due at review time")
	}
	if !rec.IsDue(t0.Add(time.Hour)) {
		t.Error("expected due after review time")
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct, total int
		want           int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{5, 5, 100},
	}
	for _, tt := range tests {
		got := Accuracy(Record{CorrectAttempts: tt.correct, TotalAttempts: tt.total})
		if got != tt.want {
			t.Errorf("Accuracy(%d/%d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestProgressClone(t *testing.T) {
	var nilProgress Progress
	if c := nilProgress.Clone(); c == nil {
		t.Fatal("Clone of nil must be non-nil")
	}

	p := Progress{"日": {TotalAttempts: 1}}
	c := p.Clone()
	c["月"] = Record{TotalAttempts: 2}
	if _, ok := p.Lookup("月"); ok {
		t.Error("clone mutation leaked into original")
	}
}
