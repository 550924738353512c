package spacedrep

import "time"

// Ladder is the escalating review schedule, indexed by round.
// Round 0 is a freshly introduced item; the last rung is five days.
var Ladder = []time.Duration{
	5 * time.Minute,
	30 * time.Minute,
	60 * time.Minute,
	180 * time.Minute,
	360 * time.Minute,
	720 * time.Minute,
	1440 * time.Minute,
	2880 * time.Minute,
	4320 * time.Minute,
	7200 * time.Minute,
}

// MaxRound is the highest round index in Ladder.
const MaxRound = 9

// IntervalForRound returns the review interval for round, clamping
// out-of-range rounds to the ends of the ladder.
func IntervalForRound(round int) time.Duration {
	return Ladder[clampRound(round)]
}

func clampRound(round int) int {
	if round < 0 {
		return 0
	}
	if round > MaxRound {
		return MaxRound
	}
	return round
}
