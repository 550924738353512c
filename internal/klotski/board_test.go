package klotski

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func mustParse(t *testing.T, s string) Board {
	t.Helper()
	b, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard(%q): %v", s, err)
	}
	return b
}

func TestGoalIsSolvedAndSolvable(t *testing.T) {
	for n := MinSize; n <= 5; n++ {
		g := Goal(n)
		if !g.Solved() || !g.Solvable() {
			t.Errorf("Goal(%d): solved=%v solvable=%v", n, g.Solved(), g.Solvable())
		}
	}
}

func TestTooSmallPanics(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	tests := []struct {
		name string
		fn   func()
	}{
		{"Goal(0)", func() { Goal(0) }},
		{"Goal(1)", func() { Goal(1) }},
		{"Shuffle(1)", func() { Shuffle(1, rng) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tt.name)
				}
			}()
			tt.fn()
		})
	}
}

func TestSolvable(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  bool
	}{
		{"3x3 goal", "1,2,3,4,5,6,7,8,0", true},
		{"3x3 one swap", "2,1,3,4,5,6,7,8,0", false},
		{"3x3 blank moved", "1,2,3,4,5,6,7,0,8", true},
		{"3x3 classic unsolvable", "1,2,3,4,5,6,8,7,0", false},
		{"4x4 goal", "1 2 3 4 5 6 7 8 9 10 11 12 13 14 15 0", true},
		{"4x4 14-15 swapped", "1 2 3 4 5 6 7 8 9 10 11 12 13 15 14 0", false},
		{"4x4 blank up one row", "1 2 3 4 5 6 7 8 9 10 11 0 13 14 15 12", true},
		{"2x2 rotated", "0,1,3,2", true},
		{"2x2 swapped", "2,1,3,0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustParse(t, tt.board).Solvable(); got != tt.want {
				t.Errorf("Solvable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewBoard_Rejects(t *testing.T) {
	tests := []struct {
		n     int
		tiles []int
	}{
		{1, []int{0}},
		{2, []int{0, 1, 2}},
		{2, []int{0, 1, 1, 3}},
	}
	for _, tt := range tests {
		if _, err := NewBoard(tt.n, tt.tiles); err == nil {
			t.Errorf("NewBoard(%d, %v) accepted", tt.n, tt.tiles)
		}
	}
	if _, err := ParseBoard("1,2,x,0"); err == nil {
		t.Error("ParseBoard accepted a non-numeric tile")
	}
}

func TestShuffle_AlwaysSolvable(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	for n := MinSize; n <= 5; n++ {
		for range 200 {
			b := Shuffle(n, rng)
			if !b.Solvable() || b.Solved() {
				t.Fatalf("n=%d board %v: solvable=%v solved=%v", n, b.Tiles, b.Solvable(), b.Solved())
			}
			if _, err := NewBoard(n, b.Tiles); err != nil {
				t.Fatalf("n=%d: %v", n, err)
			}
		}
	}
}

func TestMove(t *testing.T) {
	b := Goal(3)
	movable := b.Movable()
	slices.Sort(movable)
	if !slices.Equal(movable, []int{6, 8}) {
		t.Errorf("Movable() = %v, want [6 8]", movable)
	}

	next, err := b.Move(8)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3, 4, 5, 6, 7, 0, 8}; !slices.Equal(next.Tiles, want) {
		t.Errorf("after Move(8) = %v, want %v", next.Tiles, want)
	}
	if !b.Solved() {
		t.Error("Move modified the receiver")
	}
	if !next.Solvable() {
		t.Error("move broke solvability")
	}

	if _, err := b.Move(1); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Move(1) err = %v, want ErrIllegalMove", err)
	}
	if _, err := b.Move(42); err == nil {
		t.Error("Move(42) accepted")
	}

	back, err := next.Move(8)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Solved() {
		t.Error("moving 8 back should solve the board")
	}
}

func TestString(t *testing.T) {
	if got := mustParse(t, "1,2,3,0").String(); got != "1 2\n3 .\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestSlide(t *testing.T) {
	// 1 2 3
	// 4 . 5
	// 7 8 6
	b := mustParse(t, "1,2,3,4,0,5,7,8,6")

	tests := []struct {
		dir  Direction
		want []int
	}{
		{Up, []int{1, 2, 3, 4, 8, 5, 7, 0, 6}},
		{Left, []int{1, 2, 3, 4, 5, 0, 7, 8, 6}},
		{Down, []int{1, 0, 3, 4, 2, 5, 7, 8, 6}},
		{Right, []int{1, 2, 3, 0, 4, 5, 7, 8, 6}},
	}
	for _, tt := range tests {
		got, err := b.Slide(tt.dir)
		if err != nil {
			t.Fatalf("Slide(%v): %v", tt.dir, err)
		}
		if !slices.Equal(got.Tiles, tt.want) {
			t.Errorf("Slide(%v) = %v, want %v", tt.dir, got.Tiles, tt.want)
		}
	}

	left, _ := b.Slide(Left)
	solved, err := left.Slide(Up)
	if err != nil || !solved.Solved() {
		t.Fatalf("Left then Up should solve: %v %v", solved.Tiles, err)
	}
	for _, d := range []Direction{Up, Left} {
		if _, err := solved.Slide(d); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("Slide(%v) in the corner err = %v, want ErrIllegalMove", d, err)
		}
	}
}
