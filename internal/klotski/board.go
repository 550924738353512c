// Package klotski models the sliding-tile puzzle board.
package klotski

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ErrIllegalMove is returned when a tile is not next to the blank.
var ErrIllegalMove = errors.New("klotski: tile is not adjacent to the blank")

// Board is an N×N grid in row-major order. Tiles are numbered 1..N²-1 and
// 0 marks the blank.
type Board struct {
	N     int
	Tiles []int
}

// MinSize is the smallest board that can be shuffled.
const MinSize = 2

// NewBoard validates tiles as an n×n permutation of 0..n²-1.
func NewBoard(n int, tiles []int) (Board, error) {
	if n < MinSize {
		return Board{}, fmt.Errorf("klotski: size %d too small", n)
	}
	if len(tiles) != n*n {
		return Board{}, fmt.Errorf("klotski: %d tiles for a %dx%d board", len(tiles), n, n)
	}
	seen := make([]bool, n*n)
	for _, t := range tiles {
		if t < 0 || t >= n*n || seen[t] {
			return Board{}, fmt.Errorf("klotski: tiles are not a permutation of 0..%d", n*n-1)
		}
		seen[t] = true
	}
	return Board{N: n, Tiles: append([]int(nil), tiles...)}, nil
}

// Goal returns the solved board: tiles in order with the blank last.
// It panics if n is below MinSize.
func Goal(n int) Board {
	if n < MinSize {
		panic(fmt.Sprintf("klotski: size %d too small", n))
	}
	tiles := make([]int, n*n)
	for i := range tiles[:len(tiles)-1] {
		tiles[i] = i + 1
	}
	return Board{N: n, Tiles: tiles}
}

// ParseBoard reads a comma- or space-separated tile list. The size is the
// square root of the tile count.
func ParseBoard(s string) (Board, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	tiles := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Board{}, fmt.Errorf("klotski: bad tile %q", f)
		}
		tiles = append(tiles, v)
	}
	n := 0
	for n*n < len(tiles) {
		n++
	}
	return NewBoard(n, tiles)
}

func (b Board) blank() int {
	for i, t := range b.Tiles {
		if t == 0 {
			return i
		}
	}
	return -1
}

// Inversions counts tile pairs out of order, ignoring the blank.
func (b Board) Inversions() int {
	inv := 0
	for i := 0; i < len(b.Tiles); i++ {
		if b.Tiles[i] == 0 {
			continue
		}
		for j := i + 1; j < len(b.Tiles); j++ {
			if b.Tiles[j] != 0 && b.Tiles[i] > b.Tiles[j] {
				inv++
			}
		}
	}
	return inv
}

// Solvable reports whether the goal can be reached by sliding tiles. For
// odd N the inversion count must be even; for even N the inversion count
// plus the blank's row counted from the bottom (1-based) must be odd.
func (b Board) Solvable() bool {
	inv := b.Inversions()
	if b.N%2 == 1 {
		return inv%2 == 0
	}
	rowFromBottom := b.N - b.blank()/b.N
	return (inv+rowFromBottom)%2 == 1
}

// Solved reports whether b is in the goal arrangement.
func (b Board) Solved() bool {
	for i, t := range b.Tiles[:len(b.Tiles)-1] {
		if t != i+1 {
			return false
		}
	}
	return b.Tiles[len(b.Tiles)-1] == 0
}

// Movable returns the tiles that can slide into the blank.
func (b Board) Movable() []int {
	z := b.blank()
	r, c := z/b.N, z%b.N
	var out []int
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nr, nc := r+d[0], c+d[1]
		if nr >= 0 && nr < b.N && nc >= 0 && nc < b.N {
			out = append(out, b.Tiles[nr*b.N+nc])
		}
	}
	return out
}

// Move slides tile into the blank and returns the new board.
func (b Board) Move(tile int) (Board, error) {
	z := b.blank()
	for i, t := range b.Tiles {
		if t != tile || tile == 0 {
			continue
		}
		dr, dc := i/b.N-z/b.N, i%b.N-z%b.N
		if dr*dr+dc*dc != 1 {
			return b, ErrIllegalMove
		}
		next := Board{N: b.N, Tiles: append([]int(nil), b.Tiles...)}
		next.Tiles[z], next.Tiles[i] = tile, 0
		return next, nil
	}
	return b, fmt.Errorf("klotski: no tile %d", tile)
}

// Direction is the way a tile slides into the blank.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Slide moves the tile that sits on the opposite side of the blank in
// direction d. Sliding Up moves the tile below the blank upward.
func (b Board) Slide(d Direction) (Board, error) {
	z := b.blank()
	r, c := z/b.N, z%b.N
	switch d {
	case Up:
		r++
	case Down:
		r--
	case Left:
		c++
	case Right:
		c--
	}
	if r < 0 || r >= b.N || c < 0 || c >= b.N {
		return b, ErrIllegalMove
	}
	return b.Move(b.Tiles[r*b.N+c])
}

// Shuffle returns a random solvable board that is not already solved.
// An unsolvable permutation is repaired by swapping two non-blank tiles,
// which flips the inversion parity. It panics if n is below MinSize.
func Shuffle(n int, rng *rand.Rand) Board {
	b := Goal(n)
	for {
		rng.Shuffle(len(b.Tiles), func(i, j int) {
			b.Tiles[i], b.Tiles[j] = b.Tiles[j], b.Tiles[i]
		})
		if !b.Solvable() {
			i, j := 0, 1
			if b.Tiles[i] == 0 {
				i = 2
			} else if b.Tiles[j] == 0 {
				j = 2
			}
			b.Tiles[i], b.Tiles[j] = b.Tiles[j], b.Tiles[i]
		}
		if !b.Solved() {
			return b
		}
	}
}

// String renders the board as a grid with "." for the blank.
func (b Board) String() string {
	w := len(strconv.Itoa(b.N*b.N - 1))
	var sb strings.Builder
	for i, t := range b.Tiles {
		cell := "."
		if t != 0 {
			cell = strconv.Itoa(t)
		}
		sb.WriteString(strings.Repeat(" ", w-len(cell)))
		sb.WriteString(cell)
		if i%b.N == b.N-1 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
