// Package puzzle is the sliding-tile puzzle screen.
package puzzle

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidlearn/internal/klotski"
	"github.com/abhisek/kidlearn/internal/screen"
	"github.com/abhisek/kidlearn/internal/screens"
	"github.com/abhisek/kidlearn/internal/ui/components"
	"github.com/abhisek/kidlearn/internal/ui/layout"
	"github.com/abhisek/kidlearn/internal/ui/theme"
)

var directions = map[string]klotski.Direction{
	"up": klotski.Up, "k": klotski.Up,
	"down": klotski.Down, "j": klotski.Down,
	"left": klotski.Left, "h": klotski.Left,
	"right": klotski.Right, "l": klotski.Right,
}

// Screen lets the child slide tiles until the board is solved.
type Screen struct {
	env   *screens.Env
	board klotski.Board
	moves int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a puzzle screen with a shuffled n×n board.
func New(env *screens.Env, n int) *Screen {
	s := &Screen{env: env}
	s.shuffle(n)
	return s
}

func (s *Screen) shuffle(n int) {
	s.board = klotski.Shuffle(n, s.env.RNG())
	s.moves = 0
	s.env.Log().Debug("puzzle shuffled", "size", n, "inversions", s.board.Inversions())
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Puzzle" }

func (s *Screen) Status() string {
	return fmt.Sprintf("Moves %d", s.moves)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓←→", Description: "Slide"},
		{Key: "3-5", Description: "Size"},
		{Key: "N", Description: "New"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	switch key {
	case "n", "N":
		s.shuffle(s.board.N)
		return s, nil
	case "3", "4", "5":
		n, _ := strconv.Atoi(key)
		s.shuffle(n)
		return s, nil
	}

	if s.board.Solved() {
		return s, nil
	}
	if d, ok := directions[key]; ok {
		if next, err := s.board.Slide(d); err == nil {
			s.board = next
			s.moves++
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	var rows []string
	for r := 0; r < s.board.N; r++ {
		var cells []string
		for c := 0; c < s.board.N; c++ {
			t := s.board.Tiles[r*s.board.N+c]
			if t == 0 {
				cells = append(cells, theme.Blank.Render(""))
				continue
			}
			cells = append(cells, theme.Tile.Render(strconv.Itoa(t)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)

	var b strings.Builder
	b.WriteString("\n")
	if s.board.Solved() {
		b.WriteString(components.Banner(fmt.Sprintf("Solved in %d moves! Press N to play again.", s.moves), width))
	} else {
		b.WriteString(theme.Subtitle.Width(width).Render("Put the numbers in order."))
	}
	b.WriteString("\n\n")
	b.WriteString(layout.Center(grid, width))
	return b.String()
}
