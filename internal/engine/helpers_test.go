package engine

import (
	"testing"

	"github.com/hailam/gomokuplay/internal/board"
)

type stone struct {
	p    board.Player
	x, y int
}

// fillers are far-edge cells in a checkerboard so they never line up.
func fillers() []board.Move {
	var f []board.Move
	for y := 0; y < board.Size; y += 2 {
		f = append(f, board.NewMove(11, y))
	}
	for y := 1; y < board.Size; y += 2 {
		f = append(f, board.NewMove(10, y))
	}
	return f
}

// setup plays stones on top of the starting position, inserting filler moves
// whenever the wrong side is to move, then hands the move to toMove.
func setup(t *testing.T, toMove board.Player, stones ...stone) *board.Board {
	t.Helper()
	filler := fillers()
	b := board.NewBoard()

	pass := func(p board.Player) {
		for b.SideToMove() != p {
			f := filler[0]
			filler = filler[1:]
			if !b.MakeMove(f.X, f.Y) {
				t.Fatalf("filler %v rejected", f)
			}
		}
	}

	for _, s := range stones {
		pass(s.p)
		if !b.MakeMove(s.x, s.y) {
			t.Fatalf("stone %d,%d rejected", s.x, s.y)
		}
	}
	pass(toMove)
	return b
}
