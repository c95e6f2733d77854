package board

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

// place puts a stone for p at (x, y), spending filler moves in the far
// corner columns whenever it is the other side's turn.
func place(t *testing.T, b *Board, p Player, x, y int, filler *[]Move) {
	t.Helper()
	for b.SideToMove() != p {
		if len(*filler) == 0 {
			t.Fatal("ran out of filler moves")
		}
		f := (*filler)[0]
		*filler = (*filler)[1:]
		if !b.MakeMove(f.X, f.Y) {
			t.Fatalf("filler move %v rejected", f)
		}
	}
	if !b.MakeMove(x, y) {
		t.Fatalf("move %d,%d rejected", x, y)
	}
}

// fillerMoves returns far-edge cells laid out in a checkerboard so no side
// can ever line up five of them.
func fillerMoves() []Move {
	var f []Move
	for y := 0; y < Size; y += 2 {
		f = append(f, NewMove(11, y))
	}
	for y := 1; y < Size; y += 2 {
		f = append(f, NewMove(10, y))
	}
	return f
}

func TestStartingPosition(t *testing.T) {
	is := is.New(t)
	b := NewBoard()

	is.Equal(b.SideToMove(), Black)
	is.Equal(b.CountStones(Black), 2)
	is.Equal(b.CountStones(White), 2)
	is.Equal(b.CellState(6, 6), WhiteStone)
	is.Equal(b.CellState(5, 5), WhiteStone)
	is.Equal(b.CellState(6, 5), BlackStone)
	is.Equal(b.CellState(5, 6), BlackStone)
	is.Equal(b.CellState(0, 0), Empty)
	is.Equal(b.CellState(-1, 3), OffBoard)
	is.Equal(b.Hash(), b.ComputeHash())
	is.True(!b.CheckWin(Black))
	is.True(!b.CheckWin(White))
}

func TestMakeMoveRejectsInvalidCells(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	hash := b.Hash()

	is.True(!b.MakeMove(6, 6))  // occupied by White
	is.True(!b.MakeMove(6, 5))  // occupied by Black
	is.True(!b.MakeMove(-1, 0)) // off board
	is.True(!b.MakeMove(0, 12)) // off board
	is.Equal(b.Hash(), hash)
	is.Equal(b.SideToMove(), Black)
	is.Equal(b.TotalStones(), 4)
}

func TestMakeUnmakeRestoresState(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	before := b.Copy()

	is.True(b.MakeMove(3, 4))
	is.Equal(b.SideToMove(), White)
	is.Equal(b.CellState(3, 4), BlackStone)
	is.True(b.Hash() != before.Hash())
	is.Equal(b.Hash(), b.ComputeHash())

	is.True(b.MakeMove(7, 7))
	is.Equal(b.CellState(7, 7), WhiteStone)

	b.UnmakeMove(7, 7)
	b.UnmakeMove(3, 4)
	is.Equal(b.Hash(), before.Hash())
	is.Equal(b.SideToMove(), before.SideToMove())
	is.Equal(b.stones, before.stones)
	is.True(!b.IsOccupied(3, 4))
}

func TestHashDependsOnStateNotHistory(t *testing.T) {
	is := is.New(t)
	a := NewBoard()
	b := NewBoard()

	for _, m := range []Move{{1, 1}, {2, 2}, {3, 3}, {4, 4}} {
		is.True(a.MakeMove(m.X, m.Y))
	}
	// Same stones for each side, different order.
	for _, m := range []Move{{3, 3}, {4, 4}, {1, 1}, {2, 2}} {
		is.True(b.MakeMove(m.X, m.Y))
	}
	is.Equal(a.Hash(), b.Hash())

	// Same stones, other side to move: different key.
	c := a.Copy()
	c.sideToMove = c.sideToMove.Other()
	is.True(c.ComputeHash() != a.Hash())
}

func TestCheckWin(t *testing.T) {
	is := is.New(t)
	filler := fillerMoves()
	b := NewBoard()

	for x := 0; x < 4; x++ {
		place(t, b, Black, x, 9, &filler)
	}
	is.True(!b.CheckWin(Black))

	// Gap at x=4: four plus a stone beyond the gap is not a win.
	place(t, b, Black, 5, 9, &filler)
	is.True(!b.CheckWin(Black))

	place(t, b, Black, 4, 9, &filler)
	is.True(b.CheckWin(Black))
	is.True(!b.CheckWin(White))
}

func TestCheckWinDiagonals(t *testing.T) {
	is := is.New(t)

	down := NewEmptyBoard()
	up := NewEmptyBoard()
	for i := 0; i < 5; i++ {
		down.stones[White].Set(cellIndex(2+i, 3+i))
		up.stones[White].Set(cellIndex(2+i, 9-i))
	}
	is.True(down.CheckWin(White))
	is.True(up.CheckWin(White))
	is.True(!down.CheckWin(Black))
}

func TestCompletesFive(t *testing.T) {
	is := is.New(t)
	b := NewEmptyBoard()
	for _, y := range []int{1, 2, 4, 5} {
		b.stones[Black].Set(cellIndex(8, y))
	}
	is.True(b.CompletesFive(Black, 8, 3))
	is.True(!b.CompletesFive(White, 8, 3))
	is.True(!b.CompletesFive(Black, 8, 6))
	is.True(!b.CompletesFive(Black, 8, 1)) // occupied
	is.True(!b.CheckWin(Black))            // board untouched
}

func TestLegalMovesRowMajor(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	moves := b.LegalMoves()

	is.Equal(len(moves), NumCells-4)
	is.Equal(moves[0], NewMove(0, 0))
	is.Equal(moves[1], NewMove(1, 0))
	for i := 1; i < len(moves); i++ {
		is.True(moves[i-1].Index() < moves[i].Index())
	}
	for _, m := range moves {
		is.True(!b.IsOccupied(m.X, m.Y))
	}
}

func TestCandidateMoves(t *testing.T) {
	is := is.New(t)

	empty := NewEmptyBoard()
	is.Equal(empty.CandidateMoves(), []Move{{X: CenterX, Y: CenterY}})

	b := NewBoard()
	cands := b.CandidateMoves()
	// The 4x4 block around the 2x2 cross minus the four stones.
	is.Equal(len(cands), 12)
	for _, m := range cands {
		is.True(!b.IsOccupied(m.X, m.Y))
		is.True(m.X >= 4 && m.X <= 7 && m.Y >= 4 && m.Y <= 7)
	}
	is.Equal(cands[0], NewMove(4, 4))
}

func TestCandidateMovesFullBoardFallback(t *testing.T) {
	is := is.New(t)
	b := NewEmptyBoard()
	for idx := 0; idx < NumCells; idx++ {
		b.stones[Player(idx%2)].Set(idx)
	}
	is.True(b.IsFull())
	is.Equal(len(b.CandidateMoves()), 0)
	is.Equal(len(b.LegalMoves()), 0)
}

func TestForEachRun(t *testing.T) {
	is := is.New(t)
	b := NewEmptyBoard()
	// Row 0: W W W at x=0..2 (left edge closed, right open).
	for x := 0; x < 3; x++ {
		b.stones[White].Set(cellIndex(x, 0))
	}

	var found []Run
	b.ForEachRun(White, func(r Run) {
		if r.Length == 3 {
			found = append(found, r)
		}
	})
	is.Equal(len(found), 1)
	is.True(!found[0].LeftOpen)
	is.True(found[0].RightOpen)
	is.Equal(found[0].OpenEnds(), 1)
}

func TestLinesCoverEveryCellFourTimes(t *testing.T) {
	is := is.New(t)
	var seen [NumCells]int
	for _, l := range Lines() {
		for i := 0; i < l.Len; i++ {
			x, y := l.At(i)
			is.True(InBounds(x, y))
			seen[cellIndex(x, y)]++
		}
	}
	for idx, n := range seen {
		if n != 4 {
			t.Errorf("cell %v covered %d times, want 4", MoveFromIndex(idx), n)
		}
	}
}

func TestString(t *testing.T) {
	is := is.New(t)
	s := NewBoard().String()
	is.Equal(strings.Count(s, "B"), 2)
	is.Equal(strings.Count(s, "W"), 2)
	is.Equal(strings.Count(s, "\n"), Size+1)
}
