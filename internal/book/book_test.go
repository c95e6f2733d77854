package book

import (
	"testing"

	"github.com/matryer/is"

	"github.com/hailam/gomokuplay/internal/board"
)

func TestOpeningMoveForBlack(t *testing.T) {
	is := is.New(t)

	m, ok := New().Probe(board.NewBoard(), board.Black)
	is.True(ok)
	is.Equal(m, board.NewMove(7, 7))
}

func TestOpeningSkipsOccupiedPreferences(t *testing.T) {
	is := is.New(t)

	// Same stone count as the start, but (7,7) and (7,4) are taken.
	b := board.NewEmptyBoard()
	is.True(b.MakeMove(7, 7)) // B
	is.True(b.MakeMove(7, 4)) // W
	is.True(b.MakeMove(0, 0)) // B
	is.True(b.MakeMove(0, 1)) // W
	is.Equal(b.SideToMove(), board.Black)

	m, ok := New().Probe(b, board.Black)
	is.True(ok)
	is.Equal(m, board.NewMove(4, 7))
}

func TestNoOpeningMove(t *testing.T) {
	is := is.New(t)
	bk := New()

	// White is not to move at the start.
	_, ok := bk.Probe(board.NewBoard(), board.White)
	is.True(!ok)

	// Once Black has played, the rule no longer applies.
	b := board.NewBoard()
	is.True(b.MakeMove(7, 7))
	_, ok = bk.Probe(b, board.White)
	is.True(!ok)
}

func TestAllPreferencesTaken(t *testing.T) {
	is := is.New(t)

	b := board.NewEmptyBoard()
	is.True(b.MakeMove(7, 7)) // B
	is.True(b.MakeMove(7, 4)) // W
	is.True(b.MakeMove(4, 7)) // B
	is.True(b.MakeMove(4, 4)) // W

	_, ok := New().Probe(b, board.Black)
	is.True(!ok)
}

func TestNilBook(t *testing.T) {
	is := is.New(t)

	var bk *Book
	_, ok := bk.Probe(board.NewBoard(), board.Black)
	is.True(!ok)
}
