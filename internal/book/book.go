// Package book provides opening moves that are played without searching.
package book

import (
	"github.com/hailam/gomokuplay/internal/board"
)

// OpeningPreference lists the cells Black tries on its first move, in order.
// They extend the starting square diagonally away from the centre stones.
var OpeningPreference = []board.Move{
	{X: 7, Y: 7},
	{X: 7, Y: 4},
	{X: 4, Y: 7},
	{X: 4, Y: 4},
}

// openingStones is the number of stones in the starting position.
const openingStones = 4

// Book answers Black's first move from a fixed preference list.
type Book struct {
	preference []board.Move
}

// New creates a book using OpeningPreference.
func New() *Book {
	return &Book{preference: OpeningPreference}
}

// Probe returns the book move for me in b, if there is one.
//
// Only Black's first move is covered: when the board holds exactly the four
// starting stones and Black is to move as me, the first free cell of the
// preference list is played.
func (bk *Book) Probe(b *board.Board, me board.Player) (board.Move, bool) {
	if bk == nil || me != board.Black || b.SideToMove() != me {
		return board.NoMove, false
	}
	if b.TotalStones() != openingStones {
		return board.NoMove, false
	}

	for _, m := range bk.preference {
		if !b.IsOccupied(m.X, m.Y) {
			return m, true
		}
	}
	return board.NoMove, false
}
