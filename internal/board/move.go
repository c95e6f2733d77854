package board

import "fmt"

// Move is a cell coordinate, 0-indexed on both axes.
type Move struct {
	X, Y int
}

// NoMove represents an invalid or absent move.
var NoMove = Move{X: -1, Y: -1}

// NewMove creates a move at (x, y).
func NewMove(x, y int) Move {
	return Move{X: x, Y: y}
}

// IsValid reports whether the move lies on the board.
func (m Move) IsValid() bool {
	return InBounds(m.X, m.Y)
}

// String returns the move as "x,y".
func (m Move) String() string {
	if !m.IsValid() {
		return "none"
	}
	return fmt.Sprintf("%d,%d", m.X, m.Y)
}

// index returns the linear cell index. The move must be valid.
func (m Move) index() int {
	return cellIndex(m.X, m.Y)
}

// Index returns the row-major cell index of a valid move, or -1.
func (m Move) Index() int {
	if !m.IsValid() {
		return -1
	}
	return m.index()
}

// MoveFromIndex is the inverse of Move.Index.
func MoveFromIndex(idx int) Move {
	if idx < 0 || idx >= NumCells {
		return NoMove
	}
	x, y := cellXY(idx)
	return Move{X: x, Y: y}
}
