// Package board implements the 12x12 five-in-a-row board using chunked bitboards.
package board

// Board geometry.
const (
	Size     = 12
	NumCells = Size * Size

	// WinLength is the number of contiguous stones that wins the game.
	WinLength = 5

	// CenterX and CenterY locate the cell used as the opening point on an
	// empty board and as the reference for centrality scoring.
	CenterX = 5
	CenterY = 5
)

// InBounds reports whether (x, y) lies on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// cellIndex returns the row-major linear index of (x, y).
func cellIndex(x, y int) int {
	return y*Size + x
}

// cellXY is the inverse of cellIndex.
func cellXY(idx int) (int, int) {
	return idx % Size, idx / Size
}
