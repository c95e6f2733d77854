package board

// Player identifies one side of the game. Black always moves first.
type Player uint8

const (
	Black Player = iota
	White
)

// Other returns the opposing side.
func (p Player) Other() Player {
	return p ^ 1
}

// String returns the side name.
func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "NoPlayer"
	}
}

// Stone returns the cell state produced by a stone of this side.
func (p Player) Stone() Cell {
	if p == Black {
		return BlackStone
	}
	return WhiteStone
}

// Cell is the state of a single board cell.
type Cell int8

const (
	OffBoard   Cell = -1
	Empty      Cell = 0
	BlackStone Cell = 1
	WhiteStone Cell = 2
)

// Char returns the one-character rendering used by String.
func (c Cell) Char() byte {
	switch c {
	case BlackStone:
		return 'B'
	case WhiteStone:
		return 'W'
	default:
		return '.'
	}
}
