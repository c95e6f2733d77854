package board

import (
	"fmt"
	"strings"
)

// Board is a 12x12 five-in-a-row position.
type Board struct {
	// Stone bitboards indexed by Player.
	stones [2]Bitboard

	sideToMove Player

	// Zobrist hash of (stones, sideToMove), maintained incrementally.
	hash uint64
}

// startStones is the fixed opening cross.
var startStones = [...]struct {
	x, y int
	p    Player
}{
	{6, 6, White}, {5, 5, White},
	{6, 5, Black}, {5, 6, Black},
}

// NewBoard returns the fixed starting position with Black to move.
func NewBoard() *Board {
	b := &Board{sideToMove: Black}
	for _, s := range startStones {
		idx := cellIndex(s.x, s.y)
		b.stones[s.p].Set(idx)
		b.hash ^= zobristStone[idx][s.p]
	}
	return b
}

// NewEmptyBoard returns a board with no stones and Black to move.
func NewEmptyBoard() *Board {
	return &Board{sideToMove: Black}
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

func (b *Board) occupied() Bitboard {
	return b.stones[Black].Union(&b.stones[White])
}

// MakeMove places a stone for the side to move at (x, y) and passes the turn.
// It returns false and leaves the board unchanged if the cell is off-board
// or occupied.
func (b *Board) MakeMove(x, y int) bool {
	if b.IsOccupied(x, y) {
		return false
	}
	idx := cellIndex(x, y)
	p := b.sideToMove
	b.stones[p].Set(idx)
	b.hash ^= zobristStone[idx][p]

	b.sideToMove = p.Other()
	b.hash ^= zobristSideToMove
	return true
}

// UnmakeMove reverts the most recent MakeMove at (x, y). The turn goes back
// to the side that played it and that side's stone is removed. Occupancy is
// not revalidated: callers must undo in exact LIFO order.
func (b *Board) UnmakeMove(x, y int) {
	b.sideToMove = b.sideToMove.Other()
	b.hash ^= zobristSideToMove

	idx := cellIndex(x, y)
	p := b.sideToMove
	b.stones[p].Clear(idx)
	b.hash ^= zobristStone[idx][p]
}

// IsOccupied reports whether (x, y) holds a stone. Off-board cells count as
// occupied.
func (b *Board) IsOccupied(x, y int) bool {
	if !InBounds(x, y) {
		return true
	}
	idx := cellIndex(x, y)
	return b.stones[Black].IsSet(idx) || b.stones[White].IsSet(idx)
}

// CellState returns the state of (x, y), or OffBoard.
func (b *Board) CellState(x, y int) Cell {
	if !InBounds(x, y) {
		return OffBoard
	}
	idx := cellIndex(x, y)
	switch {
	case b.stones[Black].IsSet(idx):
		return BlackStone
	case b.stones[White].IsSet(idx):
		return WhiteStone
	}
	return Empty
}

// HasStone reports whether p has a stone on (x, y).
func (b *Board) HasStone(p Player, x, y int) bool {
	return InBounds(x, y) && b.stones[p].IsSet(cellIndex(x, y))
}

// CountStones returns the number of stones p has on the board.
func (b *Board) CountStones(p Player) int {
	return b.stones[p].PopCount()
}

// TotalStones returns the number of stones on the board.
func (b *Board) TotalStones() int {
	return b.CountStones(Black) + b.CountStones(White)
}

// IsFull reports whether no empty cell remains.
func (b *Board) IsFull() bool {
	return b.TotalStones() == NumCells
}

// SideToMove returns the side whose turn it is.
func (b *Board) SideToMove() Player {
	return b.sideToMove
}

// Hash returns the Zobrist key of the position.
func (b *Board) Hash() uint64 {
	return b.hash
}

// ComputeHash recomputes the Zobrist key from scratch.
func (b *Board) ComputeHash() uint64 {
	var h uint64
	for p := Black; p <= White; p++ {
		b.stones[p].ForEach(func(idx int) {
			h ^= zobristStone[idx][p]
		})
	}
	if b.sideToMove == White {
		h ^= zobristSideToMove
	}
	return h
}

// lineLength counts p's contiguous stones through (x, y) along (dx, dy),
// counting (x, y) itself as one of them.
func (b *Board) lineLength(p Player, x, y, dx, dy int) int {
	own := &b.stones[p]
	count := 1
	for nx, ny := x+dx, y+dy; InBounds(nx, ny) && own.IsSet(cellIndex(nx, ny)); nx, ny = nx+dx, ny+dy {
		count++
	}
	for nx, ny := x-dx, y-dy; InBounds(nx, ny) && own.IsSet(cellIndex(nx, ny)); nx, ny = nx-dx, ny-dy {
		count++
	}
	return count
}

// CheckWin reports whether p has five or more contiguous stones in any
// direction.
func (b *Board) CheckWin(p Player) bool {
	won := false
	own := &b.stones[p]
	own.ForEach(func(idx int) {
		if won {
			return
		}
		x, y := cellXY(idx)
		for _, d := range Directions {
			if b.lineLength(p, x, y, d[0], d[1]) >= WinLength {
				won = true
				return
			}
		}
	})
	return won
}

// CompletesFive reports whether a stone of p placed on the empty cell (x, y)
// would make five or more in a row. The board is not modified.
func (b *Board) CompletesFive(p Player, x, y int) bool {
	if b.IsOccupied(x, y) {
		return false
	}
	for _, d := range Directions {
		if b.lineLength(p, x, y, d[0], d[1]) >= WinLength {
			return true
		}
	}
	return false
}

// LegalMoves returns all empty cells in row-major order.
func (b *Board) LegalMoves() []Move {
	occ := b.occupied()
	moves := make([]Move, 0, NumCells-occ.PopCount())
	for idx := 0; idx < NumCells; idx++ {
		if !occ.IsSet(idx) {
			moves = append(moves, MoveFromIndex(idx))
		}
	}
	return moves
}

// candidateMargin is how far the candidate box extends past the stones.
const candidateMargin = 2

// CandidateMoves returns the empty cells inside the stones' bounding box
// (grown by two cells and clamped) that touch at least one stone. An empty
// board yields only the centre; if nothing qualifies all legal moves are
// returned.
func (b *Board) CandidateMoves() []Move {
	occ := b.occupied()
	if occ.Empty() {
		return []Move{{X: CenterX, Y: CenterY}}
	}

	minX, minY, maxX, maxY := Size, Size, -1, -1
	occ.ForEach(func(idx int) {
		x, y := cellXY(idx)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	})
	minX = max(0, minX-candidateMargin)
	minY = max(0, minY-candidateMargin)
	maxX = min(Size-1, maxX+candidateMargin)
	maxY = min(Size-1, maxY+candidateMargin)

	var moves []Move
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if occ.IsSet(cellIndex(x, y)) {
				continue
			}
			if b.hasNeighbor(&occ, x, y) {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	if len(moves) == 0 {
		return b.LegalMoves()
	}
	return moves
}

func (b *Board) hasNeighbor(occ *Bitboard, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if InBounds(nx, ny) && occ.IsSet(cellIndex(nx, ny)) {
				return true
			}
		}
	}
	return false
}

// String renders the board with column and row labels. Black stones are
// 'B', White stones 'W' and empty cells '.'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < Size; x++ {
		fmt.Fprintf(&sb, "%2d ", x)
	}
	sb.WriteByte('\n')
	for y := 0; y < Size; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < Size; x++ {
			sb.WriteByte(' ')
			sb.WriteByte(b.CellState(x, y).Char())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
