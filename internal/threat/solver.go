// Package threat detects the opponent's developing five-in-a-row patterns and
// proposes the cells that block them.
//
// Every line of the board is scanned with a sliding five-cell window. A
// window that already holds a defender stone is dead. Otherwise its
// attacker-stone count, empty-cell count and the two cells just outside the
// window decide the severity of its empty cells. When a cell is nominated by
// several windows only its highest severity is kept.
//
// This is a local pattern scan, not a threat-space search: it does not see
// double threats spanning separate windows.
package threat

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/hailam/gomokuplay/internal/board"
)

// Severity ranks how urgently a cell must be blocked.
type Severity int

const (
	None        Severity = 0
	BrokenThree Severity = 60000   // three with one open end
	OpenThree   Severity = 120000  // three with both ends open
	SimpleFour  Severity = 500000  // four that can be closed at one cell
	OpenFour    Severity = 1000000 // four with both ends open: lost if not already answered
)

// String returns the pattern name.
func (s Severity) String() string {
	switch s {
	case OpenFour:
		return "open-four"
	case SimpleFour:
		return "simple-four"
	case OpenThree:
		return "open-three"
	case BrokenThree:
		return "broken-three"
	case None:
		return "none"
	}
	return "unknown"
}

// ThreatMove is a blocking cell and the severity of what it blocks.
type ThreatMove struct {
	Move     board.Move
	Severity Severity
}

// Solver is the stateless threat detector. The zero value is ready to use.
type Solver struct{}

// NewSolver creates a threat solver.
func NewSolver() *Solver {
	return &Solver{}
}

const windowSize = board.WinLength

// cell values seen from the attacker's side
const (
	cellEmpty    = 0
	cellAttacker = 1
	cellDefender = -1
)

// FindBlockingMoves returns the cells that block patterns of defender's
// opponent, sorted by descending severity. Cells of equal severity come in
// row-major order.
func (s *Solver) FindBlockingMoves(b *board.Board, defender board.Player) []ThreatMove {
	attacker := defender.Other()

	var grid [board.NumCells]int8
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			idx := board.NewMove(x, y).Index()
			switch {
			case b.HasStone(attacker, x, y):
				grid[idx] = cellAttacker
			case b.HasStone(defender, x, y):
				grid[idx] = cellDefender
			}
		}
	}

	best := make(map[int]Severity)
	for _, l := range board.Lines() {
		scanLine(&grid, l, best)
	}

	result := lo.MapToSlice(best, func(idx int, sev Severity) ThreatMove {
		return ThreatMove{Move: board.MoveFromIndex(idx), Severity: sev}
	})
	slices.SortFunc(result, func(a, b ThreatMove) int {
		if c := cmp.Compare(b.Severity, a.Severity); c != 0 {
			return c
		}
		return cmp.Compare(a.Move.Index(), b.Move.Index())
	})
	return result
}

// Lookup returns the blocking severities keyed by cell index, for callers
// that need per-cell access.
func (s *Solver) Lookup(b *board.Board, defender board.Player) map[int]Severity {
	moves := s.FindBlockingMoves(b, defender)
	return lo.SliceToMap(moves, func(t ThreatMove) (int, Severity) {
		return t.Move.Index(), t.Severity
	})
}

func scanLine(grid *[board.NumCells]int8, l board.Line, best map[int]Severity) {
	at := func(i int) int8 {
		x, y := l.At(i)
		return grid[board.NewMove(x, y).Index()]
	}

	for i := 0; i+windowSize <= l.Len; i++ {
		attackers, empties := 0, 0
		var gaps [windowSize]int
		blocked := false
		for j := 0; j < windowSize; j++ {
			switch at(i + j) {
			case cellDefender:
				blocked = true
			case cellAttacker:
				attackers++
			default:
				gaps[empties] = i + j
				empties++
			}
		}
		if blocked {
			continue
		}

		leftOpen := i > 0 && at(i-1) == cellEmpty
		rightOpen := i+windowSize < l.Len && at(i+windowSize) == cellEmpty

		var sev Severity
		switch {
		case attackers == 4 && empties == 1:
			sev = SimpleFour
			if leftOpen && rightOpen {
				sev = OpenFour
			}
		case attackers == 3 && empties == 2:
			switch {
			case leftOpen && rightOpen:
				sev = OpenThree
			case leftOpen || rightOpen:
				sev = BrokenThree
			default:
				continue
			}
		default:
			continue
		}

		for _, off := range gaps[:empties] {
			x, y := l.At(off)
			idx := board.NewMove(x, y).Index()
			if sev > best[idx] {
				best[idx] = sev
			}
		}
	}
}
