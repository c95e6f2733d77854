package engine

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/threat"
)

// Move ordering priorities
const (
	WinMoveScore  = 100_000_000 // Move completes five
	LosingPenalty = -10_000_000 // Opponent completes five next turn
	KillerScore1  = 1_000_000   // First killer move
	KillerScore2  = 500_000     // Second killer move
)

// MoveOrderer handles move ordering for the search.
type MoveOrderer struct {
	// Killer moves (moves that caused cutoffs), two per ply
	killers [MaxPly][2]board.Move

	history *HistoryHeuristic
	solver  *threat.Solver
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer() *MoveOrderer {
	mo := &MoveOrderer{
		history: NewHistoryHeuristic(),
		solver:  threat.NewSolver(),
	}
	mo.Clear()
	return mo
}

// Clear resets killers and history for a new search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	mo.history.Reset()
}

// History returns the history table used for ordering.
func (mo *MoveOrderer) History() *HistoryHeuristic {
	return mo.history
}

// UpdateKillers records a cutoff move at ply. The previous first killer
// moves to the second slot unless m already is the first killer.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	if mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// Killers returns the two killer moves stored at ply.
func (mo *MoveOrderer) Killers(ply int) [2]board.Move {
	if ply < 0 || ply >= MaxPly {
		return [2]board.Move{board.NoMove, board.NoMove}
	}
	return mo.killers[ply]
}

func (mo *MoveOrderer) killerBonus(m board.Move, ply int) int {
	k := mo.Killers(ply)
	if m == k[0] {
		return KillerScore1
	}
	if m == k[1] {
		return KillerScore2
	}
	return 0
}

// scoredMove pairs a move with its ordering score.
type scoredMove struct {
	move  board.Move
	score int
}

// OrderMoves returns the candidate moves of b sorted best first for current,
// the side to move. Each move is tried on the board and scored by outcome or
// by eval from me's point of view, then adjusted by centrality, threat
// severity, killers and history. The board is left unchanged.
func (mo *MoveOrderer) OrderMoves(b *board.Board, current, me board.Player, ply int, eval func(*board.Board, board.Player) int) []board.Move {
	candidates := b.CandidateMoves()
	threats := mo.solver.Lookup(b, current)
	opp := current.Other()

	scored := make([]scoredMove, 0, len(candidates))
	for _, m := range candidates {
		if !b.MakeMove(m.X, m.Y) {
			continue
		}

		var score int
		switch {
		case b.CheckWin(current):
			score = WinMoveScore
		case lo.ContainsBy(b.CandidateMoves(), func(r board.Move) bool {
			return b.CompletesFive(opp, r.X, r.Y)
		}):
			score = LosingPenalty
		default:
			score = eval(b, me)
		}

		b.UnmakeMove(m.X, m.Y)

		dx, dy := m.X-board.CenterX, m.Y-board.CenterY
		score -= dx*dx + dy*dy
		score += int(threats[m.Index()])
		score += mo.killerBonus(m, ply)
		score += mo.history.Get(m)

		scored = append(scored, scoredMove{move: m, score: score})
	}

	slices.SortStableFunc(scored, func(a, b scoredMove) int {
		return cmp.Compare(b.score, a.score)
	})
	return lo.Map(scored, func(s scoredMove, _ int) board.Move { return s.move })
}
