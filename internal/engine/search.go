package engine

import (
	"math"
	"time"

	"github.com/hailam/gomokuplay/internal/board"
)

// Search constants
const (
	WinScore = 100_000_000
	MaxPly   = 64

	// Root values above this are forced wins; the root stops at once.
	forcedWinThreshold = 90_000_000

	rootAlpha = math.MinInt + 1
	rootBeta  = math.MaxInt - 1
)

// Searcher owns the mutable state of one move selection: the position being
// searched, the transposition table, killers, history and the clock. A new
// search resets all of it; nothing is shared between engines.
type Searcher struct {
	board *board.Board
	me    board.Player

	tt      *TranspositionTable
	orderer *MoveOrderer
	evals   *EvalCache
	timer   *TimeManager

	rootDepth int
	nodes     uint64
	stopped   bool
}

// NewSearcher creates a searcher with empty tables.
func NewSearcher() *Searcher {
	return &Searcher{
		tt:      NewTranspositionTable(),
		orderer: NewMoveOrderer(),
		evals:   NewEvalCache(1),
		timer:   NewTimeManager(),
	}
}

// Reset clears every table and arms the clock for a new search of b on
// behalf of me.
func (s *Searcher) Reset(b *board.Board, me board.Player, limit time.Duration) {
	s.board = b
	s.me = me
	s.tt.Clear()
	s.orderer.Clear()
	s.evals.Clear()
	s.timer.Init(limit)
	s.rootDepth = 0
	s.nodes = 0
	s.stopped = false
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// timeUp polls the deadline. Once it has passed it stays passed.
func (s *Searcher) timeUp() bool {
	if !s.stopped && s.timer.ShouldStop() {
		s.stopped = true
	}
	return s.stopped
}

func (s *Searcher) evaluate() int {
	return s.evals.Evaluate(s.board, s.me)
}

// orderMoves orders the candidate moves for current at ply.
func (s *Searcher) orderMoves(current board.Player, ply int) []board.Move {
	return s.orderer.OrderMoves(s.board, current, s.me, ply, s.evals.Evaluate)
}

// alphaBeta searches the position to depth with current to move. Scores are
// from the searching side's point of view: that side maximizes and the
// opponent minimizes. Every move is undone before returning. When the clock
// runs out the return value is 0 and must be discarded by the caller.
func (s *Searcher) alphaBeta(depth, alpha, beta int, current board.Player, ply int) int {
	if s.timeUp() {
		return 0
	}
	s.nodes++

	b := s.board
	if b.CheckWin(s.me) {
		return WinScore - (s.rootDepth - depth)
	}
	if b.CheckWin(s.me.Other()) {
		return -WinScore + (s.rootDepth - depth)
	}

	if depth <= 0 {
		return s.evaluate()
	}

	hash := b.Hash()
	if entry, ok := s.tt.Probe(hash); ok && entry.Depth >= depth {
		switch entry.Flag {
		case TTExact:
			return entry.Score
		case TTLowerBound:
			alpha = max(alpha, entry.Score)
		case TTUpperBound:
			beta = min(beta, entry.Score)
		}
		if alpha >= beta {
			return entry.Score
		}
	}

	alphaOrig, betaOrig := alpha, beta

	moves := s.orderMoves(current, ply)
	if len(moves) == 0 {
		return s.evaluate()
	}

	maximizing := current == s.me
	bestMove := board.NoMove
	bestValue := math.MaxInt
	if maximizing {
		bestValue = math.MinInt
	}

	for _, m := range moves {
		if s.timeUp() {
			break
		}

		b.MakeMove(m.X, m.Y)
		val := s.alphaBeta(depth-1, alpha, beta, current.Other(), ply+1)
		b.UnmakeMove(m.X, m.Y)

		if s.timeUp() {
			return 0
		}

		if maximizing {
			if val > bestValue {
				bestValue = val
				bestMove = m
			}
			alpha = max(alpha, val)
		} else {
			if val < bestValue {
				bestValue = val
				bestMove = m
			}
			beta = min(beta, val)
		}

		if alpha >= beta {
			s.orderer.UpdateKillers(m, ply)
			s.orderer.History().Increment(m, depth)
			break
		}
	}

	if s.stopped {
		return 0
	}

	s.tt.Store(hash, depth, bestValue, boundFlag(bestValue, alphaOrig, betaOrig), bestMove)
	return bestValue
}
