package engine

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/book"
	"github.com/hailam/gomokuplay/internal/threat"
)

// SearchInfo contains information about a completed search depth.
type SearchInfo struct {
	Depth     int
	Score     int
	Move      board.Move
	Nodes     uint64
	Time      time.Duration
	TTEntries int
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = no limit)
	MoveTime time.Duration // Time for this move (0 = default, or unlimited with a depth)
}

// DefaultMoveTime is used when neither a time nor a depth limit is given.
const DefaultMoveTime = 2 * time.Second

// unlimitedMoveTime stands in for "no deadline" on depth-limited searches.
const unlimitedMoveTime = 24 * time.Hour

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply, 300ms
	Medium                   // 4 ply, 1s
	Hard                     // deepen until 1.8s pass
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 2, MoveTime: 300 * time.Millisecond},
	Medium: {Depth: 4, MoveTime: time.Second},
	Hard:   {MoveTime: 1800 * time.Millisecond},
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// ParseDifficulty converts a difficulty name (easy, medium, hard) to its level.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Engine selects moves for one side of a game. An Engine is not safe for
// concurrent use; run one per goroutine.
type Engine struct {
	searcher   *Searcher
	book       *book.Book
	solver     *threat.Solver
	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new engine with the built-in opening book.
func NewEngine() *Engine {
	return &Engine{
		searcher:   NewSearcher(),
		book:       book.New(),
		solver:     threat.NewSolver(),
		difficulty: Medium,
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the engine difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Search finds a move for me using the limits of the current difficulty.
func (e *Engine) Search(b *board.Board, me board.Player) board.Move {
	return e.SearchWithLimits(b, me, DifficultySettings[e.difficulty])
}

// FindBestMove finds a move for me within timeLimitMs milliseconds. It
// returns board.NoMove only when there is nothing to play.
func (e *Engine) FindBestMove(b *board.Board, me board.Player, timeLimitMs int) board.Move {
	return e.SearchWithLimits(b, me, SearchLimits{MoveTime: time.Duration(timeLimitMs) * time.Millisecond})
}

// SearchWithLimits finds a move for me with specific search limits.
//
// Forcing moves are played without searching, in this order: the opening
// book, a move that wins at once, a block of the opponent's winning cell,
// and a block of a four found by the threat solver. Otherwise the candidate
// moves are searched with iterative deepening until the time or depth limit
// is reached. The board is returned to its original state.
func (e *Engine) SearchWithLimits(b *board.Board, me board.Player, limits SearchLimits) board.Move {
	moveTime := limits.MoveTime
	if moveTime <= 0 {
		moveTime = DefaultMoveTime
		if limits.Depth > 0 {
			moveTime = unlimitedMoveTime
		}
	}
	maxDepth := MaxPly
	if limits.Depth > 0 {
		maxDepth = min(limits.Depth, MaxPly)
	}

	if b.SideToMove() != me {
		log.Warn().Stringer("me", me).Stringer("to_move", b.SideToMove()).Msg("searching for the side not to move")
	}

	s := e.searcher
	s.Reset(b, me, moveTime)

	if m, ok := e.book.Probe(b, me); ok {
		log.Debug().Stringer("move", m).Msg("book move")
		return m
	}

	legal := b.LegalMoves()
	if m, ok := lo.Find(legal, func(m board.Move) bool {
		return b.CompletesFive(me, m.X, m.Y)
	}); ok {
		log.Debug().Stringer("move", m).Msg("winning move")
		return m
	}

	opp := me.Other()
	if blocks := lo.Filter(legal, func(m board.Move, _ int) bool {
		return b.CompletesFive(opp, m.X, m.Y)
	}); len(blocks) > 0 {
		m := e.bestBlock(b, me, blocks)
		log.Debug().Stringer("move", m).Int("threats", len(blocks)).Msg("blocking five")
		return m
	}

	if threats := e.solver.FindBlockingMoves(b, me); len(threats) > 0 && threats[0].Severity >= threat.SimpleFour {
		log.Debug().Stringer("move", threats[0].Move).Stringer("severity", threats[0].Severity).Msg("blocking four")
		return threats[0].Move
	}

	rootMoves := s.orderMoves(me, 0)
	if len(rootMoves) == 0 {
		return board.NoMove
	}

	bestMove := board.NoMove
	for depth := 1; depth <= maxDepth; depth++ {
		if s.timeUp() {
			break
		}
		s.rootDepth = depth

		values, win, completed := e.searchRoot(rootMoves, depth)
		if win.IsValid() {
			log.Debug().Int("depth", depth).Stringer("move", win).Msg("forced win")
			return win
		}
		if !completed {
			break
		}

		order := make([]int, len(rootMoves))
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(i, j int) int {
			return cmp.Compare(values[j], values[i])
		})
		sorted := make([]board.Move, len(rootMoves))
		for i, idx := range order {
			sorted[i] = rootMoves[idx]
		}
		rootMoves = sorted
		bestMove = rootMoves[0]
		score := values[order[0]]

		info := SearchInfo{
			Depth:     depth,
			Score:     score,
			Move:      bestMove,
			Nodes:     s.Nodes(),
			Time:      s.timer.Elapsed(),
			TTEntries: s.tt.Len(),
		}
		log.Debug().
			Int("depth", info.Depth).
			Str("score", ScoreString(info.Score)).
			Stringer("move", info.Move).
			Uint64("nodes", info.Nodes).
			Dur("elapsed", info.Time).
			Int("tt", info.TTEntries).
			Float64("tt_hit_pct", s.tt.HitRate()).
			Float64("eval_hit_pct", s.evals.HitRate()).
			Msg("depth complete")
		if e.OnInfo != nil {
			e.OnInfo(info)
		}
	}

	if !bestMove.IsValid() {
		bestMove = rootMoves[0]
	}
	return bestMove
}

// searchRoot searches every root move to depth with a full window. It
// returns the value of each move, a move whose value is a forced win (or
// NoMove), and whether the sweep finished before the deadline.
func (e *Engine) searchRoot(rootMoves []board.Move, depth int) ([]int, board.Move, bool) {
	s := e.searcher
	b := s.board
	values := make([]int, len(rootMoves))

	for i, m := range rootMoves {
		if s.timeUp() {
			return values, board.NoMove, false
		}

		b.MakeMove(m.X, m.Y)
		val := s.alphaBeta(depth-1, rootAlpha, rootBeta, s.me.Other(), 1)
		b.UnmakeMove(m.X, m.Y)

		if s.timeUp() {
			return values, board.NoMove, false
		}
		if val > forcedWinThreshold {
			return values, m, true
		}
		values[i] = val
	}
	return values, board.NoMove, true
}

// bestBlock picks the blocking cell that leaves me with the best static
// evaluation. Ties keep the earliest cell.
func (e *Engine) bestBlock(b *board.Board, me board.Player, blocks []board.Move) board.Move {
	best := blocks[0]
	bestScore := math.MinInt
	for _, m := range blocks {
		if !b.MakeMove(m.X, m.Y) {
			continue
		}
		score := Evaluate(b, me)
		b.UnmakeMove(m.X, m.Y)
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best
}

// ScoreString converts a score to a human-readable string.
func ScoreString(score int) string {
	if score > forcedWinThreshold && score <= WinScore {
		return "win in " + strconv.Itoa(WinScore-score) + " ply"
	}
	if score < -forcedWinThreshold && score >= -WinScore {
		return "loss in " + strconv.Itoa(WinScore+score) + " ply"
	}
	return strconv.Itoa(score)
}
