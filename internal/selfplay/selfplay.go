// Package selfplay runs games in which one engine plays both sides.
package selfplay

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/engine"
)

// Options controls a self-play game.
type Options struct {
	Limits engine.SearchLimits
	Out    io.Writer     // board is rendered here after every move; nil for silent
	Delay  time.Duration // pause after each rendered move
}

// Result describes a finished game.
type Result struct {
	Winner    board.Player
	Draw      bool
	Moves     []board.Move
	Fallbacks int // moves where the engine had no usable answer
}

func (r Result) String() string {
	if r.Draw {
		return fmt.Sprintf("draw after %d moves", len(r.Moves))
	}
	return fmt.Sprintf("%s wins after %d moves", r.Winner, len(r.Moves))
}

// Play runs one game from the starting position until a side has five in a
// row or the board is full.
func Play(ctx context.Context, eng *engine.Engine, opts Options) (Result, error) {
	b := board.NewBoard()
	var res Result

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Starting self-play game. Initial board:\n%s", b)
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		switch {
		case b.CheckWin(board.Black):
			res.Winner = board.Black
			return res, nil
		case b.CheckWin(board.White):
			res.Winner = board.White
			return res, nil
		}
		legal := b.LegalMoves()
		if len(legal) == 0 {
			res.Draw = true
			return res, nil
		}

		current := b.SideToMove()
		m := eng.SearchWithLimits(b, current, opts.Limits)
		if !m.IsValid() || b.IsOccupied(m.X, m.Y) {
			log.Warn().Stringer("move", m).Msg("engine move unusable, playing first legal cell")
			m = legal[0]
			res.Fallbacks++
		}
		b.MakeMove(m.X, m.Y)
		res.Moves = append(res.Moves, m)

		if opts.Out != nil {
			fmt.Fprintf(opts.Out, "Move %d: %s plays (%d,%d)\n%s", len(res.Moves), current, m.X, m.Y, b)
			if opts.Delay > 0 {
				time.Sleep(opts.Delay)
			}
		}
	}
}

// Tally sums the results of a match.
type Tally struct {
	BlackWins int
	WhiteWins int
	Draws     int
	Moves     int
}

func (t Tally) String() string {
	return fmt.Sprintf("Black %d, White %d, draws %d (%d moves)", t.BlackWins, t.WhiteWins, t.Draws, t.Moves)
}

// Match plays games silent games, at most parallel at once, each with its
// own engine.
func Match(ctx context.Context, games, parallel int, limits engine.SearchLimits) (Tally, []Result, error) {
	results := make([]Result, games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, parallel))
	for i := range games {
		g.Go(func() error {
			r, err := Play(ctx, engine.NewEngine(), Options{Limits: limits})
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = r
			log.Debug().Int("game", i+1).Stringer("result", r).Msg("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, nil, err
	}

	t := Tally{
		BlackWins: lo.CountBy(results, func(r Result) bool { return !r.Draw && r.Winner == board.Black }),
		WhiteWins: lo.CountBy(results, func(r Result) bool { return !r.Draw && r.Winner == board.White }),
		Draws:     lo.CountBy(results, func(r Result) bool { return r.Draw }),
		Moves:     lo.SumBy(results, func(r Result) int { return len(r.Moves) }),
	}
	return t, results, nil
}
