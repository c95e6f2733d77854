package selfplay

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/engine"
)

var fast = engine.SearchLimits{Depth: 1}

func TestPlayRendersAndFinishes(t *testing.T) {
	var out bytes.Buffer
	res, err := Play(context.Background(), engine.NewEngine(), Options{Limits: fast, Out: &out})
	require.NoError(t, err)

	require.NotEmpty(t, res.Moves)
	assert.Equal(t, board.NewMove(7, 7), res.Moves[0])
	assert.Len(t, lo.Uniq(res.Moves), len(res.Moves))
	assert.Zero(t, res.Fallbacks)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Starting self-play game."))
	assert.Contains(t, text, "Move 1: Black plays (7,7)")

	// Replaying the moves reproduces the reported outcome.
	b := board.NewBoard()
	for _, m := range res.Moves {
		require.True(t, b.MakeMove(m.X, m.Y))
	}
	if res.Draw {
		assert.True(t, b.IsFull())
	} else {
		assert.True(t, b.CheckWin(res.Winner))
	}
}

func TestPlayStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Play(ctx, engine.NewEngine(), Options{Limits: fast})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatch(t *testing.T) {
	tally, results, err := Match(context.Background(), 3, 2, fast)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 3, tally.BlackWins+tally.WhiteWins+tally.Draws)
	assert.Equal(t, lo.SumBy(results, func(r Result) int { return len(r.Moves) }), tally.Moves)
	assert.Contains(t, tally.String(), "Black")
}
