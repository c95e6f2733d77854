package protocol

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
)

func run(t *testing.T, p *Protocol, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := p.Run(strings.NewReader(input), &out)
	return out.String(), err
}

func TestStartAndOpeningTurn(t *testing.T) {
	p := New(engine.NewEngine(), 200, nil)

	out, err := run(t, p, "START 1\nTURN\n")
	require.NoError(t, err)
	assert.Equal(t, "OK\n7 7\n", out)
	assert.Equal(t, board.Black, p.Me())
	assert.Equal(t, board.BlackStone, p.Board().CellState(7, 7))
}

func TestPlaceThenTurnBlocksFive(t *testing.T) {
	p := New(engine.NewEngine(), 200, nil)

	// We are White. Black builds four on the anti-diagonal while our
	// answers are fed in as PLACE commands for the test.
	input := strings.Join([]string{
		"START 2",
		"PLACE 6 7",  // B
		"PLACE 0 0",  // W
		"PLACE 7 6",  // B
		"PLACE 0 2",  // W
		"PLACE 8 5",  // B
		"PLACE 10 3", // W
		"PLACE 9 4",  // B
		"TURN",
		"",
	}, "\n")

	out, err := run(t, p, input)
	require.NoError(t, err)
	assert.Equal(t, "OK\n5 8\n", out)
	assert.Equal(t, board.WhiteStone, p.Board().CellState(5, 8))
}

func TestTurnWithDifficultyPreset(t *testing.T) {
	eng := engine.NewEngine()
	eng.SetDifficulty(engine.Easy)
	p := New(eng, 0, nil)

	out, err := run(t, p, "START 2\nPLACE 7 7\nTURN\n")
	require.NoError(t, err)

	var x, y int
	_, err = fmt.Sscanf(strings.TrimPrefix(out, "OK\n"), "%d %d", &x, &y)
	require.NoError(t, err)
	assert.True(t, board.InBounds(x, y))
	assert.Equal(t, board.WhiteStone, p.Board().CellState(x, y))
}

func TestRejectedPlaceLeavesBoard(t *testing.T) {
	p := New(engine.NewEngine(), 200, nil)

	_, err := run(t, p, "START 1\nPLACE 6 6\nPLACE 20 3\n")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Board().TotalStones())
	assert.Equal(t, board.Black, p.Board().SideToMove())
}

func TestAboutDebugAndUnknown(t *testing.T) {
	p := New(engine.NewEngine(), 200, nil)

	out, err := run(t, p, "DEBUG hello there\nINFO timeout_turn 1000\nABOUT\n")
	require.NoError(t, err)
	assert.Equal(t, About+"\n", out)
}

func TestEndStopsReading(t *testing.T) {
	p := New(engine.NewEngine(), 200, nil)

	out, err := run(t, p, "START 1\nEND 1\nABOUT\n")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)
}

func TestMalformedCommand(t *testing.T) {
	p := New(engine.NewEngine(), 200, nil)

	for _, input := range []string{"START\n", "PLACE 3\n", "PLACE a b\n", "END x\n"} {
		_, err := run(t, p, input)
		assert.ErrorIs(t, err, ErrBadCommand, input)
	}
}

func TestPersistAndResume(t *testing.T) {
	store, err := storage.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	p := New(engine.NewEngine(), 200, store)
	out, err := run(t, p, "START 2\nPLACE 7 7\nTURN\n")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "OK\n"))

	g, err := store.LoadGame()
	require.NoError(t, err)
	assert.Equal(t, board.White, g.Me)
	require.Len(t, g.Moves, 2)
	assert.Equal(t, board.NewMove(7, 7), g.Moves[0])

	resumed := New(engine.NewEngine(), 200, store)
	require.NoError(t, resumed.Resume())
	assert.Equal(t, board.White, resumed.Me())
	assert.Equal(t, p.Board().Hash(), resumed.Board().Hash())

	// END records the result and clears the saved game.
	_, err = run(t, resumed, "END 2\n")
	require.NoError(t, err)
	_, err = store.LoadGame()
	assert.ErrorIs(t, err, storage.ErrNoGame)

	stats, err := store.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GamesPlayed)
	assert.Equal(t, 1, stats.Wins)
}

func TestResumeWithoutSavedGame(t *testing.T) {
	store, err := storage.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	p := New(engine.NewEngine(), 200, store)
	require.NoError(t, p.Resume())
	assert.Equal(t, board.NewBoard().Hash(), p.Board().Hash())
}
