// Package protocol implements the line-based game protocol spoken over
// standard input and output:
//
//	START <1|2>   new game; 1 means we play Black, 2 White. Reply: OK
//	PLACE <x> <y> the opponent played at (x, y)
//	TURN          our move. Reply: <x> <y>
//	END <field>   the game is over; field names the winner
//	DEBUG ...     ignored
//	ABOUT         reply with the engine name and version
//
// Unknown commands are skipped.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
)

// ErrBadCommand is returned when a known command has missing or malformed
// arguments. It ends the session.
var ErrBadCommand = errors.New("bad command")

// About is the reply to ABOUT.
const About = `name="gomokuplay", version="1.0", country="Unknown"`

// Protocol holds the board of record and answers protocol commands.
type Protocol struct {
	engine      *engine.Engine
	store       *storage.Storage
	timeLimitMs int

	board *board.Board
	me    board.Player
	game  *storage.GameRecord
}

// New creates a protocol handler. A timeLimitMs of 0 searches with the
// engine's difficulty preset instead. store may be nil to disable
// persistence.
func New(eng *engine.Engine, timeLimitMs int, store *storage.Storage) *Protocol {
	p := &Protocol{
		engine:      eng,
		store:       store,
		timeLimitMs: timeLimitMs,
	}
	p.reset(board.Black)
	return p
}

func (p *Protocol) reset(me board.Player) {
	p.board = board.NewBoard()
	p.me = me
	p.game = &storage.GameRecord{Me: me, Started: time.Now()}
}

// Board returns the board of record.
func (p *Protocol) Board() *board.Board {
	return p.board
}

// Me returns the side the engine plays.
func (p *Protocol) Me() board.Player {
	return p.me
}

// Resume restores the saved game in progress. Without a store, or when
// nothing is saved, the fresh board is kept.
func (p *Protocol) Resume() error {
	if p.store == nil {
		return nil
	}
	g, err := p.store.LoadGame()
	if errors.Is(err, storage.ErrNoGame) {
		return nil
	}
	if err != nil {
		return err
	}
	b, err := g.Replay()
	if err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	p.board, p.me, p.game = b, g.Me, g
	log.Info().Int("moves", len(g.Moves)).Stringer("me", g.Me).Msg("resumed saved game")
	return nil
}

// Run reads commands from r and writes replies to w until END, end of
// input, or a malformed command.
func (p *Protocol) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToUpper(parts[0])
		args := parts[1:]
		log.Debug().Str("cmd", cmd).Strs("args", args).Msg("command")

		var err error
		switch cmd {
		case "START":
			err = p.handleStart(args, w)
		case "PLACE":
			err = p.handlePlace(args)
		case "TURN":
			err = p.handleTurn(w)
		case "END":
			return p.handleEnd(args)
		case "DEBUG":
			log.Debug().Str("text", strings.Join(args, " ")).Msg("debug message")
		case "ABOUT":
			_, err = fmt.Fprintln(w, About)
		default:
			log.Debug().Str("cmd", cmd).Msg("unknown command ignored")
		}
		if err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

func parseInts(cmd string, args []string, n int) ([]int, error) {
	if len(args) < n {
		return nil, fmt.Errorf("%w: %s needs %d arguments", ErrBadCommand, cmd, n)
	}
	vals := make([]int, n)
	for i := range vals {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s argument %q", ErrBadCommand, cmd, args[i])
		}
		vals[i] = v
	}
	return vals, nil
}

func (p *Protocol) handleStart(args []string, w io.Writer) error {
	vals, err := parseInts("START", args, 1)
	if err != nil {
		return err
	}
	me := board.Black
	if vals[0] != 1 {
		me = board.White
	}
	p.reset(me)
	p.persist()
	log.Info().Stringer("me", me).Msg("new game")

	_, err = fmt.Fprintln(w, "OK")
	return err
}

func (p *Protocol) handlePlace(args []string) error {
	vals, err := parseInts("PLACE", args, 2)
	if err != nil {
		return err
	}
	x, y := vals[0], vals[1]
	if !p.apply(board.NewMove(x, y)) {
		log.Warn().Int("x", x).Int("y", y).Msg("opponent move rejected")
	}
	return nil
}

func (p *Protocol) handleTurn(w io.Writer) error {
	var move board.Move
	if p.timeLimitMs > 0 {
		move = p.engine.FindBestMove(p.board, p.me, p.timeLimitMs)
	} else {
		move = p.engine.Search(p.board, p.me)
	}
	if !move.IsValid() || p.board.IsOccupied(move.X, move.Y) {
		move = p.fallbackMove()
		log.Warn().Stringer("move", move).Msg("engine had no move, using fallback")
	}

	if move.IsValid() {
		p.apply(move)
	} else {
		log.Error().Msg("no legal moves left")
		move = board.NewMove(0, 0)
	}

	_, err := fmt.Fprintf(w, "%d %d\n", move.X, move.Y)
	return err
}

// fallbackMove returns the first candidate move, or NoMove on a full board.
func (p *Protocol) fallbackMove() board.Move {
	if c := p.board.CandidateMoves(); len(c) > 0 {
		return c[0]
	}
	return board.NoMove
}

func (p *Protocol) handleEnd(args []string) error {
	vals, err := parseInts("END", args, 1)
	if err != nil {
		return err
	}

	result := storage.GameResult{
		Moves:    len(p.game.Moves),
		Duration: time.Since(p.game.Started),
	}
	switch winner := vals[0]; {
	case winner == 1 || winner == 2:
		result.Won = (winner == 1) == (p.me == board.Black)
	default:
		result.Draw = true
	}
	ev := log.Info().Bool("won", result.Won).Bool("draw", result.Draw).Int("moves", result.Moves)

	if p.store == nil {
		ev.Msg("game over")
		return nil
	}
	stats, err := p.store.RecordGame(result)
	if err != nil {
		ev.Msg("game over")
		return err
	}
	ev.Int("games", stats.GamesPlayed).Float64("win_rate", stats.GetWinRate()).Msg("game over")
	return p.store.ClearGame()
}

// apply plays m on the board of record and saves the game.
func (p *Protocol) apply(m board.Move) bool {
	if !p.board.MakeMove(m.X, m.Y) {
		return false
	}
	p.game.Moves = append(p.game.Moves, m)
	p.persist()
	return true
}

func (p *Protocol) persist() {
	if p.store == nil {
		return
	}
	if err := p.store.SaveGame(p.game); err != nil {
		log.Error().Err(err).Msg("save game")
	}
}
