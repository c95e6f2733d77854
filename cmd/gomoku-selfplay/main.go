// Command gomoku-selfplay lets the engine play against itself.
//
// With -games 1 (the default) a single game is rendered move by move using
// -time-limit per move (the -difficulty preset when it is 0). With more games they run silently, -parallel at a
// time, using the -difficulty preset, and the tally is printed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/gomokuplay/internal/config"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/selfplay"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load("gomoku-selfplay", os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, cfg)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("self-play")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.Games == 1 {
		limits := engine.DifficultySettings[cfg.EngineDifficulty()]
		if cfg.TimeLimit > 0 {
			limits = engine.SearchLimits{MoveTime: time.Duration(cfg.TimeLimit) * time.Millisecond}
		}
		res, err := selfplay.Play(ctx, engine.NewEngine(), selfplay.Options{
			Limits: limits,
			Out:    os.Stdout,
			Delay:  cfg.Delay,
		})
		if err != nil {
			return err
		}
		fmt.Println(res)
		return nil
	}

	limits := engine.DifficultySettings[cfg.EngineDifficulty()]
	start := time.Now()
	tally, _, err := selfplay.Match(ctx, cfg.Games, cfg.Parallel, limits)
	if err != nil {
		return err
	}
	fmt.Printf("%d games in %s: %s\n", cfg.Games, time.Since(start).Round(time.Millisecond), tally)
	return nil
}
