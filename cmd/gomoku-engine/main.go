// Command gomoku-engine plays five-in-a-row over the text protocol on
// stdin/stdout. Logs go to stderr.
package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/gomokuplay/internal/config"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/protocol"
	"github.com/hailam/gomokuplay/internal/storage"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load("gomoku-engine", os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Deferred cleanup (profile, database) runs inside run, before exit.
	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("engine")
	}
}

func run(cfg *config.Config) error {
	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			return fmt.Errorf("create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", cfg.CPUProfile).Msg("CPU profiling enabled")
	}

	var store *storage.Storage
	if cfg.Persist || cfg.Resume {
		var err error
		store, err = storage.Open(cfg.DataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		prefs, err := store.LoadPreferences()
		if err != nil {
			return err
		}
		if err := cfg.ApplyPreferences(prefs); err != nil {
			return fmt.Errorf("saved preferences: %w", err)
		}
		log.Debug().Int("time_limit", cfg.TimeLimit).Str("difficulty", cfg.Difficulty).Msg("preferences")
	}

	eng := engine.NewEngine()
	eng.SetDifficulty(cfg.EngineDifficulty())

	p := protocol.New(eng, cfg.TimeLimit, store)
	if cfg.Resume {
		if err := p.Resume(); err != nil {
			log.Error().Err(err).Msg("resume failed, starting fresh")
		}
	}

	if err := p.Run(os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("protocol stopped")
	}

	if store != nil {
		if err := store.SavePreferences(cfg.Preferences()); err != nil {
			log.Error().Err(err).Msg("save preferences")
		}
	}
	return nil
}
