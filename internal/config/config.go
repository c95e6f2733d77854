// Package config loads engine settings from command-line flags and
// GOMOKU_-prefixed environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"

	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
)

// EnvPrefix is prepended to flag names to form environment variable names,
// so -time-limit can also be set with GOMOKU_TIME_LIMIT.
const EnvPrefix = "GOMOKU"

type Config struct {
	TimeLimit  int // per-move budget in milliseconds, 0 = difficulty preset
	Difficulty string
	DataDir    string
	Persist    bool
	Resume     bool
	LogLevel   string
	Debug      bool
	CPUProfile string

	// Self-play
	Games    int
	Parallel int
	Delay    time.Duration

	// flags given on the command line or in the environment
	set map[string]bool
}

// Load parses args (without the program name) into c.
func (c *Config) Load(name string, args []string) error {
	fs := flag.NewFlagSetWithEnvPrefix(name, EnvPrefix, flag.ContinueOnError)
	fs.IntVar(&c.TimeLimit, "time-limit", 1800, "time budget per move in milliseconds (0: use the difficulty preset)")
	fs.StringVar(&c.Difficulty, "difficulty", "medium", "search preset used when no time limit is set: easy, medium or hard")
	fs.StringVar(&c.DataDir, "data-dir", "", "directory for the game database (default: XDG data dir)")
	fs.BoolVar(&c.Persist, "persist", false, "save the position after every move")
	fs.BoolVar(&c.Resume, "resume", false, "restore the saved position on startup")
	fs.StringVar(&c.LogLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	fs.BoolVar(&c.Debug, "debug", false, "shorthand for -log-level debug")
	fs.StringVar(&c.CPUProfile, "cpuprofile", "", "write cpu profile to file")
	fs.IntVar(&c.Games, "games", 1, "number of self-play games")
	fs.IntVar(&c.Parallel, "parallel", 1, "self-play games run at once")
	fs.DurationVar(&c.Delay, "delay", 0, "pause between rendered self-play moves")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	c.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		c.set[f.Name] = true
	})
	return c.Validate()
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.TimeLimit < 0 {
		return fmt.Errorf("time limit must not be negative, got %d", c.TimeLimit)
	}
	if _, err := engine.ParseDifficulty(c.Difficulty); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Games < 1 {
		return fmt.Errorf("games must be at least 1, got %d", c.Games)
	}
	if c.Parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", c.Parallel)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	}
	return nil
}

// Level returns the zerolog level selected by LogLevel and Debug.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// EngineDifficulty returns the parsed difficulty, Medium if invalid.
func (c *Config) EngineDifficulty() engine.Difficulty {
	d, _ := engine.ParseDifficulty(c.Difficulty)
	return d
}

// IsSet reports whether the named flag was given explicitly.
func (c *Config) IsSet(name string) bool {
	return c.set[name]
}

// ApplyPreferences takes the time limit and difficulty from saved
// preferences unless they were given explicitly.
func (c *Config) ApplyPreferences(p *storage.Preferences) error {
	if !c.IsSet("time-limit") {
		c.TimeLimit = p.TimeLimitMs
	}
	if !c.IsSet("difficulty") {
		c.Difficulty = p.Difficulty
	}
	return c.Validate()
}

// Preferences returns the settings worth remembering between sessions.
func (c *Config) Preferences() *storage.Preferences {
	return &storage.Preferences{
		TimeLimitMs: c.TimeLimit,
		Difficulty:  c.Difficulty,
	}
}
