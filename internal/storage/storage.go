package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"

	"github.com/hailam/gomokuplay/internal/board"
)

// Storage keys
const (
	keyGame        = "game"
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// ErrNoGame is returned by LoadGame when no game in progress is stored.
var ErrNoGame = errors.New("no saved game")

// GameRecord is the game in progress: which side the engine plays and every
// move applied since the starting position, in order.
type GameRecord struct {
	Me      board.Player `json:"me"`
	Moves   []board.Move `json:"moves"`
	Started time.Time    `json:"started"`
	Updated time.Time    `json:"updated"`
}

// Replay rebuilds the position by applying the recorded moves to a fresh
// board.
func (g *GameRecord) Replay() (*board.Board, error) {
	b := board.NewBoard()
	for i, m := range g.Moves {
		if !b.MakeMove(m.X, m.Y) {
			return nil, fmt.Errorf("replay move %d (%v): cell unavailable", i+1, m)
		}
	}
	return b, nil
}

// Preferences stores engine settings chosen by the user.
type Preferences struct {
	TimeLimitMs int       `json:"time_limit_ms"`
	Difficulty  string    `json:"difficulty"`
	LastPlayed  time.Time `json:"last_played"`
}

// DefaultPreferences returns default preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		TimeLimitMs: 1800,
		Difficulty:  "medium",
		LastPlayed:  time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int           `json:"games_played"`
	Wins           int           `json:"wins"`
	Losses         int           `json:"losses"`
	Draws          int           `json:"draws"`
	TotalMoves     int           `json:"total_moves"`
	LongestGame    int           `json:"longest_game"`
	TotalPlayTime  time.Duration `json:"total_play_time"`
	LongestWinStrk int           `json:"longest_win_streak"`
	CurrentStreak  int           `json:"current_streak"`
}

// GameResult represents the result of a completed game from the engine's
// point of view.
type GameResult struct {
	Won      bool
	Draw     bool
	Moves    int
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database under dataDir. An empty dataDir
// means the default data directory.
func Open(dataDir string) (*Storage, error) {
	dbDir, err := GetDatabaseDir(dataDir)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("dir", dbDir).Msg("opening database")

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = newBadgerLogger(log.Logger)
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value stored at key into v and reports whether it existed.
func (s *Storage) get(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	return found, nil
}

// SaveGame stores the game in progress, replacing any previous one.
func (s *Storage) SaveGame(g *GameRecord) error {
	g.Updated = time.Now()
	if g.Started.IsZero() {
		g.Started = g.Updated
	}
	return s.put(keyGame, g)
}

// LoadGame returns the stored game in progress, or ErrNoGame.
func (s *Storage) LoadGame() (*GameRecord, error) {
	g := &GameRecord{}
	found, err := s.get(keyGame, g)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoGame
	}
	return g, nil
}

// ClearGame removes the stored game in progress.
func (s *Storage) ClearGame() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyGame))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	if _, err := s.get(keyPreferences, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := &GameStats{}
	if _, err := s.get(keyStats, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordGame records a completed game and returns the updated statistics.
func (s *Storage) RecordGame(result GameResult) (*GameStats, error) {
	stats, err := s.LoadStats()
	if err != nil {
		return nil, err
	}

	stats.GamesPlayed++
	stats.TotalMoves += result.Moves
	stats.LongestGame = max(stats.LongestGame, result.Moves)
	stats.TotalPlayTime += result.Duration

	switch {
	case result.Draw:
		stats.Draws++
		stats.CurrentStreak = 0
	case result.Won:
		stats.Wins++
		stats.CurrentStreak++
		stats.LongestWinStrk = max(stats.LongestWinStrk, stats.CurrentStreak)
	default:
		stats.Losses++
		stats.CurrentStreak = 0
	}

	if err := s.SaveStats(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}
