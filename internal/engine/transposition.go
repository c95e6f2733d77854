package engine

import (
	"github.com/hailam/gomokuplay/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Depth    int        // Remaining search depth the score was computed at
	Score    int        // Score (bounded by flag)
	Flag     TTFlag     // Type of bound
	BestMove board.Move // Best move found
}

// TranspositionTable caches search results by position hash for the
// duration of one move selection. It is cleared before every search, so no
// entry outlives the call that produced it.
type TranspositionTable struct {
	entries map[uint64]TTEntry

	// Statistics
	hits   uint64
	probes uint64
}

// NewTranspositionTable creates an empty transposition table.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{
		entries: make(map[uint64]TTEntry),
	}
}

// Probe looks up a position in the transposition table.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++
	entry, ok := tt.entries[hash]
	if ok {
		tt.hits++
	}
	return entry, ok
}

// Store saves a search result, replacing any previous entry for the hash.
func (tt *TranspositionTable) Store(hash uint64, depth, score int, flag TTFlag, bestMove board.Move) {
	tt.entries[hash] = TTEntry{
		Depth:    depth,
		Score:    score,
		Flag:     flag,
		BestMove: bestMove,
	}
}

// Clear removes every entry and resets the statistics.
func (tt *TranspositionTable) Clear() {
	clear(tt.entries)
	tt.hits = 0
	tt.probes = 0
}

// Len returns the number of stored positions.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// boundFlag classifies a node result against the window it was searched with.
func boundFlag(score, alphaOrig, betaOrig int) TTFlag {
	switch {
	case score <= alphaOrig:
		return TTUpperBound
	case score >= betaOrig:
		return TTLowerBound
	}
	return TTExact
}
