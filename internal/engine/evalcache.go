package engine

import "github.com/hailam/gomokuplay/internal/board"

// evalSideKey separates the cached scores of the two perspectives.
var evalSideKey = [2]uint64{0, 0x9e3779b97f4a7c15}

// EvalEntry stores one cached static evaluation.
type EvalEntry struct {
	Key   uint64
	Score int
	used  bool
}

// EvalCache is a fixed-size, always-replace cache of static evaluations keyed
// by position hash and perspective. It only memoizes Evaluate; hits return
// exactly what a fresh evaluation would.
type EvalCache struct {
	entries []EvalEntry
	mask    uint64

	hits, probes uint64
}

// NewEvalCache creates a cache with the given size in MB.
func NewEvalCache(sizeMB int) *EvalCache {
	entrySize := 24
	numEntries := max(1, (sizeMB*1024*1024)/entrySize)

	// Round down to power of 2
	size := 1
	for size*2 <= numEntries {
		size *= 2
	}

	return &EvalCache{
		entries: make([]EvalEntry, size),
		mask:    uint64(size - 1),
	}
}

// Evaluate returns Evaluate(b, me), consulting the cache first.
func (ec *EvalCache) Evaluate(b *board.Board, me board.Player) int {
	key := b.Hash() ^ evalSideKey[me]
	ec.probes++
	entry := &ec.entries[key&ec.mask]
	if entry.used && entry.Key == key {
		ec.hits++
		return entry.Score
	}
	score := Evaluate(b, me)
	*entry = EvalEntry{Key: key, Score: score, used: true}
	return score
}

// Clear empties the cache.
func (ec *EvalCache) Clear() {
	clear(ec.entries)
	ec.hits = 0
	ec.probes = 0
}

// HitRate returns the cache hit rate as a percentage.
func (ec *EvalCache) HitRate() float64 {
	if ec.probes == 0 {
		return 0
	}
	return float64(ec.hits) / float64(ec.probes) * 100
}
