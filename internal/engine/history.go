package engine

import "github.com/hailam/gomokuplay/internal/board"

// HistoryHeuristic scores cells by how often moves there caused cutoffs.
// Each cutoff adds depth*depth, so cutoffs found with more remaining depth
// weigh more.
type HistoryHeuristic struct {
	table [board.Size][board.Size]int
}

// NewHistoryHeuristic creates a zeroed history table.
func NewHistoryHeuristic() *HistoryHeuristic {
	return &HistoryHeuristic{}
}

// Reset zeroes every score.
func (h *HistoryHeuristic) Reset() {
	h.table = [board.Size][board.Size]int{}
}

// Increment adds depth*depth to the score of m. Off-board moves are ignored.
func (h *HistoryHeuristic) Increment(m board.Move, depth int) {
	if !m.IsValid() {
		return
	}
	h.table[m.X][m.Y] += depth * depth
}

// Get returns the score of m, or 0 for off-board moves.
func (h *HistoryHeuristic) Get(m board.Move) int {
	if !m.IsValid() {
		return 0
	}
	return h.table[m.X][m.Y]
}
