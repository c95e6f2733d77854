package board

import "math/bits"

// numChunks is the number of 64-bit words needed to cover all cells.
const numChunks = (NumCells + 63) / 64

// Bitboard is a set of cells, one bit per cell in row-major order.
// Cell index idx lives in word idx>>6 at bit idx&63.
type Bitboard [numChunks]uint64

// Set marks the cell at idx.
func (b *Bitboard) Set(idx int) {
	b[idx>>6] |= 1 << (idx & 63)
}

// Clear unmarks the cell at idx.
func (b *Bitboard) Clear(idx int) {
	b[idx>>6] &^= 1 << (idx & 63)
}

// IsSet returns true if the cell at idx is marked.
func (b *Bitboard) IsSet(idx int) bool {
	return b[idx>>6]&(1<<(idx&63)) != 0
}

// PopCount returns the number of marked cells.
func (b *Bitboard) PopCount() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty returns true if no cell is marked.
func (b *Bitboard) Empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

// Union returns the cells marked in either set.
func (b *Bitboard) Union(o *Bitboard) Bitboard {
	var r Bitboard
	for i := range b {
		r[i] = b[i] | o[i]
	}
	return r
}

// ForEach calls f for each marked cell in ascending index order.
func (b *Bitboard) ForEach(f func(idx int)) {
	for c, w := range b {
		for w != 0 {
			off := bits.TrailingZeros64(w)
			f(c<<6 | off)
			w &= w - 1
		}
	}
}
