package board

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// Zobrist hash keys for position hashing.
// Drawn from a ChaCha stream with a fixed seed so hashes are reproducible
// across runs.
var (
	zobristStone      [NumCells][2]uint64 // [cell][Player]
	zobristSideToMove uint64              // XOR when White to move
)

var zobristSeed = [32]byte{
	0x12, 0x34, 0x56, 0x78, 0xab, 0xcd, 0xef, 0x00,
	0x67, 0x6f, 0x6d, 0x6f, 0x6b, 0x75, 0x31, 0x32,
}

func init() {
	initZobrist()
}

func initZobrist() {
	rng := frand.NewCustom(zobristSeed[:], 1024, 12)
	var buf [8]byte
	next := func() uint64 {
		for {
			rng.Read(buf[:])
			if k := binary.LittleEndian.Uint64(buf[:]); k != 0 {
				return k
			}
		}
	}

	for idx := 0; idx < NumCells; idx++ {
		zobristStone[idx][Black] = next()
		zobristStone[idx][White] = next()
	}
	zobristSideToMove = next()
}
