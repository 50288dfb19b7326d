package sim

import "fmt"

// AddressBits is the width of a simulated memory address.
const AddressBits = 64

// Geometry fixes the shape of a simulated cache: 2^SetIndexBits sets,
// each holding Associativity lines, each line covering a block of
// 2^BlockOffsetBits bytes. Together the three parameters decide how an
// address splits into block offset, set index, and tag.
type Geometry struct {
	SetIndexBits    int // number of set index bits (s); the cache has 2^s sets
	BlockOffsetBits int // number of block offset bits (b); blocks are 2^b bytes
	Associativity   int // lines per set (E)
}

// Validate checks that the geometry describes a realizable cache.
func (g Geometry) Validate() error {
	if g.SetIndexBits < 1 {
		return fmt.Errorf("set index bits must be positive, got %d", g.SetIndexBits)
	}
	if g.BlockOffsetBits < 0 {
		return fmt.Errorf("block offset bits must be non-negative, got %d", g.BlockOffsetBits)
	}
	if g.Associativity < 1 {
		return fmt.Errorf("associativity must be positive, got %d", g.Associativity)
	}
	if g.SetIndexBits+g.BlockOffsetBits > AddressBits-1 {
		return fmt.Errorf("set index bits + block offset bits must leave at least one tag bit, got %d of at most %d",
			g.SetIndexBits+g.BlockOffsetBits, AddressBits-1)
	}
	return nil
}

// NumSets returns the number of sets (2^SetIndexBits).
func (g Geometry) NumSets() int {
	return 1 << g.SetIndexBits
}

// BlockSize returns the block size in bytes (2^BlockOffsetBits).
func (g Geometry) BlockSize() int {
	return 1 << g.BlockOffsetBits
}

// Lines returns the total number of lines in the cache.
func (g Geometry) Lines() int {
	return g.NumSets() * g.Associativity
}

// SetIndex extracts the set index from an address: the SetIndexBits bits
// immediately above the block offset.
func (g Geometry) SetIndex(addr uint64) uint64 {
	return (addr >> g.BlockOffsetBits) & ((uint64(1) << g.SetIndexBits) - 1)
}

// Tag extracts the tag from an address: everything above the set index.
func (g Geometry) Tag(addr uint64) uint64 {
	return addr >> (g.SetIndexBits + g.BlockOffsetBits)
}
