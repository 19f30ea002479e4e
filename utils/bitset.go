package utils

import (
	"math/bits"
)

const (
	// BitsPerBlock is the width of one storage word of a Bitset. Kernels that
	// tile over a Bitset use whole blocks as their work unit.
	BitsPerBlock = 64
)

// Bitset is a compact boolean array packed into 64-bit words, addressable
// bit-at-a-time and block-at-a-time.
type Bitset struct {
	blocks []uint64
	nbits  int
}

// NewBitset creates a zeroed bitset holding nbits bits.
func NewBitset(nbits int) *Bitset {
	numBlocks := (nbits + BitsPerBlock - 1) / BitsPerBlock
	return &Bitset{
		blocks: make([]uint64, numBlocks),
		nbits:  nbits,
	}
}

// Len returns the number of bits held.
func (b *Bitset) Len() int {
	return b.nbits
}

// NumBlocks returns the number of storage words.
func (b *Bitset) NumBlocks() int {
	return len(b.blocks)
}

// Test reports whether bit i is set.
func (b *Bitset) Test(i int) bool {
	return b.blocks[i/BitsPerBlock]&(1<<(uint(i)%BitsPerBlock)) != 0
}

// Set sets bit i to 1.
func (b *Bitset) Set(i int) {
	b.blocks[i/BitsPerBlock] |= 1 << (uint(i) % BitsPerBlock)
}

// Clear sets bit i to 0.
func (b *Bitset) Clear(i int) {
	b.blocks[i/BitsPerBlock] &^= 1 << (uint(i) % BitsPerBlock)
}

// SetTo sets bit i to the given value.
func (b *Bitset) SetTo(i int, value bool) {
	if value {
		b.Set(i)
	} else {
		b.Clear(i)
	}
}

// Block returns storage word n.
func (b *Bitset) Block(n int) uint64 {
	return b.blocks[n]
}

// SetBlock overwrites storage word n.
func (b *Bitset) SetBlock(n int, w uint64) {
	b.blocks[n] = w
}

// Count returns the number of set bits.
func (b *Bitset) Count() (c int) {
	for _, w := range b.blocks {
		c += bits.OnesCount64(w)
	}
	return
}

// Reset clears all bits.
func (b *Bitset) Reset() {
	for n := range b.blocks {
		b.blocks[n] = 0
	}
}

// CopyFrom overwrites the bitset with the contents of src. Both bitsets must
// have the same length.
func (b *Bitset) CopyFrom(src *Bitset) {
	copy(b.blocks, src.blocks)
}

// Equals reports whether both bitsets hold identical contents.
func (b *Bitset) Equals(other *Bitset) bool {
	if b.nbits != other.nbits {
		return false
	}
	for n := range b.blocks {
		if b.blocks[n] != other.blocks[n] {
			return false
		}
	}
	return true
}
