package utils

import (
	"math/bits"
)

const bitSetSize = 64 // Number of bits in a uint64

// StaticBitSet is a fixed-size bit set. The parser uses it to remember which
// parameter slots of a control sequence were left empty.
type StaticBitSet struct {
	bits      []uint64
	size      int
	sliceSize int // Number of uint64s needed to store the bits
}

// NewStaticBitSet creates a new StaticBitSet with the given size.
func NewStaticBitSet(size int) *StaticBitSet {
	set := &StaticBitSet{size: size}
	set.init()
	return set
}

// Size returns the number of addressable bits.
func (s *StaticBitSet) Size() int {
	return s.size
}

// Set sets the bit at the given idx to 1
func (s *StaticBitSet) Set(idx int) {
	Assert(idx >= 0 && idx < s.size, "Index out of bounds")
	idx, offset := s.addr(idx)
	s.bits[idx] |= 1 << offset
}

// Unset clears the bit at the given idx
func (s *StaticBitSet) Unset(idx int) {
	Assert(idx >= 0 && idx < s.size, "Index out of bounds")
	idx, offset := s.addr(idx)
	s.bits[idx] &^= 1 << offset
}

// addr return the index of bit array containing the bit at idx and offset of
// givent bit in that array.
func (s *StaticBitSet) addr(idx int) (int, int) {
	return idx / bitSetSize, idx % bitSetSize
}

// IsSet returns if bit at given idx is set
func (s *StaticBitSet) IsSet(idx int) bool {
	Assert(idx >= 0 && idx < s.size, "Index out of bounds")
	idx, offset := s.addr(idx)
	return s.bits[idx]&(1<<offset) != 0
}

// Count counts the number of bits set
func (s *StaticBitSet) Count() int {
	total := 0
	for i := range s.sliceSize {
		total += bits.OnesCount64(s.bits[i])
	}
	return total
}

// Clone returns an independent copy of the set.
func (s *StaticBitSet) Clone() *StaticBitSet {
	clone := NewStaticBitSet(s.size)
	copy(clone.bits, s.bits)
	return clone
}

func (s *StaticBitSet) init() {
	s.sliceSize = (s.size + 63) / 64 // Calculate how many uint64s we need
	s.bits = make([]uint64, s.sliceSize)
}

// Clear clears the bits set
func (s *StaticBitSet) Clear() {
	for i := range s.bits {
		s.bits[i] = 0
	}
}
