package utils

import "cmp"

// AccumulateDigit appends the decimal digit d to acc and reports whether the
// result overflowed a uint16.
func AccumulateDigit(acc uint16, d uint8) (uint16, bool) {
	next := uint32(acc)*10 + uint32(d)
	if next > 0xFFFF {
		return 0, true
	}
	return uint16(next), false
}

// Clamp bounds v into [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
