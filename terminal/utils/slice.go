package utils

import "slices"

// Rotate moves the first n items to the end, in place. Rows scrolled off
// the top of a region come back at its bottom and are then cleared.
func Rotate[T any](items []T, n int) {
	if len(items) == 0 {
		return
	}
	n %= len(items)
	if n == 0 {
		return
	}
	slices.Reverse(items[:n])
	slices.Reverse(items[n:])
	slices.Reverse(items)
}

// RotateR moves the last n items to the front, in place.
func RotateR[T any](items []T, n int) {
	if len(items) == 0 {
		return
	}
	Rotate(items, len(items)-n%len(items))
}
