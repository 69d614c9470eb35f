package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotate(t *testing.T) {
	tcs := []struct {
		name  string
		n     int
		left  []int
		right []int
	}{
		{name: "zero", n: 0, left: []int{1, 2, 3, 4}, right: []int{1, 2, 3, 4}},
		{name: "one", n: 1, left: []int{2, 3, 4, 1}, right: []int{4, 1, 2, 3}},
		{name: "three", n: 3, left: []int{4, 1, 2, 3}, right: []int{2, 3, 4, 1}},
		{name: "full turn", n: 4, left: []int{1, 2, 3, 4}, right: []int{1, 2, 3, 4}},
		{name: "more than length", n: 5, left: []int{2, 3, 4, 1}, right: []int{4, 1, 2, 3}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			left := []int{1, 2, 3, 4}
			Rotate(left, tc.n)
			assert.Equal(t, tc.left, left)

			right := []int{1, 2, 3, 4}
			RotateR(right, tc.n)
			assert.Equal(t, tc.right, right)
		})
	}
}

func TestRotateEmpty(t *testing.T) {
	assert.NotPanics(t, func() {
		Rotate([]int{}, 3)
		RotateR([]int(nil), 1)
	})
}

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true) })
	assert.PanicsWithValue(t, "assertion failed", func() { Assert(false) })
	assert.PanicsWithValue(t, "assertion failed: bad state", func() { Assert(false, "bad", "state") })
}
