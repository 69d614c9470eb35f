package tabstops

import (
	"testing"

	"github.com/hnimtadd/bbsterm/terminal/size"
	"github.com/stretchr/testify/assert"
)

func TestTabstopsBasic(t *testing.T) {
	tab := NewTabstops(16, 0)
	assert.Equal(t, 0, entry(4))
	assert.Equal(t, 1, entry(8))
	assert.Equal(t, 0, index(0))
	assert.Equal(t, 1, index(1))
	assert.Equal(t, 1, index(9))
	assert.EqualValues(t, 0b00001000, masks[3])
	assert.EqualValues(t, 0b00010000, masks[4])
	assert.False(t, tab.Get(4))
	tab.Set(4)
	assert.True(t, tab.Get(4))
	assert.False(t, tab.Get(3))
	tab.Reset(0)
	assert.False(t, tab.Get(4))
	tab.Set(4)
	assert.True(t, tab.Get(4))
	tab.Unset(4)
	assert.False(t, tab.Get(4))
}

func TestTabstopsDynamicAllocations(t *testing.T) {
	tab := NewTabstops(16, 0)
	capacity := tab.Capacity()
	tab.Resize(size.CellCountInt(capacity * 2))
	tab.Set(size.CellCountInt(capacity + 5))
	assert.True(t, tab.Get(size.CellCountInt(capacity+5)), "tab.Get(capacity+5) should be true")

	assert.False(t, tab.Get(size.CellCountInt(capacity+4)))
	assert.False(t, tab.Get(5))
}

func TestTabstopsInterval(t *testing.T) {
	tab := NewTabstops(80, 4)
	if tab.Get(0) {
		t.Errorf("tab.Get(0) = true, want false")
	}
	if !tab.Get(4) {
		t.Errorf("tab.Get(4) = false, want true")
	}
	if tab.Get(5) {
		t.Errorf("tab.Get(5) = true, want false")
	}
	if !tab.Get(8) {
		t.Errorf("tab.Get(8) = false, want true")
	}
}

func TestTabstopsCountOn80(t *testing.T) {
	tab := NewTabstops(80, 8)
	count := 0
	for i := range size.CellCountInt(80) {
		if tab.Get(i) {
			count++
		}
	}
	if count != 9 {
		t.Errorf("tabstops count = %d, want 9", count)
	}
}

func TestTabstopsNextPrev(t *testing.T) {
	tab := NewTabstops(80, DefaultInterval)
	tests := []struct {
		col, next, prev size.CellCountInt
	}{
		{col: 0, next: 8, prev: 0},
		{col: 7, next: 8, prev: 0},
		{col: 8, next: 16, prev: 0},
		{col: 9, next: 16, prev: 8},
		{col: 72, next: 79, prev: 64},
		{col: 79, next: 79, prev: 72},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.next, tab.Next(tc.col), "next of %d", tc.col)
		assert.Equal(t, tc.prev, tab.Prev(tc.col), "prev of %d", tc.col)
	}
}
