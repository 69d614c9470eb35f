package screen

import "github.com/hnimtadd/bbsterm/terminal/style"

type Wide int

const (
	// Not a wide character, cell width 1
	WideNarrow Wide = iota

	// WideWide character, cell width 2
	WideWide

	// Spacer after wide character. Do not render
	WideSpacerTail
)

// Cell is one character position of the buffer.
type Cell struct {
	Char  rune
	Style style.Style
	// The wide property of this cell, for wide characters. Characters in a
	// terminal grid can only be 1 or 2 cells wide. A wide character is
	// always next to a spacer.
	Wide Wide
}

// Blank returns an erased cell with the given attribute.
func Blank(st style.Style) Cell {
	return Cell{Char: ' ', Style: st}
}

// The width in grid cells that this cell takes up.
func (c Cell) Width() uint8 {
	if c.Wide == WideWide {
		return 2
	}
	return 1
}

// Returns true if this cell represents a cell with text to render.
func (c Cell) HasText() bool {
	return c.Char != 0 && c.Char != ' ' && c.Wide != WideSpacerTail
}
