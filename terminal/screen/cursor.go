package screen

import (
	"github.com/hnimtadd/bbsterm/terminal/size"
	"github.com/hnimtadd/bbsterm/terminal/style"
)

// The cursor position and style. Positions are 0-indexed.
type Cursor struct {
	X           size.CellCountInt
	Y           size.CellCountInt
	PendingWrap bool // Whether the cursor is pending to wrap

	// The current active style, applied to newly written cells.
	Style style.Style
}

func newCursor() *Cursor {
	return &Cursor{Style: style.Normal()}
}
