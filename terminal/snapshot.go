package terminal

import (
	"github.com/hnimtadd/bbsterm/terminal/core"
	"github.com/hnimtadd/bbsterm/terminal/screen"
	"github.com/hnimtadd/bbsterm/terminal/size"
	"github.com/mitchellh/hashstructure/v2"
)

// Snapshot is a copy of the buffer and the cursor at one point of the
// stream. It does not alias the live grid.
type Snapshot struct {
	Width, Height int
	// Cells is indexed [row][col], 0-indexed.
	Cells [][]screen.Cell

	// CursorRow and CursorCol are 1-indexed and absolute.
	CursorRow, CursorCol int
	CursorVisible        bool
	IceColors            bool
	OriginMode           bool
	Autowrap             bool

	// SavedRow and SavedCol hold the 1-indexed absolute saved cursor, or
	// zero when nothing was saved.
	SavedRow, SavedCol int

	// Top and Bottom of the scroll region, 1-indexed.
	Top, Bottom int
}

// Snapshot copies the current buffer state.
func (t *Terminal) Snapshot() Snapshot {
	cells := make([][]screen.Cell, t.rows)
	backing := make([]screen.Cell, t.rows*t.cols)
	for y := range t.rows {
		cells[y] = backing[y*t.cols : (y+1)*t.cols : (y+1)*t.cols]
		copy(cells[y], t.Screen.Row(y))
	}
	snap := Snapshot{
		Width:         t.cols,
		Height:        t.rows,
		Cells:         cells,
		CursorRow:     t.Screen.Cursor.Y + 1,
		CursorCol:     t.Screen.Cursor.X + 1,
		CursorVisible: t.Modes.Get(core.ModeCursorVisible),
		IceColors:     t.Modes.Get(core.ModeIceColors),
		OriginMode:    t.Modes.Get(core.ModeOrigin),
		Autowrap:      t.Modes.Get(core.ModeWraparound),
		Top:           t.scrollingRegion.Top + 1,
		Bottom:        t.scrollingRegion.Bottom + 1,
	}
	if t.savedCursor != nil {
		snap.SavedRow = t.savedCursor.Y + 1
		snap.SavedCol = t.savedCursor.X + 1
	}
	return snap
}

// Cell returns the cell at the 1-indexed row and col.
func (s Snapshot) Cell(row, col int) screen.Cell {
	return s.Cells[row-1][col-1]
}

// Hash fingerprints the snapshot. Two snapshots with the same cells,
// cursor and modes hash equal.
func (s Snapshot) Hash() (uint64, error) {
	return hashstructure.Hash(s, hashstructure.FormatV2, nil)
}

// Load writes a block of cells into the buffer with its top left corner at
// the 0-indexed column x and row y. The block is width cells wide and is
// clipped at the buffer edges. The cursor does not move.
func (t *Terminal) Load(x, y, width int, cells []screen.Cell) {
	if width <= 0 {
		return
	}
	for i, c := range cells {
		col := size.CellCountInt(x + i%width)
		row := size.CellCountInt(y + i/width)
		if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
			continue
		}
		t.Screen.SetCell(col, row, c)
	}
}
