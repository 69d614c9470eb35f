package terminal

import (
	"bytes"

	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/terminal/core"
	"github.com/hnimtadd/bbsterm/terminal/screen"
	"github.com/hnimtadd/bbsterm/terminal/sequences/csi"
	"github.com/hnimtadd/bbsterm/terminal/sgr"
	"github.com/hnimtadd/bbsterm/terminal/size"
	"github.com/hnimtadd/bbsterm/terminal/style"
	"github.com/hnimtadd/bbsterm/terminal/tabstops"
	"github.com/hnimtadd/bbsterm/terminal/utils"
	dw "github.com/mattn/go-runewidth"
)

type (
	Options struct {
		Cols int // The number of columns in the terminal
		Rows int // The number of rows in the terminal

		// The default mode state. When the terminal gets a reset, it will
		// revert back to this state.
		Modes map[core.Mode]bool

		// UnicodeWidth measures printed runes with their East Asian width.
		// Without it every rune takes one cell, as on a code page display.
		UnicodeWidth bool

		Logger logger.Logger
	}

	// Terminal is the character buffer of one session together with the
	// state the control sequences act on: cursor, scroll region, modes,
	// tabstops and the saved cursor slot.
	Terminal struct {
		// Screen-related fields
		Screen *screen.Screen

		// The size of the terminal
		rows, cols size.CellCountInt

		Modes *core.ModeState

		// The previous printed character, we need this one for the repeat
		// previous char CSI (ESC [ <n> b).
		previousChar *uint32

		// Where the tabstops are.
		tabstops *tabstops.Tabstops

		// The current scrolling region.
		scrollingRegion ScrollingRegion

		// The single save slot of ESC 7 / CSI s. Position only.
		savedCursor *savedPosition

		unicodeWidth bool

		logger logger.Logger
	}

	// Scroll region is the area of the screen designated where scrolling
	// occurs. When scrolling the screen, only this viewport is scrolled.
	ScrollingRegion struct {
		// Top and bottom of the scroll region (0-indexed)
		// Precondition: top <= bottom.
		Top    size.CellCountInt
		Bottom size.CellCountInt
	}
)

func NewTerminal(opts Options) *Terminal {
	cols := size.CellCountInt(opts.Cols)
	rows := size.CellCountInt(opts.Rows)
	return &Terminal{
		Screen:       screen.NewScreen(cols, rows),
		rows:         rows,
		cols:         cols,
		Modes:        core.NewModeState(opts.Modes),
		tabstops:     tabstops.NewTabstops(cols, tabstops.DefaultInterval),
		unicodeWidth: opts.UnicodeWidth,
		scrollingRegion: ScrollingRegion{
			Top:    0,
			Bottom: rows - 1,
		},
		logger: logger.OrDiscard(opts.Logger),
	}
}

// Size returns the buffer size in columns and rows.
func (t *Terminal) Size() (cols, rows int) {
	return t.cols, t.rows
}

// ScrollingRegion returns the current scroll region, 0-indexed and
// inclusive.
func (t *Terminal) ScrollingRegion() ScrollingRegion {
	return t.scrollingRegion
}

// CursorPosition returns the 1-indexed cursor row and column. In origin
// mode the row is relative to the top of the scroll region.
func (t *Terminal) CursorPosition() (row, col int) {
	row = t.Screen.Cursor.Y + 1
	if t.Modes.Get(core.ModeOrigin) {
		row -= t.scrollingRegion.Top
	}
	return row, t.Screen.Cursor.X + 1
}

// Backspace moves the cursor back a column (but not less than 0) and erases
// the cell it lands on.
func (t *Terminal) Backspace() {
	t.Screen.Cursor.PendingWrap = false
	if t.Screen.Cursor.X == 0 {
		return
	}
	t.Screen.SetCursorLeft(1)
	*t.Screen.CursorCell() = screen.Blank(style.Normal())
}

// Delete removes the character under the cursor, shifting the rest of the
// line left.
func (t *Terminal) Delete() {
	t.DeleteChars(1)
}

// CarriageReturn moves cursor to first column of current line
func (t *Terminal) CarriageReturn() {
	// Always reset pending wrap state
	t.Screen.Cursor.PendingWrap = false
	t.Screen.SetCursorHorizontalAbs(0)
}

// EraseInDisplay clears part of the screen with the normal attribute. The
// cursor does not move.
func (t *Terminal) EraseInDisplay(mode csi.EDMode) {
	cursor := t.Screen.Cursor
	normal := style.Normal()
	cursor.PendingWrap = false

	switch mode {
	case csi.EDModeComplete, csi.EDModeScrollback:
		t.Screen.ClearRows(0, t.rows, normal)

	case csi.EDModeBelow:
		t.Screen.ClearCells(cursor.Y, cursor.X, t.cols, normal)
		t.Screen.ClearRows(cursor.Y+1, t.rows, normal)

	case csi.EDModeAbove:
		t.Screen.ClearRows(0, cursor.Y, normal)
		t.Screen.ClearCells(cursor.Y, 0, cursor.X+1, normal)

	default:
		t.logger.Warn("unimplemented erase display mode", "mode", mode)
	}
}

// EraseInLine clears part of the cursor row with the normal attribute. The
// cursor does not move.
func (t *Terminal) EraseInLine(mode csi.ELMode) {
	cursor := t.Screen.Cursor
	normal := style.Normal()
	cursor.PendingWrap = false

	switch mode {
	case csi.ELModeRight:
		t.Screen.ClearCells(cursor.Y, cursor.X, t.cols, normal)
	case csi.ELModeLeft:
		t.Screen.ClearCells(cursor.Y, 0, cursor.X+1, normal)
	case csi.ELModeAll:
		t.Screen.ClearCells(cursor.Y, 0, t.cols, normal)
	default:
		t.logger.Warn("unimplemented erase line mode", "mode", mode)
	}
}

// EraseChars clears repeated cells from the cursor rightward with the normal
// attribute. Nothing shifts.
func (t *Terminal) EraseChars(repeated uint16) {
	cursor := t.Screen.Cursor
	count := max(size.CellCountInt(repeated), 1)
	cursor.PendingWrap = false
	t.Screen.ClearCells(cursor.Y, cursor.X, min(cursor.X+count, t.cols), style.Normal())
}

// FullReset returns the terminal to its initial state.
func (t *Terminal) FullReset() {
	t.Screen.Reset()
	t.Modes.Reset()
	t.tabstops.Reset(tabstops.DefaultInterval)
	t.scrollingRegion = ScrollingRegion{Top: 0, Bottom: t.rows - 1}
	t.savedCursor = nil
	t.previousChar = nil
}

// FormFeed clears the screen and homes the cursor.
func (t *Terminal) FormFeed() {
	t.EraseInDisplay(csi.EDModeComplete)
	t.Screen.SetCursorAbs(0, 0)
}

// Linefeed moves the cursor to the next line.
func (t *Terminal) LineFeed() {
	t.Index()
	if t.Modes.Get(core.ModeLineFeed) {
		t.CarriageReturn()
	}
}

// NextLine moves to the first column of the next line, scrolling at the
// bottom of the region.
func (t *Terminal) NextLine() {
	t.Index()
	t.CarriageReturn()
}

// Print writes c at the cursor with the current attribute and advances.
func (t *Terminal) Print(c uint32) {
	// After doing any printing, wrapping, etc. we want to ensure that our
	// display remains in a consistent state.
	defer t.Screen.AssertIntegrity()

	// Determine the width of this character so we can handle
	// non-single-width characters properly. Code page glyphs are always
	// one cell.
	width := size.CellCountInt(1)
	if t.unicodeWidth && c > 0xFF {
		width = size.CellCountInt(dw.RuneWidth(rune(c)))
	}
	utils.Assert(width <= 2)

	if width == 0 {
		// Combining marks and other zero-width runes have no cell of
		// their own.
		t.logger.Debug("zero-width character, ignoring", "codepoint", c)
		return
	}
	t.previousChar = &c

	// If we're soft-wrapping, then handle that first.
	if t.Screen.Cursor.PendingWrap && t.Modes.Get(core.ModeWraparound) {
		t.PrintWrap()
	}

	// A wide character that does not fit on the line wraps first. Without
	// autowrap it is dropped, as xterm does.
	if width == 2 && t.Screen.Cursor.X == t.cols-1 {
		if !t.Modes.Get(core.ModeWraparound) || t.cols < 2 {
			return
		}
		t.printCell(' ', screen.WideNarrow)
		t.PrintWrap()
	}

	// If we have insert mode enabled, then we need to handle that.
	// We only do insert mode if we are not at the end of the line.
	if t.Modes.Get(core.ModeInsert) && t.Screen.Cursor.X+width < t.cols {
		t.InsertBlanks(uint16(width))
	}

	switch width {
	case 1:
		t.printCell(c, screen.WideNarrow)
	case 2:
		t.printCell(c, screen.WideWide)
		t.Screen.SetCursorRight(1)
		t.printCell(0, screen.WideSpacerTail)
	}

	// If we are at the end of the line, we need to wrap the next time
	// In this case, we don't move the cursor
	if t.Screen.Cursor.X == t.cols-1 {
		t.Screen.Cursor.PendingWrap = true
		return
	}

	t.Screen.SetCursorRight(1)
}

// PrintRepeat prints the previous printed character repeated times.
func (t *Terminal) PrintRepeat(repeated uint16) {
	if t.previousChar == nil {
		return
	}
	c := *t.previousChar
	for range max(repeated, 1) {
		t.Print(c)
	}
}

func (t *Terminal) PrintWrap() {
	// Move to the next line
	t.Index()
	t.Screen.SetCursorHorizontalAbs(0)
	// Assure that our screen is consistent
	t.Screen.AssertIntegrity()
}

func (t *Terminal) printCell(c uint32, wide screen.Wide) {
	cursor := t.Screen.Cursor
	defer t.Screen.AssertIntegrity()

	cell := t.Screen.CursorCell()

	// Overwriting half of a wide character leaves the other half as a
	// blank narrow cell.
	if cell.Wide != wide {
		switch cell.Wide {
		case screen.WideWide:
			if cursor.X < t.cols-1 {
				t.Screen.ClearCells(cursor.Y, cursor.X+1, cursor.X+2, cell.Style)
			}
		case screen.WideSpacerTail:
			if cursor.X > 0 {
				head := t.Screen.CursorCellLeft(1)
				*head = screen.Blank(head.Style)
			}
		}
	}

	*cell = screen.Cell{
		Char:  rune(c),
		Style: cursor.Style,
		Wide:  wide,
	}
}

// SetCursorRow moves the cursor to an absolute row, relative to the scroll
// region in origin mode.
func (t *Terminal) SetCursorRow(row uint16) {
	t.Screen.Cursor.PendingWrap = false
	top, bottom := t.verticalLimits()
	y := top + max(size.CellCountInt(row), 1) - 1
	t.Screen.SetCursorVerticalAbs(min(y, bottom))
}

// SetCursorCol moves the cursor to an absolute column.
func (t *Terminal) SetCursorCol(col uint16) {
	t.Screen.Cursor.PendingWrap = false
	x := max(size.CellCountInt(col), 1) - 1
	t.Screen.SetCursorHorizontalAbs(min(x, t.cols-1))
}

// verticalLimits returns the rows the cursor is confined to: the scroll
// region in origin mode, the whole buffer otherwise.
func (t *Terminal) verticalLimits() (top, bottom size.CellCountInt) {
	if t.Modes.Get(core.ModeOrigin) {
		return t.scrollingRegion.Top, t.scrollingRegion.Bottom
	}
	return 0, t.rows - 1
}

// Move the cursor left amount collumns. If amount is greater than the maximum
// move distance then it is internally adjusted to the maximum move distance.
// If amount is 0, adjust it to 1.
func (t *Terminal) SetCursorLeft(offset uint16) {
	t.Screen.Cursor.PendingWrap = false
	count := max(size.CellCountInt(offset), 1)
	t.Screen.SetCursorLeft(min(count, t.Screen.Cursor.X))
}

// Move the cursor down amount line. If amount is greater than the maximum
// move distance then it is internally adjusted to the maximum move distance.
// If amount is 0, adjust it to 1.
func (t *Terminal) SetCursorDown(offset uint16, carriage bool) {
	// Always reset pending wrap state
	t.Screen.Cursor.PendingWrap = false

	// The maximum amount the cursor can move depends on origin mode
	_, bottom := t.verticalLimits()
	maxm := max(bottom-t.Screen.Cursor.Y, 0)
	adjustedCount := min(maxm, max(size.CellCountInt(offset), 1))

	t.Screen.SetCursorDown(adjustedCount)
	if carriage {
		t.Screen.SetCursorHorizontalAbs(0)
	}
}

// Move the cursor up amount line. If amount is greater than the maximum move
// distance then it is internally adjusted to the maximum move distance.
// If amount is 0, adjust it to 1.
func (t *Terminal) SetCursorUp(offset uint16, carriage bool) {
	// Always reset pending wrap state
	t.Screen.Cursor.PendingWrap = false

	top, _ := t.verticalLimits()
	maxm := max(t.Screen.Cursor.Y-top, 0)
	adjustedCount := min(maxm, max(size.CellCountInt(offset), 1))

	t.Screen.SetCursorUp(adjustedCount)
	if carriage {
		t.Screen.SetCursorHorizontalAbs(0)
	}
}

// Move the cursor right amount collumns. If amount is greater than the maximum
// move distance then it is internally adjusted to the maximum move distance.
// If amount is 0, adjust it to 1.
func (t *Terminal) SetCursorRight(offset uint16) {
	// Always reset pending wrap state
	t.Screen.Cursor.PendingWrap = false

	maxm := t.cols - t.Screen.Cursor.X - 1
	count := min(maxm, max(size.CellCountInt(offset), 1))
	t.Screen.SetCursorRight(count)
}

// SetCursorTabRight moves the cursor to the repeated next tabstop, or to
// the last column.
func (t *Terminal) SetCursorTabRight(repeated uint16) {
	t.Screen.Cursor.PendingWrap = false
	for range max(repeated, 1) {
		t.Screen.SetCursorHorizontalAbs(t.tabstops.Next(t.Screen.Cursor.X))
	}
}

// SetCursorTabLeft similar to SetCursorTabRight, but move the cursor to the
// previous tabstop instead
func (t *Terminal) SetCursorTabLeft(repeated uint16) {
	t.Screen.Cursor.PendingWrap = false
	for range max(repeated, 1) {
		t.Screen.SetCursorHorizontalAbs(t.tabstops.Prev(t.Screen.Cursor.X))
	}
}

// SetGraphicsRendition updates the current attribute.
func (t *Terminal) SetGraphicsRendition(attr sgr.Attribute) {
	if !t.Screen.Cursor.Style.Apply(attr) {
		t.logger.Debug("unknown SGR attribute, skipping", "attribute", attr)
	}
}

// TabSet sets a tabstop at the cursor column.
func (t *Terminal) TabSet() {
	t.tabstops.Set(t.Screen.Cursor.X)
}

// TabClear clears the tabstop at the cursor column, or every tabstop.
func (t *Terminal) TabClear(mode csi.TBCMode) {
	switch mode {
	case csi.TBCModeCurrent:
		t.tabstops.Unset(t.Screen.Cursor.X)
	case csi.TBCModeAll:
		t.tabstops.Reset(0)
	default:
		t.logger.Debug("unknown TBC mode, skipping", "mode", mode)
	}
}

// Moves the cursor to the next line.
//
// If the cursor is on the bottom line of the scrolling region the region
// scrolls up by one and the new line takes the normal attribute. Otherwise
// the cursor moves down one line unless it is on the last line of the
// screen.
//
// This unset the pending wrap state without wraping.
func (t *Terminal) Index() {
	// Unset pending wrap state
	t.Screen.Cursor.PendingWrap = false

	if t.Screen.Cursor.Y == t.scrollingRegion.Bottom {
		t.Screen.ScrollUp(t.scrollingRegion.Top, t.scrollingRegion.Bottom, 1, style.Normal())
		return
	}
	if t.Screen.Cursor.Y < t.rows-1 {
		t.Screen.SetCursorDown(1)
	}
}

// ReverseIndex moves the cursor to the previous line, possibly scrolling.
//
// If the cursor is on the top line of the scrolling region the region
// scrolls down by one. Otherwise the cursor moves up one line unless it is
// on the first line of the screen.
func (t *Terminal) ReverseIndex() {
	t.Screen.Cursor.PendingWrap = false

	if t.Screen.Cursor.Y == t.scrollingRegion.Top {
		t.Screen.ScrollDown(t.scrollingRegion.Top, t.scrollingRegion.Bottom, 1, style.Normal())
		return
	}
	if t.Screen.Cursor.Y > 0 {
		t.Screen.SetCursorUp(1)
	}
}

// SetCursorPosition move cursor to the position indicated
// by row and col (1-indexed). If collumn = 0, it is adjusted to 1.
// If column > the right-most col, it is adjusted to the right-most col.
// If row = 0, it is adjusted to 1.
// If row > the bottom-most row, it is adjusted to the bottom-most row.
//
// In origin mode the row is relative to the top of the scroll region and
// the cursor cannot leave it.
func (t *Terminal) SetCursorPosition(row uint16, col uint16) {
	// Unset pending wrap state
	t.Screen.Cursor.PendingWrap = false

	top, bottom := t.verticalLimits()
	y := min(top+max(size.CellCountInt(row), 1)-1, bottom)
	x := min(max(size.CellCountInt(col), 1)-1, t.cols-1)
	t.Screen.SetCursorAbs(x, y)
}

// ScrollUp removes repeated lines from the top of the scroll region. The
// remaining lines are shifted up and the space at the bottom is filled with
// the current attribute.
//
// Does not change the cursor position.
func (t *Terminal) ScrollUp(repeated uint16) {
	count := max(size.CellCountInt(repeated), 1)
	t.Screen.ScrollUp(t.scrollingRegion.Top, t.scrollingRegion.Bottom, count, t.Screen.Cursor.Style)
}

// ScrollDown is the reverse of ScrollUp.
func (t *Terminal) ScrollDown(repeated uint16) {
	count := max(size.CellCountInt(repeated), 1)
	t.Screen.ScrollDown(t.scrollingRegion.Top, t.scrollingRegion.Bottom, count, t.Screen.Cursor.Style)
}

// cursorInRegion reports whether the cursor row is inside the scroll region.
func (t *Terminal) cursorInRegion() bool {
	y := t.Screen.Cursor.Y
	return y >= t.scrollingRegion.Top && y <= t.scrollingRegion.Bottom
}

// Insert line repeated time at the current cursor row. The content of the
// line at the current cursor row and below (to the bottom-most line in the
// scrollingRegion) are shifted down by amount lines. Lines pushed past the
// bottom of the region are lost.
//
// This unsets the pending wrap state without wrapping. If the current cursor
// position is outside of the current scroll region it does nothing.
//
// All cleared space is colored according to the current SGR state.
//
// Move the cursor to the left margin
func (t *Terminal) InsertLines(repeated uint16) {
	if !t.cursorInRegion() {
		return
	}
	count := max(size.CellCountInt(repeated), 1)
	t.Screen.ScrollDown(t.Screen.Cursor.Y, t.scrollingRegion.Bottom, count, t.Screen.Cursor.Style)
	t.Screen.Cursor.PendingWrap = false
	t.Screen.SetCursorHorizontalAbs(0)
}

// DeleteLines removes repeated lines starting at the cursor row. The lines
// below (to the bottom of the region) shift up and the space at the bottom
// of the region is filled with the current attribute.
//
// It does nothing when the cursor is outside the scroll region. Moves the
// cursor to the left margin.
func (t *Terminal) DeleteLines(repeated uint16) {
	if !t.cursorInRegion() {
		return
	}
	count := max(size.CellCountInt(repeated), 1)
	t.Screen.ScrollUp(t.Screen.Cursor.Y, t.scrollingRegion.Bottom, count, t.Screen.Cursor.Style)
	t.Screen.Cursor.PendingWrap = false
	t.Screen.SetCursorHorizontalAbs(0)
}

// InsertBlanks inserts repeated blank cells at the cursor, shifting the rest
// of the line right. Cells pushed past the right edge are lost.
func (t *Terminal) InsertBlanks(repeated uint16) {
	cursor := t.Screen.Cursor
	cursor.PendingWrap = false
	count := max(size.CellCountInt(repeated), 1)
	t.Screen.InsertCells(cursor.X, cursor.Y, count, cursor.Style)
}

// DeleteChars removes repeated cells at the cursor, shifting the rest of the
// line left. The vacated cells take the current attribute.
func (t *Terminal) DeleteChars(repeated uint16) {
	cursor := t.Screen.Cursor
	cursor.PendingWrap = false
	count := max(size.CellCountInt(repeated), 1)
	t.Screen.DeleteCells(cursor.X, cursor.Y, count, cursor.Style)
}

// SetTopAndBottomMargin sets the scroll region from 1-indexed rows. Zero
// means the parameter was omitted: top defaults to 1 and bottom to the
// last row. A top below the bottom disables the region.
//
// The region change resets origin and autowrap modes to their defaults and
// homes the cursor.
func (t *Terminal) SetTopAndBottomMargin(top, bottom uint16) {
	y1 := max(size.CellCountInt(top), 1)
	y2 := t.rows
	if bottom != 0 {
		y2 = min(size.CellCountInt(bottom), t.rows)
	}
	if y1 > y2 {
		y1, y2 = 1, t.rows
	}
	t.scrollingRegion = ScrollingRegion{Top: y1 - 1, Bottom: y2 - 1}

	t.Modes.Restore(core.ModeOrigin)
	t.Modes.Restore(core.ModeWraparound)
	t.SetCursorPosition(1, 1)
}

// SetMode sets mode to value. Changing origin mode homes the cursor.
func (t *Terminal) SetMode(mode core.Mode, value bool) {
	t.Modes.Set(mode, value)
	if mode == core.ModeOrigin {
		t.SetCursorPosition(1, 1)
	}
}

// savedPosition is a 0-indexed absolute cursor position.
type savedPosition struct {
	X, Y size.CellCountInt
}

// SaveCursor stores the cursor position.
func (t *Terminal) SaveCursor() {
	t.savedCursor = &savedPosition{X: t.Screen.Cursor.X, Y: t.Screen.Cursor.Y}
}

// RestoreCursor moves the cursor to the saved position, or home when
// nothing was saved. In origin mode the row is clamped into the scroll
// region.
func (t *Terminal) RestoreCursor() {
	t.Screen.Cursor.PendingWrap = false
	if t.savedCursor == nil {
		t.SetCursorPosition(1, 1)
		return
	}
	top, bottom := t.verticalLimits()
	t.Screen.SetCursorAbs(
		min(t.savedCursor.X, t.cols-1),
		max(top, min(t.savedCursor.Y, bottom)),
	)
}

// PlainString returns the text of the buffer, trailing blanks trimmed.
func (t *Terminal) PlainString() string {
	var buf bytes.Buffer
	if err := t.Screen.DumpString(&buf); err != nil {
		t.logger.Error("dump screen", "error", err)
	}
	return buf.String()
}
