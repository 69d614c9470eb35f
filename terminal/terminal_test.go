package terminal

import (
	"testing"

	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/terminal/color"
	"github.com/hnimtadd/bbsterm/terminal/core"
	"github.com/hnimtadd/bbsterm/terminal/screen"
	"github.com/hnimtadd/bbsterm/terminal/sequences/csi"
	"github.com/hnimtadd/bbsterm/terminal/sgr"
	"github.com/hnimtadd/bbsterm/terminal/size"
	"github.com/hnimtadd/bbsterm/terminal/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTerminal(cols, rows int) *Terminal {
	return NewTerminal(Options{
		Cols:   cols,
		Rows:   rows,
		Logger: logger.Discard,
	})
}

func printString(term *Terminal, s string) {
	for _, c := range s {
		term.Print(uint32(c))
	}
}

// fillRows writes one letter per row, starting at 'a'.
func fillRows(term *Terminal) {
	_, rows := term.Size()
	for y := range rows {
		term.SetCursorPosition(uint16(y+1), 1)
		term.Print(uint32('a' + y))
	}
}

func TestTerminal_InputWithNoControlCharacters(t *testing.T) {
	term := newTerminal(40, 40)

	// Basic grid writing
	input := "hello"
	printString(term, input)

	// Check cursor position
	assert.Equal(t, size.CellCountInt(0), term.Screen.Cursor.Y)
	assert.Equal(t, size.CellCountInt(5), term.Screen.Cursor.X)

	// Check screen content
	assert.Equal(t, input, term.PlainString())
}

func TestTerminal_InputWithWraparound(t *testing.T) {
	term := newTerminal(5, 40)

	printString(term, "helloworldabc12")

	// Verify cursor position and wrap state
	assert.Equal(t, size.CellCountInt(2), term.Screen.Cursor.Y, "cursor Y should be 2")
	assert.Equal(t, size.CellCountInt(4), term.Screen.Cursor.X, "cursor X should be 4")
	assert.True(t, term.Screen.Cursor.PendingWrap, "cursor should be pending wrap")
	assert.Equal(t, "hello\nworld\nabc12", term.PlainString())
}

func TestTerminal_InputWithoutWraparound(t *testing.T) {
	term := newTerminal(5, 3)
	term.SetMode(core.ModeWraparound, false)

	printString(term, "helloworld")
	assert.Equal(t, "hell"+"d", term.PlainString())
	assert.Equal(t, size.CellCountInt(0), term.Screen.Cursor.Y)
}

func TestTerminal_WideCharacters(t *testing.T) {
	term := NewTerminal(Options{Cols: 5, Rows: 3, UnicodeWidth: true})
	printString(term, "ab漢")
	assert.Equal(t, screen.WideWide, term.Screen.Cell(2, 0).Wide)
	assert.Equal(t, screen.WideSpacerTail, term.Screen.Cell(3, 0).Wide)
	assert.Equal(t, size.CellCountInt(4), term.Screen.Cursor.X)

	// Does not fit on the last column, wraps whole.
	printString(term, "c字")
	assert.Equal(t, "ab漢c\n字", term.PlainString())

	// Combining marks have no cell.
	term.Print(0x0301)
	assert.Equal(t, "ab漢c\n字", term.PlainString())
}

func TestTerminal_LineFeedScrollsAtBottom(t *testing.T) {
	term := newTerminal(10, 3)
	printString(term, "one")
	term.LineFeed()
	term.CarriageReturn()
	printString(term, "two")
	term.LineFeed()
	term.CarriageReturn()
	printString(term, "three")

	red := style.Normal()
	red.Background = color.Red
	term.Screen.Cursor.Style = red
	term.LineFeed()

	assert.Equal(t, "two\nthree", term.PlainString())
	rows, cols := term.Screen.GetSize()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 10, cols)
	// The new line takes the normal attribute.
	assert.True(t, term.Screen.Cell(0, 2).Style.IsNormal())
}

func TestTerminal_LineFeedMode(t *testing.T) {
	term := newTerminal(10, 3)
	printString(term, "abc")
	term.LineFeed()
	assert.Equal(t, size.CellCountInt(3), term.Screen.Cursor.X)

	term.SetMode(core.ModeLineFeed, true)
	term.LineFeed()
	assert.Equal(t, size.CellCountInt(0), term.Screen.Cursor.X)
	assert.Equal(t, size.CellCountInt(2), term.Screen.Cursor.Y)
}

func TestTerminal_EraseInDisplay(t *testing.T) {
	tests := []struct {
		name string
		mode csi.EDMode
		want string
	}{
		{name: "below", mode: csi.EDModeBelow, want: "abcde\nab"},
		{name: "above", mode: csi.EDModeAbove, want: "\n   de\nabcde"},
		{name: "complete", mode: csi.EDModeComplete, want: ""},
		{name: "scrollback is complete", mode: csi.EDModeScrollback, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			term := newTerminal(5, 3)
			term.SetMode(core.ModeWraparound, false)
			for row := 1; row <= 3; row++ {
				term.SetCursorPosition(uint16(row), 1)
				printString(term, "abcde")
			}
			term.SetGraphicsRendition(sgr.Attribute{Type: sgr.AttributeTypeBackground, Color: color.Blue})
			term.SetCursorPosition(2, 3)

			term.EraseInDisplay(tc.mode)

			assert.Equal(t, tc.want, term.PlainString())
			row, col := term.CursorPosition()
			assert.Equal(t, 2, row)
			assert.Equal(t, 3, col)
			// Erased cells take the normal attribute, never the current one.
			assert.True(t, term.Screen.Cell(2, 1).Style.IsNormal())
		})
	}
}

func TestTerminal_EraseInLine(t *testing.T) {
	tests := []struct {
		name string
		mode csi.ELMode
		want string
	}{
		{name: "right", mode: csi.ELModeRight, want: "ab"},
		{name: "left", mode: csi.ELModeLeft, want: "   de"},
		{name: "all", mode: csi.ELModeAll, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			term := newTerminal(5, 1)
			term.SetMode(core.ModeWraparound, false)
			printString(term, "abcde")
			term.SetCursorCol(3)
			term.EraseInLine(tc.mode)
			assert.Equal(t, tc.want, term.PlainString())
			assert.Equal(t, size.CellCountInt(2), term.Screen.Cursor.X)
		})
	}
}

func TestTerminal_EraseChars(t *testing.T) {
	term := newTerminal(6, 1)
	printString(term, "abcdef")
	term.SetCursorCol(2)
	term.EraseChars(2)
	assert.Equal(t, "a  def", term.PlainString())
	term.EraseChars(100)
	assert.Equal(t, "a", term.PlainString())
}

func TestTerminal_Backspace(t *testing.T) {
	term := newTerminal(10, 1)
	printString(term, "abc")
	term.Backspace()
	assert.Equal(t, "ab", term.PlainString())
	assert.Equal(t, size.CellCountInt(2), term.Screen.Cursor.X)

	term.CarriageReturn()
	term.Backspace()
	assert.Equal(t, size.CellCountInt(0), term.Screen.Cursor.X)
	assert.Equal(t, "ab", term.PlainString())
}

func TestTerminal_Delete(t *testing.T) {
	term := newTerminal(10, 1)
	printString(term, "abc")
	term.SetCursorCol(1)
	term.Delete()
	assert.Equal(t, "bc", term.PlainString())
}

func TestTerminal_CursorMovesClampToBuffer(t *testing.T) {
	term := newTerminal(10, 5)
	term.SetTopAndBottomMargin(2, 4)
	term.SetCursorPosition(3, 5)

	term.SetCursorUp(100, false)
	term.SetCursorLeft(100)
	row, col := term.CursorPosition()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)

	term.SetCursorDown(100, false)
	term.SetCursorRight(100)
	row, col = term.CursorPosition()
	assert.Equal(t, 5, row)
	assert.Equal(t, 10, col)

	// No line wrap when moving right.
	term.SetCursorRight(1)
	assert.Equal(t, size.CellCountInt(4), term.Screen.Cursor.Y)
}

func TestTerminal_OriginMode(t *testing.T) {
	term := newTerminal(10, 10)
	term.SetTopAndBottomMargin(3, 6)
	term.SetMode(core.ModeOrigin, true)

	// Homed to the region top.
	assert.Equal(t, size.CellCountInt(2), term.Screen.Cursor.Y)

	term.SetCursorPosition(2, 4)
	assert.Equal(t, size.CellCountInt(3), term.Screen.Cursor.Y)
	row, col := term.CursorPosition()
	assert.Equal(t, 2, row)
	assert.Equal(t, 4, col)

	term.SetCursorPosition(100, 1)
	assert.Equal(t, size.CellCountInt(5), term.Screen.Cursor.Y)

	term.SetCursorUp(100, false)
	assert.Equal(t, size.CellCountInt(2), term.Screen.Cursor.Y)
	term.SetCursorDown(100, false)
	assert.Equal(t, size.CellCountInt(5), term.Screen.Cursor.Y)

	term.SetCursorRow(1)
	assert.Equal(t, size.CellCountInt(2), term.Screen.Cursor.Y)
}

func TestTerminal_SetTopAndBottomMargin(t *testing.T) {
	tests := []struct {
		name        string
		top, bottom uint16
		wantTop     size.CellCountInt
		wantBottom  size.CellCountInt
	}{
		{name: "both omitted disables", wantTop: 0, wantBottom: 9},
		{name: "top only", top: 4, wantTop: 3, wantBottom: 9},
		{name: "bottom only", bottom: 5, wantTop: 0, wantBottom: 4},
		{name: "both", top: 2, bottom: 8, wantTop: 1, wantBottom: 7},
		{name: "inverted disables", top: 8, bottom: 2, wantTop: 0, wantBottom: 9},
		{name: "bottom clamps", top: 2, bottom: 99, wantTop: 1, wantBottom: 9},
		{name: "single row", top: 3, bottom: 3, wantTop: 2, wantBottom: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			term := newTerminal(10, 10)
			term.SetMode(core.ModeWraparound, false)
			term.SetCursorPosition(5, 5)

			term.SetTopAndBottomMargin(tc.top, tc.bottom)

			region := term.ScrollingRegion()
			assert.Equal(t, tc.wantTop, region.Top)
			assert.Equal(t, tc.wantBottom, region.Bottom)
			// Modes back to default, cursor homed.
			assert.True(t, term.Modes.Get(core.ModeWraparound))
			assert.False(t, term.Modes.Get(core.ModeOrigin))
			assert.Equal(t, size.CellCountInt(0), term.Screen.Cursor.X)
			assert.Equal(t, size.CellCountInt(0), term.Screen.Cursor.Y)
		})
	}
}

func TestTerminal_InsertLinesAtRegionBottom(t *testing.T) {
	term := newTerminal(5, 6)
	fillRows(term)
	term.SetTopAndBottomMargin(2, 4)
	term.SetCursorPosition(4, 3)

	term.InsertLines(2)

	// Row d is pushed out of the region; rows outside are untouched.
	assert.Equal(t, "a\nb\nc\n\ne\nf", term.PlainString())
	_, rows := term.Size()
	assert.Equal(t, 6, rows)
	assert.Equal(t, size.CellCountInt(0), term.Screen.Cursor.X)
}

func TestTerminal_InsertDeleteLines(t *testing.T) {
	term := newTerminal(5, 5)
	fillRows(term)
	term.SetTopAndBottomMargin(2, 4)
	term.SetCursorPosition(2, 1)

	blue := sgr.Attribute{Type: sgr.AttributeTypeBackground, Color: color.Blue}
	term.SetGraphicsRendition(blue)

	term.InsertLines(1)
	assert.Equal(t, "a\n\nb\nc\ne", term.PlainString())
	// Inserted rows take the current attribute.
	assert.Equal(t, color.Blue, term.Screen.Cell(0, 1).Style.Background)

	term.DeleteLines(2)
	assert.Equal(t, "a\nc\n\n\ne", term.PlainString())
	assert.Equal(t, color.Blue, term.Screen.Cell(0, 3).Style.Background)

	// Outside the region: nothing happens.
	term.SetCursorPosition(5, 1)
	term.DeleteLines(1)
	assert.Equal(t, "a\nc\n\n\ne", term.PlainString())
}

func TestTerminal_InsertDeleteChars(t *testing.T) {
	term := newTerminal(6, 1)
	printString(term, "abcdef")
	term.SetCursorCol(2)

	term.SetGraphicsRendition(sgr.Attribute{Type: sgr.AttributeTypeBackground, Color: color.Green})
	term.InsertBlanks(2)
	assert.Equal(t, "a  bcd", term.PlainString())
	assert.Equal(t, color.Green, term.Screen.Cell(1, 0).Style.Background)

	term.DeleteChars(3)
	assert.Equal(t, "acd", term.PlainString())
	assert.Equal(t, color.Green, term.Screen.Cell(5, 0).Style.Background)
}

func TestTerminal_InsertMode(t *testing.T) {
	term := newTerminal(6, 1)
	printString(term, "abc")
	term.SetCursorCol(1)
	term.SetMode(core.ModeInsert, true)
	printString(term, "xy")
	assert.Equal(t, "xyabc", term.PlainString())
}

func TestTerminal_ScrollUpDown(t *testing.T) {
	term := newTerminal(5, 5)
	fillRows(term)
	term.SetTopAndBottomMargin(2, 4)
	term.SetCursorPosition(1, 1)

	term.ScrollUp(1)
	assert.Equal(t, "a\nc\nd\n\ne", term.PlainString())
	term.ScrollDown(2)
	assert.Equal(t, "a\n\n\nc\ne", term.PlainString())
	assert.Equal(t, size.CellCountInt(0), term.Screen.Cursor.Y)
}

func TestTerminal_IndexAndReverseIndex(t *testing.T) {
	term := newTerminal(5, 4)
	fillRows(term)
	term.SetTopAndBottomMargin(2, 3)

	term.SetCursorPosition(2, 1)
	term.ReverseIndex()
	assert.Equal(t, "a\n\nb\nd", term.PlainString())

	term.SetCursorPosition(3, 1)
	term.Index()
	assert.Equal(t, "a\nb\n\nd", term.PlainString())
	assert.Equal(t, size.CellCountInt(2), term.Screen.Cursor.Y)

	// Outside the region the cursor only moves.
	term.SetCursorPosition(4, 1)
	term.Index()
	assert.Equal(t, size.CellCountInt(3), term.Screen.Cursor.Y)
	term.SetCursorPosition(1, 1)
	term.ReverseIndex()
	assert.Equal(t, size.CellCountInt(0), term.Screen.Cursor.Y)
	assert.Equal(t, "a\nb\n\nd", term.PlainString())
}

func TestTerminal_SaveRestoreCursor(t *testing.T) {
	term := newTerminal(20, 10)
	term.SetCursorPosition(4, 7)
	term.SetGraphicsRendition(sgr.Attribute{Type: sgr.AttributeTypeBright})
	term.SaveCursor()

	term.SetCursorPosition(9, 1)
	term.SetGraphicsRendition(sgr.Attribute{Type: sgr.AttributeTypeUnset})
	term.RestoreCursor()

	row, col := term.CursorPosition()
	assert.Equal(t, 4, row)
	assert.Equal(t, 7, col)
	// Position only.
	assert.False(t, term.Screen.Cursor.Style.Bright)
}

func TestTerminal_RestoreCursorInOriginMode(t *testing.T) {
	tests := []struct {
		name    string
		saveRow uint16
		wantY   size.CellCountInt
		wantRow int
	}{
		{name: "below region", saveRow: 20, wantY: 9, wantRow: 6},
		{name: "above region", saveRow: 2, wantY: 4, wantRow: 1},
		{name: "inside region", saveRow: 7, wantY: 6, wantRow: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			term := newTerminal(80, 25)
			term.SetCursorPosition(tc.saveRow, 1)
			term.SaveCursor()
			term.SetTopAndBottomMargin(5, 10)
			term.SetMode(core.ModeOrigin, true)

			term.RestoreCursor()

			region := term.ScrollingRegion()
			assert.GreaterOrEqual(t, term.Screen.Cursor.Y, region.Top)
			assert.LessOrEqual(t, term.Screen.Cursor.Y, region.Bottom)
			assert.Equal(t, tc.wantY, term.Screen.Cursor.Y)
			row, col := term.CursorPosition()
			assert.Equal(t, tc.wantRow, row)
			assert.Equal(t, 1, col)
		})
	}
}

func TestTerminal_Tabs(t *testing.T) {
	term := newTerminal(20, 1)
	term.Print('a')
	term.SetCursorTabRight(1)
	assert.Equal(t, size.CellCountInt(8), term.Screen.Cursor.X)
	term.SetCursorTabRight(5)
	assert.Equal(t, size.CellCountInt(19), term.Screen.Cursor.X)
	term.SetCursorTabLeft(1)
	assert.Equal(t, size.CellCountInt(16), term.Screen.Cursor.X)
}

func TestTerminal_TabClear(t *testing.T) {
	tests := []struct {
		name  string
		setup func(term *Terminal)
		want  string
	}{
		{
			name: "clear all",
			setup: func(term *Terminal) {
				term.TabClear(csi.TBCModeAll)
			},
			want: "                   X",
		},
		{
			name: "clear current",
			setup: func(term *Terminal) {
				term.SetCursorCol(9)
				term.TabClear(csi.TBCModeCurrent)
				term.CarriageReturn()
			},
			want: "                X",
		},
		{
			name: "unknown mode keeps stops",
			setup: func(term *Terminal) {
				term.TabClear(csi.TBCMode(2))
			},
			want: "        X",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			term := newTerminal(20, 1)
			tc.setup(term)
			term.SetCursorTabRight(1)
			term.Print('X')
			assert.Equal(t, tc.want, term.PlainString())
		})
	}
}

func TestTerminal_PrintRepeat(t *testing.T) {
	term := newTerminal(10, 1)
	term.PrintRepeat(3)
	assert.Empty(t, term.PlainString())
	printString(term, "x")
	term.PrintRepeat(3)
	assert.Equal(t, "xxxx", term.PlainString())
}

func TestTerminal_FormFeedAndReset(t *testing.T) {
	term := newTerminal(10, 3)
	printString(term, "abc")
	term.FormFeed()
	assert.Empty(t, term.PlainString())
	assert.Equal(t, size.CellCountInt(0), term.Screen.Cursor.X)

	term.SetTopAndBottomMargin(2, 3)
	term.SetMode(core.ModeIceColors, true)
	term.SaveCursor()
	term.FullReset()
	assert.Equal(t, ScrollingRegion{Top: 0, Bottom: 2}, term.ScrollingRegion())
	assert.False(t, term.Modes.Get(core.ModeIceColors))
}

func TestTerminal_Snapshot(t *testing.T) {
	a := newTerminal(10, 3)
	b := newTerminal(10, 3)
	printString(a, "same text")
	printString(b, "same text")

	sa, sb := a.Snapshot(), b.Snapshot()
	ha, err := sa.Hash()
	require.NoError(t, err)
	hb, err := sb.Hash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
	assert.Equal(t, 'e', sa.Cell(1, 4).Char)

	b.Print('!')
	hc, err := b.Snapshot().Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)

	// The snapshot does not alias the grid.
	a.FormFeed()
	assert.Equal(t, 's', sa.Cell(1, 1).Char)
}

func TestTerminal_SnapshotModes(t *testing.T) {
	term := newTerminal(10, 5)
	snap := term.Snapshot()
	assert.False(t, snap.OriginMode)
	assert.True(t, snap.Autowrap)
	assert.Zero(t, snap.SavedRow)
	assert.Zero(t, snap.SavedCol)

	term.SetCursorPosition(3, 4)
	term.SaveCursor()
	term.SetMode(core.ModeOrigin, true)
	term.SetMode(core.ModeWraparound, false)
	snap = term.Snapshot()
	assert.True(t, snap.OriginMode)
	assert.False(t, snap.Autowrap)
	assert.Equal(t, 3, snap.SavedRow)
	assert.Equal(t, 4, snap.SavedCol)

	h1, err := snap.Hash()
	require.NoError(t, err)

	// DECSTBM puts both modes back to their defaults.
	term.SetTopAndBottomMargin(2, 4)
	snap = term.Snapshot()
	assert.False(t, snap.OriginMode)
	assert.True(t, snap.Autowrap)
	assert.Equal(t, 2, snap.Top)
	assert.Equal(t, 4, snap.Bottom)

	h2, err := snap.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestTerminal_Load(t *testing.T) {
	term := newTerminal(4, 2)
	st := style.Normal()
	cells := []screen.Cell{
		{Char: 'a', Style: st}, {Char: 'b', Style: st}, {Char: 'c', Style: st},
		{Char: 'd', Style: st}, {Char: 'e', Style: st}, {Char: 'f', Style: st},
	}
	term.Load(2, 0, 3, cells)
	assert.Equal(t, "  ab\n  de", term.PlainString())
}
