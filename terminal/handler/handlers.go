package handler

import (
	"github.com/hnimtadd/bbsterm/terminal/core"
	"github.com/hnimtadd/bbsterm/terminal/music"
	"github.com/hnimtadd/bbsterm/terminal/sequences/csi"
	"github.com/hnimtadd/bbsterm/terminal/sgr"
)

type (
	FormatEffectorHandler interface {
		// NextLine move cursor to the first position of next line, if the
		// cursor is at the bottom of the scroll region, a scroll up is
		// performed.
		NextLine()
		// Index moves cursor downward one line without changing the
		// column position. If the active position is at the bottom of the
		// scroll region, a scroll up is performed.
		Index()
		// ReverseIndex moves cursor upward one line without changing the
		// column position. If the active position is at the top of the
		// scroll region, a scroll down is performed.
		ReverseIndex()
		// TabSet sets one horizontal stop at the active position.
		TabSet()
		// TabClear clears the stop at the active position, or all stops.
		TabClear(mode csi.TBCMode)
		// FullReset resets all attributes to their defaults.
		FullReset()
		// SaveCursor stores the cursor position in the single save slot.
		SaveCursor()
		// RestoreCursor moves the cursor back to the saved position.
		RestoreCursor()
		// FormFeed clears the screen and homes the cursor.
		FormFeed()
	}

	SGRHandler interface {
		SetGraphicsRendition(attr sgr.Attribute)
	}

	VT100Handler interface {
		// SetMode sets the mode to the given value, if the mode is not
		// settable, it skips.
		SetMode(mode core.Mode, value bool)
		// SetTopAndBottomMargin sets the scroll region. Zero values are
		// omitted parameters; top > bottom disables the region.
		SetTopAndBottomMargin(top, bottom uint16)
	}

	// EditorHandler interface includes all cursor movement and content
	// related methods
	EditorHandler interface {
		// DeleteChars deletes char repeated time start at the current cursor
		// position rightward
		DeleteChars(repeated uint16)
		// DeleteLines deletes line repeated time start at the current cursor
		// position downward
		DeleteLines(repeated uint16)
		// InsertLines inserts line repeated time start at the current cursor
		// position downward
		InsertLines(repeated uint16)
		// InsertBlanks inserts blanks repeated time start at the current
		// cursor position rightward
		InsertBlanks(repeated uint16)
		// EraseChars erases repeated cells from the cursor rightward
		// without moving anything.
		EraseChars(repeated uint16)
		// EraseInLine erases chars in line with behavior depends on mode
		EraseInLine(mode csi.ELMode)
		// EraseInDisplay erases chars in display with behavior depends on mode
		EraseInDisplay(erase csi.EDMode)
		// LineFeed moves cursor to the next line, scrolling at the bottom
		// of the scroll region.
		LineFeed()
		// Backspace moves cursor to the left one character position and
		// erases it, unless it is at the left margin.
		Backspace()
		// Delete deletes the character under the cursor.
		Delete()
		// SetCursorRow moves cursor to rows
		SetCursorRow(row uint16)
		// SetCursorCol moves cursor to cols
		SetCursorCol(col uint16)
		// SetCursorPosition moves cursor to row and col
		SetCursorPosition(row, col uint16)
		// SetCursorUp moves cursor up by offset, carriage controls whether
		// the cursor stays in same col position or movess to col 0
		SetCursorUp(offset uint16, carriage bool)
		// SetCursorDown moves cursor down by offset, carriage controls whether
		// the cursor stays in same col position or movess to col 0
		SetCursorDown(offset uint16, carriage bool)
		// SetCursorLeft moves cursor left by offset, unless it is at
		// the left margin, in which case no actions occurs
		SetCursorLeft(offset uint16)
		// SetCursorRight moves cursor right by offset, unless it is at
		// the right margin, in which case no actions occurs
		SetCursorRight(offset uint16)
		// SetCursorTabRight move cursor to the repeated next tab stop,
		// or to the right margin if no further tab stops are present
		// on the line.
		SetCursorTabRight(repeated uint16)
		// SetCursorTabLeft move cursor to the repeated previous tab stop,
		// or to the left margin if no further tab stops are present
		// on the line.
		SetCursorTabLeft(repeated uint16)
		// CarriageReturn moves cursor to left margin of the current line.
		CarriageReturn()
		// ScrollUp scrolls the scroll region up by repeated lines.
		ScrollUp(repeated uint16)
		// ScrollDown scrolls the scroll region down by repeated lines.
		ScrollDown(repeated uint16)
		// PrintRepeat prints the previous printed character again.
		PrintRepeat(repeated uint16)
	}

	PrintHandler interface {
		Print(c uint32)
	}

	// ReportHandler answers host queries. Replies go to the response sink
	// and never touch the buffer.
	ReportHandler interface {
		DeviceStatusReport(req csi.DSRRequest)
		DeviceAttributes()
		// DialectReport answers the ESC[M dialect query (CSI = n).
		DialectReport()
	}

	// MusicHandler receives each finished ANSI music sequence, notes in
	// stream order.
	MusicHandler interface {
		PlayMusic(notes []music.Note)
	}

	BellHandler interface {
		Bell()
	}

	// KeyHandler receives keypad reports (ESC O x).
	KeyHandler interface {
		FunctionKey(key uint8)
	}
)
