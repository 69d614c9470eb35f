package screen

import (
	"bufio"
	"io"
	"strings"

	"github.com/hnimtadd/bbsterm/terminal/size"
	"github.com/hnimtadd/bbsterm/terminal/style"
	"github.com/hnimtadd/bbsterm/terminal/utils"
)

// Screen is the fixed size cell grid of the terminal and its cursor.
//
// Rows are allocated once. Scrolling and line insertion rotate the row
// slices in place, so the grid is never reallocated.
type Screen struct {
	Cursor *Cursor

	lines      [][]Cell
	rows, cols size.CellCountInt
}

// Initialize a new display
func NewScreen(cols, rows size.CellCountInt) *Screen {
	utils.Assert(cols > 0 && rows > 0, "screen size must be positive")
	lines := make([][]Cell, rows)
	backing := make([]Cell, rows*cols)
	for y := range lines {
		lines[y] = backing[y*cols : (y+1)*cols : (y+1)*cols]
	}
	s := &Screen{
		Cursor: newCursor(),
		lines:  lines,
		rows:   rows,
		cols:   cols,
	}
	s.ClearRows(0, rows, style.Normal())
	return s
}

// Asert that the screen is in a consistent state.
func (s *Screen) AssertIntegrity() {
	utils.Assert(s.Cursor != nil)
	utils.Assert(s.Cursor.X < s.cols && s.Cursor.Y < s.rows)
	utils.Assert(len(s.lines) == s.rows)
}

// GetSize returns the size of the display in rows and columns.
func (s *Screen) GetSize() (rows, cols size.CellCountInt) {
	return s.rows, s.cols
}

// Cell returns the cell at column x, row y.
func (s *Screen) Cell(x, y size.CellCountInt) Cell {
	return s.lines[y][x]
}

// SetCell overwrites the cell at column x, row y.
func (s *Screen) SetCell(x, y size.CellCountInt, c Cell) {
	s.lines[y][x] = c
}

// Row returns row y. The slice aliases the grid.
func (s *Screen) Row(y size.CellCountInt) []Cell {
	return s.lines[y]
}

// CursorCell returns a pointer to the cell under the cursor.
func (s *Screen) CursorCell() *Cell {
	return &s.lines[s.Cursor.Y][s.Cursor.X]
}

// CursorCellLeft returns the cell n columns left of the cursor.
func (s *Screen) CursorCellLeft(n size.CellCountInt) *Cell {
	utils.Assert(s.Cursor.X >= n)
	return &s.lines[s.Cursor.Y][s.Cursor.X-n]
}

// Move the cursor to the right by n cells.
//
// NOTE this is no wrapping move
func (s *Screen) SetCursorRight(n size.CellCountInt) {
	utils.Assert(s.Cursor.X+n < s.cols)
	defer s.AssertIntegrity()
	s.Cursor.X += n
}

// Move the cursor to the left by n cells.
//
// NOTE this is no wrapping move
func (s *Screen) SetCursorLeft(n size.CellCountInt) {
	utils.Assert(s.Cursor.X >= n)
	defer s.AssertIntegrity()
	s.Cursor.X -= n
}

// Move the cursor up
//
// Precondition: The cursor is not at the top of the screen
func (s *Screen) SetCursorUp(n size.CellCountInt) {
	utils.Assert(s.Cursor.Y >= n)
	defer s.AssertIntegrity()
	s.Cursor.Y -= n
}

// Move the cursor down
//
// Precondition: The cursor is not at the bottom of the screen
func (s *Screen) SetCursorDown(n size.CellCountInt) {
	utils.Assert(s.Cursor.Y+n < s.rows)
	defer s.AssertIntegrity()
	s.Cursor.Y += n
}

func (s *Screen) SetCursorAbs(x size.CellCountInt, y size.CellCountInt) {
	utils.Assert(x < s.cols && y < s.rows)
	defer s.AssertIntegrity()
	s.Cursor.X = x
	s.Cursor.Y = y
}

// Move the cursor to some absolute horizontal position
func (s *Screen) SetCursorHorizontalAbs(x size.CellCountInt) {
	utils.Assert(x < s.cols)
	defer s.AssertIntegrity()
	s.Cursor.X = x
}

func (s *Screen) SetCursorVerticalAbs(y size.CellCountInt) {
	utils.Assert(y < s.rows)
	defer s.AssertIntegrity()
	s.Cursor.Y = y
}

// ScrollUp moves rows top..bottom (inclusive) up by n. The n rows that
// appear at the bottom are cleared with st; rows pushed past top are lost.
func (s *Screen) ScrollUp(top, bottom, n size.CellCountInt, st style.Style) {
	utils.Assert(top <= bottom && bottom < s.rows)
	height := bottom - top + 1
	n = min(n, height)
	if n == 0 {
		return
	}
	utils.Rotate(s.lines[top:bottom+1], n)
	s.ClearRows(bottom-n+1, bottom+1, st)
}

// ScrollDown moves rows top..bottom (inclusive) down by n. The n rows that
// appear at the top are cleared with st; rows pushed past bottom are lost.
func (s *Screen) ScrollDown(top, bottom, n size.CellCountInt, st style.Style) {
	utils.Assert(top <= bottom && bottom < s.rows)
	height := bottom - top + 1
	n = min(n, height)
	if n == 0 {
		return
	}
	utils.RotateR(s.lines[top:bottom+1], n)
	s.ClearRows(top, top+n, st)
}

// InsertCells shifts the cells of row y right by n starting at column x.
// Cells pushed past the right edge are lost and the gap is cleared with st.
func (s *Screen) InsertCells(x, y, n size.CellCountInt, st style.Style) {
	row := s.lines[y]
	n = min(n, s.cols-x)
	copy(row[x+n:], row[x:s.cols-n])
	s.ClearCells(y, x, x+n, st)
}

// DeleteCells removes n cells of row y starting at column x, shifting the
// rest of the row left. The vacated cells on the right are cleared with st.
func (s *Screen) DeleteCells(x, y, n size.CellCountInt, st style.Style) {
	row := s.lines[y]
	n = min(n, s.cols-x)
	copy(row[x:], row[x+n:])
	s.ClearCells(y, s.cols-n, s.cols, st)
}

// Clear the cells [fromX, toX) of row y with blank cells of style st.
func (s *Screen) ClearCells(y, fromX, toX size.CellCountInt, st style.Style) {
	row := s.lines[y]
	for i := fromX; i < toX; i++ {
		row[i] = Blank(st)
	}
}

// ClearRows clears rows [from, to) with blank cells of style st.
func (s *Screen) ClearRows(from, to size.CellCountInt, st style.Style) {
	for y := from; y < to; y++ {
		s.ClearCells(y, 0, s.cols, st)
	}
}

// Reset the screen according to the logic of DEC RIS sequence.
//
// - Clear the screen
// - Moves the cursor to the top left corner and resets its style
func (s *Screen) Reset() {
	s.ClearRows(0, s.rows, style.Normal())
	s.Cursor = newCursor()
}

// RowString returns the text of row y, spacers skipped.
func (s *Screen) RowString(y size.CellCountInt) string {
	var b strings.Builder
	for _, c := range s.lines[y] {
		if c.Wide == WideSpacerTail {
			continue
		}
		if c.Char == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Char)
	}
	return b.String()
}

// Dump the screen to a string. Trailing blanks are trimmed from every row
// and trailing empty rows are dropped.
func (s *Screen) DumpString(w io.Writer) error {
	lines := make([]string, 0, s.rows)
	for y := range s.rows {
		lines = append(lines, strings.TrimRight(s.RowString(y), " "))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	bw := bufio.NewWriter(w)
	for i, line := range lines {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
