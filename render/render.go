// Package render exports a buffer snapshot as text, ANSI art or JSON.
package render

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/hnimtadd/bbsterm/terminal"
	"github.com/hnimtadd/bbsterm/terminal/screen"
	"github.com/hnimtadd/bbsterm/terminal/style"
)

// Text returns the characters of the buffer, one line per row. Trailing
// blanks of each row and trailing empty rows are dropped.
func Text(s terminal.Snapshot) string {
	lines := make([]string, len(s.Cells))
	for y, row := range s.Cells {
		var b strings.Builder
		for _, c := range row {
			if c.Wide == screen.WideSpacerTail {
				continue
			}
			b.WriteRune(char(c))
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(trimEmpty(lines), "\n")
}

// ANSI rebuilds the buffer as SGR colored text. A sequence is written only
// where the attribute changes, rows are separated by CR LF and the output
// ends with a reset. Feeding it to a buffer of the same size reproduces the
// cells.
func ANSI(s terminal.Snapshot) string {
	return strings.Join(ANSILines(s), "\r\n")
}

// ANSILines is ANSI split per row. Every line starts from the attribute
// the previous one ended with.
func ANSILines(s terminal.Snapshot) []string {
	lines := make([]string, 0, len(s.Cells))
	current := style.Normal()
	for _, row := range s.Cells {
		var b strings.Builder
		for _, c := range trimRow(row) {
			if c.Wide == screen.WideSpacerTail {
				continue
			}
			if c.Style != current {
				b.WriteString(SGR(c.Style))
				current = c.Style
			}
			b.WriteRune(char(c))
		}
		lines = append(lines, b.String())
	}
	lines = trimEmpty(lines)
	if !current.IsNormal() {
		if len(lines) == 0 {
			lines = append(lines, "")
		}
		lines[len(lines)-1] += ansi.ResetStyle
	}
	return lines
}

// Clip truncates every line to width columns, keeping the sequences.
func Clip(lines []string, width int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if ansi.StringWidth(l) > width {
			l = ansi.Truncate(l, width, "") + ansi.ResetStyle
		}
		out[i] = l
	}
	return out
}

// SGR returns the sequence selecting st from any previous attribute. It
// starts with a reset and uses the BBS subset: 1, 5, 7, 8, 30..37, 90..97
// and 40..47.
func SGR(st style.Style) string {
	params := []string{"0"}
	if st.Bright {
		params = append(params, "1")
	}
	if st.Blink {
		params = append(params, "5")
	}
	if st.Reverse {
		params = append(params, "7")
	}
	if st.Invisible {
		params = append(params, "8")
	}
	fg := 30 + int(st.Foreground.Base())
	if st.Foreground.IsBright() {
		fg += 60
	}
	params = append(params,
		strconv.Itoa(fg),
		strconv.Itoa(40+int(st.Background.Base())),
	)
	return "\x1b[" + strings.Join(params, ";") + "m"
}

// Cell is the JSON form of one cell.
type Cell struct {
	Char       string `json:"char"`
	Foreground uint8  `json:"fg"`
	Background uint8  `json:"bg"`
	Bright     bool   `json:"bright,omitempty"`
	Blink      bool   `json:"blink,omitempty"`
	Reverse    bool   `json:"reverse,omitempty"`
	Invisible  bool   `json:"invisible,omitempty"`
}

// Document is the JSON form of a snapshot.
type Document struct {
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	CursorRow int      `json:"cursor_row"`
	CursorCol int      `json:"cursor_col"`
	IceColors bool     `json:"ice_colors,omitempty"`
	Origin    bool     `json:"origin_mode,omitempty"`
	Autowrap  bool     `json:"autowrap"`
	Top       int      `json:"region_top"`
	Bottom    int      `json:"region_bottom"`
	Text      []string `json:"text"`
	Cells     [][]Cell `json:"cells"`
}

// JSON encodes the snapshot with its attributes.
func JSON(s terminal.Snapshot) ([]byte, error) {
	doc := Document{
		Width:     s.Width,
		Height:    s.Height,
		CursorRow: s.CursorRow,
		CursorCol: s.CursorCol,
		IceColors: s.IceColors,
		Origin:    s.OriginMode,
		Autowrap:  s.Autowrap,
		Top:       s.Top,
		Bottom:    s.Bottom,
		Cells:     make([][]Cell, len(s.Cells)),
	}
	if text := Text(s); text != "" {
		doc.Text = strings.Split(text, "\n")
	}
	for y, row := range s.Cells {
		doc.Cells[y] = make([]Cell, len(row))
		for x, c := range row {
			doc.Cells[y][x] = Cell{
				Char:       string(char(c)),
				Foreground: uint8(c.Style.Foreground),
				Background: uint8(c.Style.Background),
				Bright:     c.Style.Bright,
				Blink:      c.Style.Blink,
				Reverse:    c.Style.Reverse,
				Invisible:  c.Style.Invisible,
			}
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

func char(c screen.Cell) rune {
	if c.Char == 0 {
		return ' '
	}
	return c.Char
}

// trimRow drops the trailing cells an erase would produce.
func trimRow(row []screen.Cell) []screen.Cell {
	end := len(row)
	for end > 0 {
		c := row[end-1]
		if char(c) != ' ' || !c.Style.IsNormal() {
			break
		}
		end--
	}
	return row[:end]
}

func trimEmpty(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
