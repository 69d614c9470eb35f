// Package tcellview draws buffer snapshots on a tcell screen.
package tcellview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hnimtadd/bbsterm/terminal"
	"github.com/hnimtadd/bbsterm/terminal/color"
	"github.com/hnimtadd/bbsterm/terminal/screen"
	"github.com/hnimtadd/bbsterm/terminal/style"
)

// Color returns the palette entry of i as a tcell RGB color.
func Color(p color.Palette, i color.Index) tcell.Color {
	rgb := p[i&0x0F]
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// Style converts a cell attribute. Reverse and invisible are resolved
// here, blink maps to the tcell blink attribute unless iCE colors are on.
func Style(p color.Palette, st style.Style, iceColors bool) tcell.Style {
	fg, bg, blink := st.Render(iceColors)
	return tcell.StyleDefault.
		Foreground(Color(p, fg)).
		Background(Color(p, bg)).
		Blink(blink)
}

// Draw writes the snapshot at the top left of scr, clipped to the screen
// size, and places the cursor. It does not call Show.
func Draw(scr tcell.Screen, s terminal.Snapshot, p color.Palette) {
	w, h := scr.Size()
	for y, row := range s.Cells {
		if y >= h {
			break
		}
		for x, c := range row {
			if x >= w {
				break
			}
			if c.Wide == screen.WideSpacerTail {
				continue
			}
			ch := c.Char
			if ch == 0 {
				ch = ' '
			}
			scr.SetContent(x, y, ch, nil, Style(p, c.Style, s.IceColors))
		}
	}
	if s.CursorVisible {
		scr.ShowCursor(s.CursorCol-1, s.CursorRow-1)
	} else {
		scr.HideCursor()
	}
}
