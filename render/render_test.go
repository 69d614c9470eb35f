package render_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/hnimtadd/bbsterm"
	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/render"
	"github.com/hnimtadd/bbsterm/terminal"
	"github.com/hnimtadd/bbsterm/terminal/color"
	"github.com/hnimtadd/bbsterm/terminal/stream"
	"github.com/hnimtadd/bbsterm/terminal/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(t *testing.T, cols, rows int, input string) terminal.Snapshot {
	t.Helper()
	s := bbsterm.NewSession(bbsterm.Options{
		Cols:    cols,
		Rows:    rows,
		Charset: stream.CharsetUTF8,
		Logger:  logger.Discard,
	})
	require.NoError(t, s.ProcessOutput([]byte(input)))
	return s.Snapshot()
}

func TestText(t *testing.T) {
	snap := snapshot(t, 10, 4, "ab  \r\n\r\n  ░▒▓\x1b[44m  ")
	assert.Equal(t, "ab\n\n  ░▒▓", render.Text(snap))
}

func TestSGR(t *testing.T) {
	tests := []struct {
		name  string
		style style.Style
		want  string
	}{
		{name: "normal", style: style.Normal(), want: "\x1b[0;37;40m"},
		{
			name:  "bright red on blue",
			style: style.Style{Foreground: color.Red, Background: color.Blue, Bright: true},
			want:  "\x1b[0;1;31;44m",
		},
		{
			name:  "bright index without bold",
			style: style.Style{Foreground: color.BrightCyan, Background: color.Black},
			want:  "\x1b[0;96;40m",
		},
		{
			name:  "all flags",
			style: style.Style{Foreground: color.White, Background: color.Black, Blink: true, Reverse: true, Invisible: true},
			want:  "\x1b[0;5;7;8;37;40m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.SGR(tt.style))
		})
	}
}

func TestANSIRoundTrip(t *testing.T) {
	inputs := []string{
		"plain",
		"\x1b[1;31mred\x1b[0m and \x1b[5;44mblink\x1b[m",
		"\x1b[3;5H\x1b[7mrev\x1b[0m\r\n\x1b[8mhidden",
		"\x1b[42m" + strings.Repeat("x", 12) + "\x1b[0m",
		"\x1b[96mbright index\x1b[0m\x1b[2;1H\x1b[41m  \x1b[0m",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			orig := snapshot(t, 12, 4, input)
			again := snapshot(t, 12, 4, render.ANSI(orig))
			assert.Equal(t, orig.Cells, again.Cells)
		})
	}
}

func TestANSIEmitsOnlyChanges(t *testing.T) {
	snap := snapshot(t, 20, 2, "\x1b[31mab\x1b[0mcd")
	out := render.ANSI(snap)
	assert.Equal(t, "\x1b[0;31;40mab\x1b[0;37;40mcd", out)
	assert.Equal(t, "abcd", ansi.Strip(out))
}

func TestANSIEndsWithReset(t *testing.T) {
	snap := snapshot(t, 20, 2, "\x1b[31mab")
	out := render.ANSI(snap)
	assert.True(t, strings.HasSuffix(out, ansi.ResetStyle))
}

func TestClip(t *testing.T) {
	lines := render.ANSILines(snapshot(t, 20, 2, "\x1b[32mgreen text\x1b[0m\r\nshort"))
	clipped := render.Clip(lines, 5)
	require.Len(t, clipped, 2)
	assert.Equal(t, "green", ansi.Strip(clipped[0]))
	assert.Equal(t, 5, ansi.StringWidth(clipped[0]))
	assert.Equal(t, lines[1], clipped[1])
}

func TestJSON(t *testing.T) {
	snap := snapshot(t, 4, 2, "\x1b[1;33mhi")
	data, err := render.JSON(snap)
	require.NoError(t, err)

	var doc render.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 4, doc.Width)
	assert.Equal(t, 2, doc.Height)
	assert.Equal(t, []string{"hi"}, doc.Text)
	assert.Equal(t, 1, doc.CursorRow)
	assert.Equal(t, 3, doc.CursorCol)
	assert.True(t, doc.Autowrap)
	assert.False(t, doc.Origin)
	assert.Equal(t, 1, doc.Top)
	assert.Equal(t, 2, doc.Bottom)
	require.Len(t, doc.Cells, 2)
	assert.Equal(t, render.Cell{Char: "h", Foreground: uint8(color.Yellow), Bright: true}, doc.Cells[0][0])
	assert.Equal(t, " ", doc.Cells[1][3].Char)
}
