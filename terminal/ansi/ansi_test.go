package ansi_test

import (
	"testing"

	"github.com/hnimtadd/bbsterm/terminal/ansi"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   uint8
		want string
	}{
		{name: "known control", in: ansi.C0.ESC, want: `ESC (0x1B) ('\x1b')`},
		{name: "delete", in: ansi.C0.DEL, want: `DEL (0x7F) ('\x7f')`},
		{name: "printable", in: 'A', want: `0x41 ('A')`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ansi.String(tc.in))
		})
	}
}

func TestIsC0(t *testing.T) {
	assert.True(t, ansi.IsC0(ansi.C0.SO))
	assert.True(t, ansi.IsC0(ansi.C0.NUL))
	assert.False(t, ansi.IsC0(' '))
	assert.False(t, ansi.IsC0(ansi.C0.DEL))
	assert.Equal(t, "SO", ansi.Name(ansi.C0.SO))
	assert.Empty(t, ansi.Name('x'))
}
