package esc

import (
	"fmt"
)

// Command is a two-byte escape sequence, optionally with intermediates
// (ESC 7, ESC 8, ESC c, ESC ( B ...).
type Command struct {
	Intermediates []uint8
	Final         uint8
}

func (c Command) String() string {
	return fmt.Sprintf("ESC %q %q", c.Intermediates, rune(c.Final))
}

// FunctionKey is an SS3 key sequence, ESC O followed by a single byte, as
// sent by a VT100 keypad.
type FunctionKey struct {
	Key uint8
}

func (k FunctionKey) String() string {
	return fmt.Sprintf("SS3 %q", rune(k.Key))
}
