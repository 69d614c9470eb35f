// Package record encodes buffer cells as the little-endian fixed-field
// records that layered text-art containers store.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hnimtadd/bbsterm/terminal/color"
	"github.com/hnimtadd/bbsterm/terminal/screen"
	"github.com/hnimtadd/bbsterm/terminal/style"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrShortBuffer = errors.New("record: short buffer")
	ErrBadMagic    = errors.New("record: bad magic")
	ErrUnsupported = errors.New("record: unsupported")
)

// Attribute word layout.
const (
	fullCell = 1 << 15

	// short cell, low byte only
	shortFG      = 0b0000_1111 // includes the bright bit
	shortBG      = 0b0111_0000
	shortBlink   = 0b1000_0000
	shortBGShift = 4

	// full cell
	fullFG        = 0b0000_0000_0000_1111
	fullBG        = 0b0000_0000_0111_0000
	fullBlink     = 1 << 7
	fullBright    = 1 << 8
	fullReverse   = 1 << 9
	fullInvisible = 1 << 10
	fullBGShift   = 4
)

const (
	shortCellSize = 3
	fullCellSize  = 6
)

// CellSize returns the encoded size of c.
func CellSize(c screen.Cell) int {
	if _, ok := shortForm(c); ok {
		return shortCellSize
	}
	return fullCellSize
}

// shortForm returns the code page byte of c when the short record holds c
// without loss.
func shortForm(c screen.Cell) (byte, bool) {
	st := c.Style
	if st.Foreground.IsBright() || st.Reverse || st.Invisible {
		return 0, false
	}
	return charmap.CodePage437.EncodeRune(c.Char)
}

// AppendCell appends the record of c to dst. The short form is used
// whenever it is lossless. The wide flag of the cell is not stored.
func AppendCell(dst []byte, c screen.Cell) []byte {
	st := c.Style
	bg := uint16(st.Background.DOS()&0b111) << shortBGShift

	if b, ok := shortForm(c); ok {
		attr := uint16(st.Foreground.DOS()) | bg
		if st.Bright {
			attr |= 0b1000
		}
		if st.Blink {
			attr |= shortBlink
		}
		dst = binary.LittleEndian.AppendUint16(dst, attr)
		return append(dst, b)
	}

	attr := uint16(fullCell) | uint16(st.Foreground.DOS()) | bg
	if st.Blink {
		attr |= fullBlink
	}
	if st.Bright {
		attr |= fullBright
	}
	if st.Reverse {
		attr |= fullReverse
	}
	if st.Invisible {
		attr |= fullInvisible
	}
	dst = binary.LittleEndian.AppendUint16(dst, attr)
	return binary.LittleEndian.AppendUint32(dst, uint32(c.Char))
}

// DecodeCell decodes the cell record at the start of src and returns it
// with the number of bytes it took.
func DecodeCell(src []byte) (screen.Cell, int, error) {
	if len(src) < 2 {
		return screen.Cell{}, 0, fmt.Errorf("%w: cell attribute", ErrShortBuffer)
	}
	attr := binary.LittleEndian.Uint16(src)

	if attr&fullCell == 0 {
		if len(src) < shortCellSize {
			return screen.Cell{}, 0, fmt.Errorf("%w: short cell", ErrShortBuffer)
		}
		dos := uint8(attr & shortFG)
		st := style.Style{
			// The bright bit of the attribute byte is the bold flag.
			Foreground: color.FromDOS(dos).Base(),
			Background: color.FromDOS(uint8(attr&shortBG) >> shortBGShift),
			Bright:     dos&0b1000 != 0,
			Blink:      attr&shortBlink != 0,
		}
		return screen.Cell{
			Char:  charmap.CodePage437.DecodeByte(src[2]),
			Style: st,
		}, shortCellSize, nil
	}

	if len(src) < fullCellSize {
		return screen.Cell{}, 0, fmt.Errorf("%w: full cell", ErrShortBuffer)
	}
	st := style.Style{
		Foreground: color.FromDOS(uint8(attr & fullFG)),
		Background: color.FromDOS(uint8(attr&fullBG) >> fullBGShift),
		Blink:      attr&fullBlink != 0,
		Bright:     attr&fullBright != 0,
		Reverse:    attr&fullReverse != 0,
		Invisible:  attr&fullInvisible != 0,
	}
	return screen.Cell{
		Char:  rune(binary.LittleEndian.Uint32(src[2:])),
		Style: st,
	}, fullCellSize, nil
}

// recordSize returns the size of the cell whose attribute word is attr.
func recordSize(attr uint16) int {
	if attr&fullCell == 0 {
		return shortCellSize
	}
	return fullCellSize
}
