package record

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hnimtadd/bbsterm/terminal/color"
)

// EncodePalette writes the palette record: the entry count, then one RGBA
// quadruple per color in IBM PC attribute order.
func EncodePalette(w io.Writer, p color.Palette) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(p))); err != nil {
		return err
	}
	for dos := range len(p) {
		c := p[color.FromDOS(uint8(dos))]
		if _, err := bw.Write([]byte{c.R, c.G, c.B, 0xFF}); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodePalette reads a palette record. Only full 16 color palettes are
// accepted; alpha is dropped.
func DecodePalette(r io.Reader) (color.Palette, error) {
	var p color.Palette
	var count uint32
	if err := read(r, &count); err != nil {
		return p, err
	}
	if count != uint32(len(p)) {
		return p, fmt.Errorf("%w: palette of %d colors", ErrUnsupported, count)
	}
	var quad [4]byte
	for dos := range len(p) {
		if err := readFull(r, quad[:]); err != nil {
			return p, err
		}
		p[color.FromDOS(uint8(dos))] = color.RGB{R: quad[0], G: quad[1], B: quad[2]}
	}
	return p, nil
}
