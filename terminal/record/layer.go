package record

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hnimtadd/bbsterm/terminal"
	"github.com/hnimtadd/bbsterm/terminal/screen"
)

var layerMagic = [4]byte{'B', 'B', 'S', 'L'}

const (
	LayerVersion = 1

	// maxTitle bounds the title length read from a record.
	maxTitle = 1 << 16
	// maxCells bounds the cell count read from a record.
	maxCells = 1 << 24
)

// Flags of a layer.
type Flags uint32

const (
	FlagVisible Flags = 1 << iota
	FlagPositionLocked
	FlagEditLocked
	FlagHasAlpha
)

// Layer is a rectangle of cells placed at (X, Y) on a canvas. Cells are
// row-major, Width per row.
type Layer struct {
	Title  string
	Flags  Flags
	X, Y   int32
	Width  uint32
	Height uint32
	Cells  []screen.Cell
}

// FromSnapshot makes a visible layer at the origin holding the whole
// buffer.
func FromSnapshot(s terminal.Snapshot, title string) Layer {
	cells := make([]screen.Cell, 0, s.Width*s.Height)
	for _, row := range s.Cells {
		cells = append(cells, row...)
	}
	return Layer{
		Title:  title,
		Flags:  FlagVisible,
		Width:  uint32(s.Width),
		Height: uint32(s.Height),
		Cells:  cells,
	}
}

// Encode writes the layer record to w.
func (l Layer) Encode(w io.Writer) error {
	if uint64(len(l.Cells)) > uint64(l.Width)*uint64(l.Height) {
		return fmt.Errorf("%w: %d cells in a %dx%d layer", ErrUnsupported, len(l.Cells), l.Width, l.Height)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(layerMagic[:]); err != nil {
		return err
	}
	header := []any{
		uint16(LayerVersion),
		uint32(len(l.Title)),
		[]byte(l.Title),
		uint32(l.Flags),
		l.X,
		l.Y,
		l.Width,
		l.Height,
		uint32(len(l.Cells)),
	}
	for _, field := range header {
		if err := binary.Write(bw, binary.LittleEndian, field); err != nil {
			return err
		}
	}

	buf := make([]byte, 0, fullCellSize)
	for _, c := range l.Cells {
		buf = AppendCell(buf[:0], c)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeLayer reads one layer record from r.
func DecodeLayer(r io.Reader) (Layer, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if err := readFull(br, magic[:]); err != nil {
		return Layer{}, err
	}
	if magic != layerMagic {
		return Layer{}, fmt.Errorf("%w: %q", ErrBadMagic, magic[:])
	}

	var version uint16
	if err := read(br, &version); err != nil {
		return Layer{}, err
	}
	if version != LayerVersion {
		return Layer{}, fmt.Errorf("%w: layer version %d", ErrUnsupported, version)
	}

	var titleLen uint32
	if err := read(br, &titleLen); err != nil {
		return Layer{}, err
	}
	if titleLen > maxTitle {
		return Layer{}, fmt.Errorf("%w: title of %d bytes", ErrUnsupported, titleLen)
	}
	title := make([]byte, titleLen)
	if err := readFull(br, title); err != nil {
		return Layer{}, err
	}

	l := Layer{Title: string(title)}
	var flags, count uint32
	for _, field := range []any{&flags, &l.X, &l.Y, &l.Width, &l.Height, &count} {
		if err := read(br, field); err != nil {
			return Layer{}, err
		}
	}
	l.Flags = Flags(flags)
	if count > maxCells || uint64(count) > uint64(l.Width)*uint64(l.Height) {
		return Layer{}, fmt.Errorf("%w: %d cells in a %dx%d layer", ErrUnsupported, count, l.Width, l.Height)
	}

	l.Cells = make([]screen.Cell, 0, count)
	buf := make([]byte, fullCellSize)
	for range count {
		if err := readFull(br, buf[:2]); err != nil {
			return Layer{}, err
		}
		n := recordSize(binary.LittleEndian.Uint16(buf))
		if err := readFull(br, buf[2:n]); err != nil {
			return Layer{}, err
		}
		c, _, err := DecodeCell(buf[:n])
		if err != nil {
			return Layer{}, err
		}
		l.Cells = append(l.Cells, c)
	}
	return l, nil
}

func read(r io.Reader, data any) error {
	return shortBuffer(binary.Read(r, binary.LittleEndian, data))
}

func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return shortBuffer(err)
}

// shortBuffer reports a truncated record as ErrShortBuffer.
func shortBuffer(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrShortBuffer, err)
	}
	return err
}
