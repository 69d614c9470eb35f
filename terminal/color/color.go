package color

import "fmt"

// Index is one of the 16 text-mode colors, numbered in ANSI order: the low
// three bits follow SGR 30..37 and bit 3 selects the bright half.
type Index uint8

const (
	Black Index = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

const brightBit Index = 0b1000

// ansiToDOS maps the low three bits of an ANSI color onto the IBM PC
// attribute order (blue and red swapped, as are yellow and cyan).
var ansiToDOS = [8]uint8{0, 4, 2, 6, 1, 5, 3, 7}

// Bright returns the bright variant of the color.
func (i Index) Bright() Index {
	return i | brightBit
}

// Base returns the color with the bright bit cleared.
func (i Index) Base() Index {
	return i &^ brightBit
}

// IsBright reports whether the bright bit is set.
func (i Index) IsBright() bool {
	return i&brightBit != 0
}

// DOS returns the 4-bit IBM PC attribute value of the color.
func (i Index) DOS() uint8 {
	return ansiToDOS[i&0b111] | uint8(i&brightBit)
}

// FromDOS converts a 4-bit IBM PC attribute value into an Index.
func FromDOS(v uint8) Index {
	// The permutation is its own inverse.
	return Index(ansiToDOS[v&0b111]) | Index(v&uint8(brightBit))
}

func (i Index) String() string {
	names := [8]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}
	if i > BrightWhite {
		return fmt.Sprintf("Index(%d)", uint8(i))
	}
	if i.IsBright() {
		return "bright " + names[i.Base()]
	}
	return names[i]
}

// RGB is a struct that represents an RGB color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette holds the RGB value of each of the 16 colors.
type Palette [16]RGB

// VGA is the standard VGA text-mode palette.
var VGA = Palette{
	Black:         {0x00, 0x00, 0x00},
	Red:           {0xAA, 0x00, 0x00},
	Green:         {0x00, 0xAA, 0x00},
	Yellow:        {0xAA, 0x55, 0x00},
	Blue:          {0x00, 0x00, 0xAA},
	Magenta:       {0xAA, 0x00, 0xAA},
	Cyan:          {0x00, 0xAA, 0xAA},
	White:         {0xAA, 0xAA, 0xAA},
	BrightBlack:   {0x55, 0x55, 0x55},
	BrightRed:     {0xFF, 0x55, 0x55},
	BrightGreen:   {0x55, 0xFF, 0x55},
	BrightYellow:  {0xFF, 0xFF, 0x55},
	BrightBlue:    {0x55, 0x55, 0xFF},
	BrightMagenta: {0xFF, 0x55, 0xFF},
	BrightCyan:    {0x55, 0xFF, 0xFF},
	BrightWhite:   {0xFF, 0xFF, 0xFF},
}
