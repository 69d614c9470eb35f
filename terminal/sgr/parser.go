// SGR (Select Graphic Rendition) attribute parsing and types
//
// This is implemented based on: https://vt100.net/docs/vt510-rm/SGR.html
// restricted to what a 16-color text-mode cell can hold.
package sgr

import (
	"iter"

	"github.com/hnimtadd/bbsterm/terminal/color"
)

type AttributeType uint16

const (
	// Reset every attribute to normal (gray on black).
	AttributeTypeUnset AttributeType = iota

	// High intensity foreground.
	AttributeTypeBright
	AttributeTypeResetBright

	// Blink the text.
	AttributeTypeBlink
	AttributeTypeResetBlink

	// Swap fg/bg when rendering.
	AttributeTypeReverse
	AttributeTypeResetReverse

	// Render the foreground in the background color.
	AttributeTypeInvisible
	AttributeTypeResetInvisible

	// Palette colors.
	AttributeTypeForeground
	AttributeTypeBackground

	// Reset fg/bg colors to their defaults.
	AttributeTypeResetFg
	AttributeTypeResetBg

	// Unknown or unrepresentable code; callers skip it.
	AttributeTypeUnknown
)

func (a AttributeType) String() string {
	switch a {
	case AttributeTypeUnset:
		return "Unset"
	case AttributeTypeBright:
		return "Bright"
	case AttributeTypeResetBright:
		return "ResetBright"
	case AttributeTypeBlink:
		return "Blink"
	case AttributeTypeResetBlink:
		return "ResetBlink"
	case AttributeTypeReverse:
		return "Reverse"
	case AttributeTypeResetReverse:
		return "ResetReverse"
	case AttributeTypeInvisible:
		return "Invisible"
	case AttributeTypeResetInvisible:
		return "ResetInvisible"
	case AttributeTypeForeground:
		return "Foreground"
	case AttributeTypeBackground:
		return "Background"
	case AttributeTypeResetFg:
		return "ResetFg"
	case AttributeTypeResetBg:
		return "ResetBg"
	default:
		return "Unknown"
	}
}

type Attribute struct {
	Type AttributeType

	// Color for AttributeTypeForeground/AttributeTypeBackground.
	Color color.Index

	// Params holds the raw parameters of an unknown attribute.
	Params []uint16
}

// Parser walks an SGR parameter list. Omitted parameters must already be
// resolved to 0 by the caller.
type Parser struct {
	Params []uint16
}

// Iter yields the attributes of the parameter list left to right. An empty
// list yields a single reset.
func (p *Parser) Iter() iter.Seq[Attribute] {
	return func(yield func(Attribute) bool) {
		if len(p.Params) == 0 {
			yield(Attribute{Type: AttributeTypeUnset})
			return
		}
		for idx := 0; idx < len(p.Params); {
			attr, consumed := p.parse(p.Params[idx:])
			idx += consumed
			if !yield(attr) {
				return
			}
		}
	}
}

// parse decodes the attribute at the head of slice and returns how many
// parameters it used.
func (p *Parser) parse(slice []uint16) (Attribute, int) {
	// Based on: https://en.wikipedia.org/wiki/ANSI_escape_code
	code := slice[0]
	switch {
	case code == 0:
		return Attribute{Type: AttributeTypeUnset}, 1
	case code == 1:
		return Attribute{Type: AttributeTypeBright}, 1
	case code == 2, code == 22:
		return Attribute{Type: AttributeTypeResetBright}, 1
	case code == 5, code == 6:
		return Attribute{Type: AttributeTypeBlink}, 1
	case code == 25:
		return Attribute{Type: AttributeTypeResetBlink}, 1
	case code == 7:
		return Attribute{Type: AttributeTypeReverse}, 1
	case code == 27:
		return Attribute{Type: AttributeTypeResetReverse}, 1
	case code == 8:
		return Attribute{Type: AttributeTypeInvisible}, 1
	case code == 28:
		return Attribute{Type: AttributeTypeResetInvisible}, 1
	case code >= 30 && code <= 37:
		return Attribute{
			Type:  AttributeTypeForeground,
			Color: color.Index(code - 30),
		}, 1
	case code == 39:
		return Attribute{Type: AttributeTypeResetFg}, 1
	case code >= 40 && code <= 47:
		return Attribute{
			Type:  AttributeTypeBackground,
			Color: color.Index(code - 40),
		}, 1
	case code == 49:
		return Attribute{Type: AttributeTypeResetBg}, 1
	case code >= 90 && code <= 97:
		return Attribute{
			Type:  AttributeTypeForeground,
			Color: color.Index(code - 90).Bright(),
		}, 1
	case code >= 100 && code <= 107:
		// The cell background has no bright half.
		return Attribute{
			Type:  AttributeTypeBackground,
			Color: color.Index(code - 100),
		}, 1
	case code == 38, code == 48:
		return p.parseExtendedColor(slice)
	}
	return Attribute{Type: AttributeTypeUnknown, Params: slice[:1]}, 1
}

// parseExtendedColor handles 38/48 with the 5;n and 2;r;g;b forms, mapping
// the color onto the nearest palette entry.
func (p *Parser) parseExtendedColor(slice []uint16) (Attribute, int) {
	typ := AttributeTypeForeground
	if slice[0] == 48 {
		typ = AttributeTypeBackground
	}
	if len(slice) < 2 {
		return Attribute{Type: AttributeTypeUnknown, Params: slice}, len(slice)
	}

	var rgb color.RGB
	var consumed int
	switch slice[1] {
	case 5:
		if len(slice) < 3 {
			return Attribute{Type: AttributeTypeUnknown, Params: slice}, len(slice)
		}
		consumed = 3
		if slice[2] < 16 {
			index := color.Index(slice[2])
			if typ == AttributeTypeBackground {
				index = index.Base()
			}
			return Attribute{Type: typ, Color: index}, consumed
		}
		rgb = xtermRGB(slice[2])
	case 2:
		if len(slice) < 5 {
			return Attribute{Type: AttributeTypeUnknown, Params: slice}, len(slice)
		}
		consumed = 5
		rgb = color.RGB{
			R: uint8(min(0xFF, slice[2])),
			G: uint8(min(0xFF, slice[3])),
			B: uint8(min(0xFF, slice[4])),
		}
	default:
		return Attribute{Type: AttributeTypeUnknown, Params: slice[:2]}, 2
	}

	limit := color.BrightWhite
	if typ == AttributeTypeBackground {
		limit = color.White
	}
	return Attribute{Type: typ, Color: nearest(rgb, limit)}, consumed
}

// xtermRGB returns the RGB value of a 256-color index at or above 16.
func xtermRGB(n uint16) color.RGB {
	if n >= 232 {
		v := uint8(min(255, (n-232)*10+8))
		return color.RGB{R: v, G: v, B: v}
	}
	n -= 16
	level := func(v uint16) uint8 {
		if v == 0 {
			return 0
		}
		return uint8(v*40 + 55)
	}
	return color.RGB{R: level(n / 36), G: level((n / 6) % 6), B: level(n % 6)}
}

// nearest returns the palette index in [0, limit] closest to rgb.
func nearest(rgb color.RGB, limit color.Index) color.Index {
	best := color.Black
	bestDist := -1
	for i := color.Black; i <= limit; i++ {
		c := color.VGA[i]
		dr := int(c.R) - int(rgb.R)
		dg := int(c.G) - int(rgb.G)
		db := int(c.B) - int(rgb.B)
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}
