package style

import (
	"fmt"

	"github.com/hnimtadd/bbsterm/terminal/color"
	"github.com/hnimtadd/bbsterm/terminal/sgr"
)

// Style attribute for a cell.
type Style struct {
	// Foreground is 0..15. SGR 30..37 only sets the low half, the bright
	// half comes from SGR 90..97 or from decoded cell records.
	Foreground color.Index
	// Background is 0..7.
	Background color.Index

	Bright    bool
	Blink     bool
	Reverse   bool
	Invisible bool
}

// Normal is the attribute of erased cells: gray on black, no flags.
func Normal() Style {
	return Style{Foreground: color.White, Background: color.Black}
}

func (s *Style) Reset() {
	*s = Normal()
}

func (s Style) IsNormal() bool {
	return s == Normal()
}

// FG returns the stored foreground with the bright flag folded in.
func (s Style) FG() color.Index {
	if s.Bright {
		return s.Foreground.Bright()
	}
	return s.Foreground
}

// BG returns the stored background. With iCE colors the blink flag selects
// the bright half instead of blinking.
func (s Style) BG(iceColors bool) color.Index {
	if iceColors && s.Blink {
		return s.Background.Bright()
	}
	return s.Background
}

// Render resolves the colors a renderer should use: reverse swaps fg and bg
// and invisible paints the glyph in the background color.
func (s Style) Render(iceColors bool) (fg, bg color.Index, blink bool) {
	fg, bg = s.FG(), s.BG(iceColors)
	if s.Reverse {
		fg, bg = bg, fg
	}
	if s.Invisible {
		fg = bg
	}
	return fg, bg, s.Blink && !iceColors
}

// Apply updates the style with one SGR attribute.
func (s *Style) Apply(attr sgr.Attribute) bool {
	switch attr.Type {
	case sgr.AttributeTypeUnset:
		s.Reset()
	case sgr.AttributeTypeBright:
		s.Bright = true
	case sgr.AttributeTypeResetBright:
		s.Bright = false
	case sgr.AttributeTypeBlink:
		s.Blink = true
	case sgr.AttributeTypeResetBlink:
		s.Blink = false
	case sgr.AttributeTypeReverse:
		s.Reverse = true
	case sgr.AttributeTypeResetReverse:
		s.Reverse = false
	case sgr.AttributeTypeInvisible:
		s.Invisible = true
	case sgr.AttributeTypeResetInvisible:
		s.Invisible = false
	case sgr.AttributeTypeForeground:
		s.Foreground = attr.Color & 0x0F
	case sgr.AttributeTypeBackground:
		s.Background = attr.Color.Base()
	case sgr.AttributeTypeResetFg:
		s.Foreground = color.White
	case sgr.AttributeTypeResetBg:
		s.Background = color.Black
	default:
		return false
	}
	return true
}

func (s Style) String() string {
	return fmt.Sprintf(
		"Style{fg: %s, bg: %s, bright: %t, blink: %t, reverse: %t, invisible: %t}",
		s.Foreground, s.Background, s.Bright, s.Blink, s.Reverse, s.Invisible,
	)
}
