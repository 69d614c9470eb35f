package style

import (
	"testing"

	"github.com/hnimtadd/bbsterm/terminal/color"
	"github.com/hnimtadd/bbsterm/terminal/sgr"
	"github.com/stretchr/testify/assert"
)

func TestStyle_Normal(t *testing.T) {
	s := Normal()
	assert.True(t, s.IsNormal())
	assert.Equal(t, color.White, s.FG())
	assert.Equal(t, color.Black, s.BG(false))

	s.Bright = true
	assert.False(t, s.IsNormal())
	s.Reset()
	assert.True(t, s.IsNormal())
}

func TestStyle_Apply(t *testing.T) {
	tcs := []struct {
		name     string
		start    Style
		attrs    []sgr.Attribute
		expected func(*testing.T, Style)
	}{
		{
			name:  "bright yellow keeps background",
			start: Style{Foreground: color.White, Background: color.Blue},
			attrs: []sgr.Attribute{
				{Type: sgr.AttributeTypeBright},
				{Type: sgr.AttributeTypeForeground, Color: color.Yellow},
			},
			expected: func(t *testing.T, s Style) {
				assert.Equal(t, color.BrightYellow, s.FG())
				assert.Equal(t, color.Blue, s.Background)
			},
		},
		{
			name:  "unset resets everything",
			start: Style{Foreground: color.Red, Background: color.Blue, Bright: true, Blink: true, Reverse: true, Invisible: true},
			attrs: []sgr.Attribute{{Type: sgr.AttributeTypeUnset}},
			expected: func(t *testing.T, s Style) {
				assert.True(t, s.IsNormal())
			},
		},
		{
			name:  "toggles",
			start: Normal(),
			attrs: []sgr.Attribute{
				{Type: sgr.AttributeTypeBlink},
				{Type: sgr.AttributeTypeReverse},
				{Type: sgr.AttributeTypeInvisible},
				{Type: sgr.AttributeTypeResetReverse},
			},
			expected: func(t *testing.T, s Style) {
				assert.True(t, s.Blink)
				assert.False(t, s.Reverse)
				assert.True(t, s.Invisible)
			},
		},
		{
			name:  "default colors",
			start: Style{Foreground: color.Red, Background: color.Cyan},
			attrs: []sgr.Attribute{
				{Type: sgr.AttributeTypeResetFg},
				{Type: sgr.AttributeTypeResetBg},
			},
			expected: func(t *testing.T, s Style) {
				assert.True(t, s.IsNormal())
			},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.start
			for _, attr := range tc.attrs {
				assert.True(t, s.Apply(attr))
			}
			tc.expected(t, s)
		})
	}

	s := Normal()
	assert.False(t, s.Apply(sgr.Attribute{Type: sgr.AttributeTypeUnknown}))
	assert.True(t, s.IsNormal())
}

func TestStyle_Render(t *testing.T) {
	s := Style{Foreground: color.Red, Background: color.Blue, Bright: true, Reverse: true}
	fg, bg, blink := s.Render(false)
	assert.Equal(t, color.Blue, fg)
	assert.Equal(t, color.BrightRed, bg)
	assert.False(t, blink)

	s = Style{Foreground: color.Green, Background: color.Cyan, Invisible: true, Blink: true}
	fg, bg, blink = s.Render(false)
	assert.Equal(t, color.Cyan, fg)
	assert.Equal(t, color.Cyan, bg)
	assert.True(t, blink)

	fg, bg, blink = s.Render(true)
	assert.Equal(t, color.BrightCyan, bg)
	assert.Equal(t, bg, fg)
	assert.False(t, blink)
}
