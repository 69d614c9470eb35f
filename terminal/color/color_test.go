package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex_DOSRoundTrip(t *testing.T) {
	tcs := []struct {
		name  string
		index Index
		dos   uint8
	}{
		{name: "black", index: Black, dos: 0},
		{name: "red is 4 on the PC", index: Red, dos: 4},
		{name: "blue is 1 on the PC", index: Blue, dos: 1},
		{name: "yellow is brown on the PC", index: Yellow, dos: 6},
		{name: "cyan", index: Cyan, dos: 3},
		{name: "bright yellow", index: BrightYellow, dos: 14},
		{name: "bright white", index: BrightWhite, dos: 15},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.dos, tc.index.DOS())
			assert.Equal(t, tc.index, FromDOS(tc.dos))
		})
	}
}

func TestIndex_Bright(t *testing.T) {
	assert.Equal(t, BrightYellow, Yellow.Bright())
	assert.Equal(t, Yellow, BrightYellow.Base())
	assert.True(t, BrightYellow.IsBright())
	assert.False(t, Yellow.IsBright())
	assert.Equal(t, "bright yellow", BrightYellow.String())
	assert.Equal(t, "Index(16)", Index(16).String())
}

func TestVGA(t *testing.T) {
	assert.Equal(t, "#aaaaaa", VGA[White].Hex())
	assert.Equal(t, "#ffff55", VGA[BrightYellow].Hex())
}
