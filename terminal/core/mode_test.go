package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ModeState(t *testing.T) {
	// Create a new mode state
	state := NewModeState(nil)

	assert.False(t, state.Get(ModeInsert), "Expected ModeInsert to be false by default")
	assert.True(t, state.Get(ModeWraparound), "Expected ModeWraparound to be true by default")
	assert.True(t, state.Get(ModeCursorVisible))

	// Set the mode
	state.Set(ModeInsert, true)
	assert.True(t, state.Get(ModeInsert), "Expected ModeInsert to be set to true")

	// Unset the mode
	state.Set(ModeInsert, false)
	assert.False(t, state.Get(ModeInsert), "Expected ModeInsert to be set to false")
}

func TestConfiguredDefaults(t *testing.T) {
	state := NewModeState(Defaults(true, false))
	assert.True(t, state.Get(ModeOrigin))
	assert.False(t, state.Get(ModeWraparound))

	state.Set(ModeOrigin, false)
	state.Set(ModeWraparound, true)
	state.Restore(ModeOrigin)
	assert.True(t, state.Get(ModeOrigin))
	assert.True(t, state.Get(ModeWraparound))

	state.Reset()
	assert.False(t, state.Get(ModeWraparound))
	assert.True(t, state.Default(ModeOrigin))
}

func TestModeFromInput(t *testing.T) {
	tests := []struct {
		value int
		ansi  bool
		want  Mode
	}{
		{value: 4, ansi: true, want: ModeInsert},
		{value: 20, ansi: true, want: ModeLineFeed},
		{value: 6, want: ModeOrigin},
		{value: 7, want: ModeWraparound},
		{value: 25, want: ModeCursorVisible},
		{value: 33, want: ModeIceColors},
	}
	for _, tc := range tests {
		t.Run(tc.want.Name, func(t *testing.T) {
			mode := ModeFromInt(tc.value, tc.ansi)
			require.NotNil(t, mode)
			assert.Equal(t, tc.want, *mode)
		})
	}

	assert.Nil(t, ModeFromInt(4, false))
	assert.Nil(t, ModeFromInt(1049, false))
}
