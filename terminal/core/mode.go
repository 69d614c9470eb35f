package core

import (
	"maps"
	"slices"
)

// A struct that maintains the state of all settable modes
type Mode struct {
	Name  string
	Value int
	/// True if this is an ANSI mode
	Ansi    bool
	Default bool
}

func entryForMode(name string, value int, ansi bool, defaultMode bool) Mode {
	return Mode{
		Name:    name,
		Value:   value,
		Ansi:    ansi,
		Default: defaultMode,
	}
}

var (
	// ansi modes
	ModeInsert   = entryForMode("insert", 4, true, false)     // IRM
	ModeLineFeed = entryForMode("line feed", 20, true, false) // LNM

	// DEC modes
	ModeOrigin        = entryForMode("origin", 6, false, false)         // DECOM
	ModeWraparound    = entryForMode("wraparound", 7, false, true)      // DECAWM
	ModeCursorVisible = entryForMode("cursor visible", 25, false, true) // DECTCEM

	// The blink bit selects a bright background instead of blinking.
	ModeIceColors = entryForMode("ice colors", 33, false, false)

	// The full list of avialbe entries. For documentation on these modes, see
	// how they are used in the VT100 and ECMA-48 standards or google their values.
	entries = []Mode{
		ModeInsert,
		ModeLineFeed,
		ModeOrigin,
		ModeWraparound,
		ModeCursorVisible,
		ModeIceColors,
	}
)

// Defaults returns the default value of every mode. origin and autowrap
// override the built-in defaults of DECOM and DECAWM.
func Defaults(origin, autowrap bool) map[Mode]bool {
	packed := make(map[Mode]bool, len(entries))
	for _, m := range entries {
		packed[m] = m.Default
	}
	packed[ModeOrigin] = origin
	packed[ModeWraparound] = autowrap
	return packed
}

type ModeState struct {
	// The values of current modes
	values map[Mode]bool
	// The default values of modes
	defaults map[Mode]bool
}

// NewModeState creates the state with the given defaults, all modes start
// at their default value. A nil map uses the built-in defaults.
func NewModeState(def map[Mode]bool) *ModeState {
	if def == nil {
		def = Defaults(ModeOrigin.Default, ModeWraparound.Default)
	}
	state := &ModeState{defaults: def}
	state.Reset()
	return state
}

func (s *ModeState) Set(m Mode, value bool) {
	s.values[m] = value
}

func (s *ModeState) Get(m Mode) bool {
	return s.values[m]
}

// Default returns the configured default of m.
func (s *ModeState) Default(m Mode) bool {
	return s.defaults[m]
}

// Restore sets m back to its default.
func (s *ModeState) Restore(m Mode) {
	s.values[m] = s.defaults[m]
}

func (s *ModeState) Reset() {
	s.values = make(map[Mode]bool, len(s.defaults))
	maps.Copy(s.values, s.defaults)
}

func ModeFromInt(input int, ansi bool) *Mode {
	for entry := range slices.Values(entries) {
		if entry.Value == input && entry.Ansi == ansi {
			return &entry
		}
	}
	return nil
}

/* Helpful doc:
DECOM (originMode) doc: https://documentation.help/putty/config-decom.html
*/
