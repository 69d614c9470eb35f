package parser

// This contains the state transition table for VT emulation.
//
// This is based on the vt100.net state machine:
// https://vt100.net/emu/dec_ansi_parser
// without the C1, DCS, OSC and SOS/PM/APC paths. Bytes 0x80..0xFF are glyphs
// on the BBS code pages, so they print in ground and end a CSI sequence as
// its final byte.
type parserTable [256][stateCount]Transition

// Function to generate the full state transition table for the VT emulation
func newParserTable() *parserTable {
	t := new(parserTable)

	// anywhere
	{
		anywhere := []State{
			StateGround,
			StateEscape,
			StateEscapeIntermediate,
			StateCSIEntry,
			StateCSIParam,
			StateCSIIntermediate,
			StateFunctionKey,
		}
		for _, source := range anywhere {
			// C0 controls execute in place.
			t.addRange(0x00, 0x17, source, source, ActionExecute)
			t.addSingle(0x19, source, source, ActionExecute)
			t.addRange(0x1C, 0x1F, source, source, ActionExecute)

			// => ground
			t.addSingle(0x18, source, StateGround, ActionIgnore)
			t.addSingle(0x1A, source, StateGround, ActionIgnore)

			// => escape
			t.addSingle(0x1B, source, StateEscape, ActionNone)
		}
	}

	// ground
	{
		source := StateGround

		t.addRange(0x20, 0x7E, source, source, ActionPrint)
		t.addSingle(0x7F, source, source, ActionExecute)
		t.addRange(0x80, 0xFF, source, source, ActionPrint)
	}

	// escape
	{
		source := StateEscape

		// => ground
		t.addRange(0x30, 0x7E, source, StateGround, ActionESCDispatch)
		t.addRange(0x80, 0xFF, source, StateGround, ActionIgnore)

		// => escapeIntermediate
		t.addRange(0x20, 0x2F, source, StateEscapeIntermediate, ActionCollect)

		// => csiEntry
		t.addSingle('[', source, StateCSIEntry, ActionNone)

		// => functionKey
		t.addSingle('O', source, StateFunctionKey, ActionNone)

		// internal events
		t.addSingle(0x7F, source, source, ActionIgnore)
	}

	// escapeIntermediate
	{
		source := StateEscapeIntermediate
		// => ground
		t.addRange(0x30, 0x7E, source, StateGround, ActionESCDispatch)
		t.addRange(0x80, 0xFF, source, StateGround, ActionIgnore)

		// internal events
		t.addRange(0x20, 0x2F, source, source, ActionCollect)
		t.addSingle(0x7F, source, source, ActionIgnore)
	}

	// functionKey
	{
		source := StateFunctionKey
		// => ground
		t.addRange(0x20, 0x7E, source, StateGround, ActionFunctionKey)
		t.addRange(0x80, 0xFF, source, StateGround, ActionIgnore)

		// internal events
		t.addSingle(0x7F, source, source, ActionIgnore)
	}

	// csiEntry
	{
		source := StateCSIEntry
		// => ground
		t.addRange(0x40, 0xFF, source, StateGround, ActionCSIDispatch)

		// => csiParam
		t.addRange(0x30, 0x39, source, StateCSIParam, ActionParam)
		t.addSingle(0x3A, source, StateCSIParam, ActionParam)
		t.addSingle(0x3B, source, StateCSIParam, ActionParam)
		t.addRange(0x3C, 0x3F, source, StateCSIParam, ActionMarker)

		// => csiIntermediate
		t.addRange(0x20, 0x2F, source, StateCSIIntermediate, ActionCollect)

		// internal events
		t.addSingle(0x7F, source, source, ActionIgnore)
	}

	// csiParam
	{
		source := StateCSIParam
		// => ground
		t.addRange(0x3C, 0xFF, source, StateGround, ActionCSIDispatch)

		// => csiIntermediate
		t.addRange(0x20, 0x2F, source, StateCSIIntermediate, ActionCollect)

		// internal events
		t.addRange(0x30, 0x39, source, source, ActionParam)
		t.addSingle(0x3A, source, source, ActionParam)
		t.addSingle(0x3B, source, source, ActionParam)
		t.addSingle(0x7F, source, source, ActionIgnore)
	}

	// csiIntermediate
	{
		source := StateCSIIntermediate

		// => ground
		t.addRange(0x30, 0xFF, source, StateGround, ActionCSIDispatch)

		// internal events
		t.addRange(0x20, 0x2F, source, source, ActionCollect)
		t.addSingle(0x7F, source, source, ActionIgnore)
	}

	// music
	{
		source := StateMusic

		t.addRange(0x00, 0xFF, source, source, ActionMusicPut)

		// => ground
		t.addSingle(0x0E, source, StateGround, ActionMusicEnd)
		t.addSingle(0x18, source, StateGround, ActionMusicEnd)
		t.addSingle(0x1A, source, StateGround, ActionMusicEnd)

		// => escape
		t.addSingle(0x1B, source, StateEscape, ActionMusicEnd)
	}
	return t
}

func (t *parserTable) addSingle(c uint8, s0 State, s1 State, a ActionType) {
	t[c][s0] = transition(s1, a)
}

func (t *parserTable) addRange(from uint8, to uint8, s0 State, s1 State, a ActionType) {
	i := from
	for {
		if i <= to {
			t.addSingle(i, s0, s1, a)
		}
		// If to is 0xFF, increase i will overflow, Return early
		if i == to {
			break
		}
		i++
	}
}

type Transition struct {
	state  State
	action ActionType
}

func transition(state State, action ActionType) Transition {
	return Transition{state: state, action: action}
}
