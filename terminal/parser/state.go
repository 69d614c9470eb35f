package parser

// State for the state machine
type State int

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCSIEntry
	StateCSIParam
	StateCSIIntermediate
	// StateFunctionKey waits for the key byte of an SS3 sequence (ESC O).
	StateFunctionKey
	// StateMusic feeds bytes to the music sub-parser until SO, ESC or the
	// end of the stream.
	StateMusic

	stateCount
)

func (s State) String() string {
	switch s {
	case StateGround:
		return "Ground"
	case StateEscape:
		return "Escape"
	case StateEscapeIntermediate:
		return "EscapeIntermediate"
	case StateCSIEntry:
		return "CSIEntry"
	case StateCSIParam:
		return "CSIParam"
	case StateCSIIntermediate:
		return "CSIIntermediate"
	case StateFunctionKey:
		return "FunctionKey"
	case StateMusic:
		return "Music"
	default:
		return "Unknown"
	}
}
