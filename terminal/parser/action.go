package parser

import (
	"fmt"
	"strings"

	"github.com/hnimtadd/bbsterm/terminal/music"
	"github.com/hnimtadd/bbsterm/terminal/sequences/csi"
	"github.com/hnimtadd/bbsterm/terminal/sequences/esc"
)

// ActionType is an action that taked when event or
// state transition occurs
type ActionType int

const (
	ActionNone ActionType = iota
	ActionIgnore
	ActionPrint
	ActionExecute
	ActionCollect
	ActionMarker
	ActionParam
	ActionESCDispatch
	ActionCSIDispatch
	ActionFunctionKey
	ActionMusicPut
	ActionNote
	ActionMusicEnd
)

func (a ActionType) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionIgnore:
		return "Ignore"
	case ActionPrint:
		return "Print"
	case ActionExecute:
		return "Execute"
	case ActionCollect:
		return "Collect"
	case ActionMarker:
		return "Marker"
	case ActionParam:
		return "Param"
	case ActionESCDispatch:
		return "ESCDispatch"
	case ActionCSIDispatch:
		return "CSIDispatch"
	case ActionFunctionKey:
		return "FunctionKey"
	case ActionMusicPut:
		return "MusicPut"
	case ActionNote:
		return "Note"
	case ActionMusicEnd:
		return "MusicEnd"
	default:
		return "Unknown"
	}
}

// Action is the action that a caller of the parser is expected to
// take as a result of some input character
type Action struct {
	Type ActionType

	// Draw character to the screen. This is the raw byte, charset
	// decoding is up to the caller.
	PrintData uint8

	// ExecuteData the C0 function.
	ExecuteData uint8

	// execute the CSI command.
	CSIDispatchData *csi.Command

	// execute the ESC command.
	ESCDispatchData *esc.Command

	// report a keypad key.
	FunctionKeyData *esc.FunctionKey

	// a completed note of the running music sequence.
	NoteData *music.Note
}

func (a *Action) String() string {
	if a == nil {
		return "{nil}"
	}
	builder := new(strings.Builder)
	fmt.Fprintf(builder, "{ .%s = ", a.Type.String())
	switch a.Type {
	case ActionPrint:
		fmt.Fprintf(builder, "0x%x", a.PrintData)
	case ActionExecute:
		fmt.Fprintf(builder, "0x%x", a.ExecuteData)
	case ActionCSIDispatch:
		if a.CSIDispatchData != nil {
			fmt.Fprintf(builder, "%s", a.CSIDispatchData.String())
		} else {
			fmt.Fprintf(builder, "nil")
		}
	case ActionESCDispatch:
		if a.ESCDispatchData != nil {
			fmt.Fprintf(builder, "%s", a.ESCDispatchData.String())
		} else {
			fmt.Fprintf(builder, "nil")
		}
	case ActionFunctionKey:
		if a.FunctionKeyData != nil {
			fmt.Fprintf(builder, "%s", a.FunctionKeyData.String())
		} else {
			fmt.Fprintf(builder, "nil")
		}
	case ActionNote:
		if a.NoteData != nil {
			fmt.Fprintf(builder, "%s", a.NoteData.String())
		} else {
			fmt.Fprintf(builder, "nil")
		}
	}
	fmt.Fprintf(builder, "}")
	return builder.String()
}
