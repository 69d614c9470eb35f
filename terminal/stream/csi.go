package stream

import (
	"github.com/hnimtadd/bbsterm/terminal/core"
	"github.com/hnimtadd/bbsterm/terminal/handler"
	"github.com/hnimtadd/bbsterm/terminal/sequences/csi"
	"github.com/hnimtadd/bbsterm/terminal/sgr"
)

// csiFunc runs one CSI command. Omitted parameters are resolved with
// cmd.Param and cmd.Count.
type csiFunc func(s *Stream, cmd *csi.Command)

// csiTable maps (marker, final) to the command. ESC[M and ESC[| depend on
// the dialect and are resolved in csiDispatch.
var csiTable = map[csi.Key]csiFunc{
	// CUU - Cursor Up
	{Final: 'A'}: cursorUp,
	{Final: 'k'}: cursorUp,
	// CUD - Cursor Down
	{Final: 'B'}: cursorDown,
	// CUF - Cursor Forward
	{Final: 'C'}: cursorForward,
	// CUB - Cursor Backward
	{Final: 'D'}: cursorBackward,
	{Final: 'j'}: cursorBackward,
	// CNL - Cursor Next Line
	{Final: 'E'}: cursorNextLine,
	// CPL - Cursor Preceding Line
	{Final: 'F'}: editor("CPL", func(h handler.EditorHandler, cmd *csi.Command) {
		h.SetCursorUp(cmd.Count(0, 1), true)
	}),
	// CHA / HPA - Cursor Horizontal Position Absolute
	{Final: 'G'}: columnAbsolute,
	{Final: '`'}: columnAbsolute,
	// HPR - Horizontal Position Relative
	{Final: 'a'}: cursorForward,
	// VPA - Vertical Position Absolute
	{Final: 'd'}: editor("VPA", func(h handler.EditorHandler, cmd *csi.Command) {
		h.SetCursorRow(cmd.Count(0, 1))
	}),
	// VPR - Vertical Position Relative
	{Final: 'e'}: cursorDown,
	// CUP - Cursor Position
	{Final: 'H'}: cursorPosition,
	// HVP - Horizontal Vertical Position
	{Final: 'f'}: cursorPosition,
	// CHT - Cursor Horizontal Tabulation
	{Final: 'I'}: editor("CHT", func(h handler.EditorHandler, cmd *csi.Command) {
		h.SetCursorTabRight(cmd.Count(0, 1))
	}),
	// CBT - Cursor Backward Tabulation
	{Final: 'Z'}: editor("CBT", func(h handler.EditorHandler, cmd *csi.Command) {
		h.SetCursorTabLeft(cmd.Count(0, 1))
	}),
	// ED - Erase in Display
	{Final: 'J'}: eraseInDisplay,
	// EL - Erase in Line
	{Final: 'K'}: eraseInLine,
	// IL - Insert Lines
	{Final: 'L'}: editor("IL", func(h handler.EditorHandler, cmd *csi.Command) {
		h.InsertLines(cmd.Count(0, 1))
	}),
	// DL - Delete Lines, whatever the dialect
	{Final: 'Y'}: deleteLines,
	// DCH - Delete Characters
	{Final: 'P'}: editor("DCH", func(h handler.EditorHandler, cmd *csi.Command) {
		h.DeleteChars(cmd.Count(0, 1))
	}),
	// ICH - Insert Blanks
	{Final: '@'}: editor("ICH", func(h handler.EditorHandler, cmd *csi.Command) {
		h.InsertBlanks(cmd.Count(0, 1))
	}),
	// ECH - Erase Characters
	{Final: 'X'}: editor("ECH", func(h handler.EditorHandler, cmd *csi.Command) {
		h.EraseChars(cmd.Count(0, 1))
	}),
	// SU - Scroll Up
	{Final: 'S'}: editor("SU", func(h handler.EditorHandler, cmd *csi.Command) {
		h.ScrollUp(cmd.Count(0, 1))
	}),
	// SD - Scroll Down
	{Final: 'T'}: editor("SD", func(h handler.EditorHandler, cmd *csi.Command) {
		h.ScrollDown(cmd.Count(0, 1))
	}),
	// REP - Repeat previous character
	{Final: 'b'}: editor("REP", func(h handler.EditorHandler, cmd *csi.Command) {
		h.PrintRepeat(cmd.Count(0, 1))
	}),
	// TBC - Tabulation Clear
	{Final: 'g'}: func(s *Stream, cmd *csi.Command) {
		mode := csi.TBCMode(cmd.Param(0, 0))
		if mode != csi.TBCModeCurrent && mode != csi.TBCModeAll {
			s.logger.Debug("unknown TBC mode, ignoring", "command", cmd)
			return
		}
		if h, ok := implements[handler.FormatEffectorHandler](s, "TBC", cmd); ok {
			h.TabClear(mode)
		}
	},
	// SGR - Select Graphic Rendition
	{Final: 'm'}: graphicsRendition,
	// SM / RM - Set and Reset ANSI Mode
	{Final: 'h'}: setMode(true),
	{Final: 'l'}: setMode(false),
	// DECSET / DECRST - Set and Reset private mode
	{Marker: '?', Final: 'h'}: setMode(true),
	{Marker: '?', Final: 'l'}: setMode(false),
	// DECSTBM - Set Top and Bottom Margins
	{Final: 'r'}: func(s *Stream, cmd *csi.Command) {
		h, ok := implements[handler.VT100Handler](s, "DECSTBM", cmd)
		if !ok {
			return
		}
		h.SetTopAndBottomMargin(cmd.Param(0, 0), cmd.Param(1, 0))
	},
	// SCOSC - Save Cursor
	{Final: 's'}: func(s *Stream, cmd *csi.Command) {
		if h, ok := implements[handler.FormatEffectorHandler](s, "SCOSC", cmd); ok {
			h.SaveCursor()
		}
	},
	// SCORC - Restore Cursor
	{Final: 'u'}: func(s *Stream, cmd *csi.Command) {
		if h, ok := implements[handler.FormatEffectorHandler](s, "SCORC", cmd); ok {
			h.RestoreCursor()
		}
	},
	// DSR - Device Status Report
	{Final: 'n'}: deviceStatusReport,
	// Dialect query for ESC[M
	{Marker: '=', Final: 'n'}: func(s *Stream, cmd *csi.Command) {
		if h, ok := implements[handler.ReportHandler](s, "dialect report", cmd); ok {
			h.DialectReport()
		}
	},
	// DA - Device Attributes
	{Final: 'c'}: func(s *Stream, cmd *csi.Command) {
		if cmd.Param(0, 0) != 0 {
			s.logger.Debug("unknown DA request, ignoring", "command", cmd)
			return
		}
		if h, ok := implements[handler.ReportHandler](s, "DA", cmd); ok {
			h.DeviceAttributes()
		}
	},
	// BananaCom music, whatever the dialect
	{Final: 'N'}: func(s *Stream, _ *csi.Command) {
		s.startMusic()
	},
}

// csiDispatch runs a CSI command.
//
// Sequences with intermediates and unknown (marker, final) pairs are
// consumed with no effect.
func (s *Stream) csiDispatch(cmd *csi.Command) {
	if len(cmd.Intermediates) > 0 {
		s.logger.Debug("ignoring CSI with intermediates", "command", cmd)
		return
	}

	key := cmd.Key()
	switch key {
	case csi.Key{Final: 'M'}:
		if s.dialect == DialectMusic {
			s.startMusic()
		} else {
			deleteLines(s, cmd)
		}
		return
	case csi.Key{Final: '|'}:
		if s.dialect == DialectMusic {
			s.startMusic()
		} else {
			s.logger.Debug("music disabled, ignoring", "command", cmd)
		}
		return
	}

	fn, ok := csiTable[key]
	if !ok {
		s.logger.Debug("unknown CSI command, ignoring", "command", cmd)
		return
	}
	fn(s, cmd)
}

// implements asserts the handler into T, logging when it does not
// implement the command.
func implements[T any](s *Stream, name string, cmd *csi.Command) (T, bool) {
	h, ok := s.handler.(T)
	if !ok {
		s.logger.Warn("unimplemented "+name+" command", "command", cmd)
	}
	return h, ok
}

// editor wraps a command run by the EditorHandler.
func editor(name string, fn func(h handler.EditorHandler, cmd *csi.Command)) csiFunc {
	return func(s *Stream, cmd *csi.Command) {
		h, ok := implements[handler.EditorHandler](s, name, cmd)
		if !ok {
			return
		}
		fn(h, cmd)
	}
}

var (
	cursorUp = editor("CUU", func(h handler.EditorHandler, cmd *csi.Command) {
		h.SetCursorUp(cmd.Count(0, 1), false)
	})
	cursorDown = editor("CUD", func(h handler.EditorHandler, cmd *csi.Command) {
		h.SetCursorDown(cmd.Count(0, 1), false)
	})
	cursorForward = editor("CUF", func(h handler.EditorHandler, cmd *csi.Command) {
		h.SetCursorRight(cmd.Count(0, 1))
	})
	cursorBackward = editor("CUB", func(h handler.EditorHandler, cmd *csi.Command) {
		h.SetCursorLeft(cmd.Count(0, 1))
	})
	columnAbsolute = editor("CHA", func(h handler.EditorHandler, cmd *csi.Command) {
		h.SetCursorCol(cmd.Count(0, 1))
	})
	cursorPosition = editor("CUP", func(h handler.EditorHandler, cmd *csi.Command) {
		h.SetCursorPosition(cmd.Count(0, 1), cmd.Count(1, 1))
	})
	deleteLines = editor("DL", func(h handler.EditorHandler, cmd *csi.Command) {
		h.DeleteLines(cmd.Count(0, 1))
	})

	// CNL is a run of line feeds, each one scrolling at the bottom of the
	// region, then a carriage return.
	cursorNextLine = editor("CNL", func(h handler.EditorHandler, cmd *csi.Command) {
		for range cmd.Count(0, 1) {
			h.LineFeed()
		}
		h.CarriageReturn()
	})

	eraseInDisplay = editor("ED", func(h handler.EditorHandler, cmd *csi.Command) {
		mode := csi.EDMode(cmd.Param(0, 0))
		switch mode {
		case csi.EDModeBelow, csi.EDModeAbove, csi.EDModeComplete:
		case csi.EDModeScrollback:
			// There is no scrollback, 3 clears the screen like 2.
			mode = csi.EDModeComplete
		default:
			return
		}
		h.EraseInDisplay(mode)
	})

	eraseInLine = editor("EL", func(h handler.EditorHandler, cmd *csi.Command) {
		mode := csi.ELMode(cmd.Param(0, 0))
		if mode > csi.ELModeAll {
			return
		}
		h.EraseInLine(mode)
	})
)

func graphicsRendition(s *Stream, cmd *csi.Command) {
	h, ok := implements[handler.SGRHandler](s, "SGR", cmd)
	if !ok {
		return
	}
	// Omitted parameters read as 0, so "ESC[;1m" resets then sets bright.
	params := make([]uint16, len(cmd.Params))
	for i := range params {
		params[i] = cmd.Param(i, 0)
	}
	p := sgr.Parser{Params: params}
	for attr := range p.Iter() {
		if attr.Type == sgr.AttributeTypeUnknown {
			s.logger.Debug("unknown SGR attribute, skipping", "attribute", attr)
			continue
		}
		h.SetGraphicsRendition(attr)
	}
}

func setMode(enabled bool) csiFunc {
	return func(s *Stream, cmd *csi.Command) {
		h, ok := implements[handler.VT100Handler](s, "SM/RM", cmd)
		if !ok {
			return
		}
		ansiMode := cmd.Marker == 0
		for i := range cmd.Params {
			modeInt := int(cmd.Param(i, 0))
			if mode := core.ModeFromInt(modeInt, ansiMode); mode != nil {
				h.SetMode(*mode, enabled)
			} else {
				s.logger.Debug("unimplemented mode", "mode", modeInt, "ansi", ansiMode)
			}
		}
	}
}

func deviceStatusReport(s *Stream, cmd *csi.Command) {
	req := csi.DSRRequest(cmd.Param(0, 0))
	switch req {
	case csi.DSRStatus, csi.DSRCursorPosition, csi.DSRScreenSize:
	default:
		s.logger.Debug("unknown DSR request, ignoring", "command", cmd)
		return
	}
	if h, ok := implements[handler.ReportHandler](s, "DSR", cmd); ok {
		h.DeviceStatusReport(req)
	}
}
