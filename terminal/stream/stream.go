package stream

import (
	"slices"
	"unicode/utf8"

	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/terminal/ansi"
	"github.com/hnimtadd/bbsterm/terminal/handler"
	"github.com/hnimtadd/bbsterm/terminal/music"
	"github.com/hnimtadd/bbsterm/terminal/parser"
	"github.com/hnimtadd/bbsterm/terminal/sequences/esc"
	"github.com/hnimtadd/bbsterm/terminal/utils"
	"golang.org/x/text/encoding/charmap"
)

// This is the maximum number of codepoints we can decode
// at one time for this function call. This is somewhat arbitrary
// so if someone can demonstrate a better number then we can switch.
const MaxCodePoints = 4096

// This type can be used to process a stream of tty control characters.
// This will call various callsback functions on the handler. The handler
// only has to implement the callbacks it cares about; any unimplemented
// callbacks will logged at runtime
//
// To figure out what callback are available, we try to cast the handler
// into the interfaces of the handler package.
type Stream struct {
	handler     any
	parser      *parser.Parser
	utf8Decoder *UTF8Decoder
	cpBuf       []uint32

	dialect Dialect
	charset Charset

	// notes of the music sequence being parsed.
	notes []music.Note

	logger logger.Logger
}

func NewStream(handler any, opts Options) *Stream {
	l := logger.OrDiscard(opts.Logger)
	return &Stream{
		handler:     handler,
		parser:      parser.NewParser(l),
		utf8Decoder: NewUTF8Decoder(),
		dialect:     opts.Dialect,
		charset:     opts.Charset,
		logger:      l,
	}
}

func (s *Stream) Dialect() Dialect { return s.dialect }

// NextSlice processes a string of characters.
//
// Runs of printable text in the ground state are printed without going
// through the state machine.
func (s *Stream) NextSlice(input []uint8) {
	if s.cpBuf == nil {
		s.cpBuf = make([]uint32, MaxCodePoints)
	}
	offset := 0
	for offset < len(input) {
		if s.parser.State != parser.StateGround {
			s.Next(input[offset])
			offset++
			continue
		}
		consumed := s.printRun(input[offset:])
		if consumed == 0 {
			s.Next(input[offset])
			offset++
			continue
		}
		offset += consumed
	}
}

// printRun prints the printable prefix of input and returns the number of
// bytes it took.
func (s *Stream) printRun(input []uint8) int {
	if s.charset == CharsetUTF8 {
		decoded, consumed := s.utf8Decoder.DecodeUntilControlSeq(input, s.cpBuf)
		for cp := range slices.Values(s.cpBuf[:decoded]) {
			s.print(cp)
		}
		return consumed
	}

	n := 0
	for _, c := range input {
		if ansi.IsC0(c) || c == ansi.C0.DEL {
			break
		}
		s.print(s.decodeByte(c))
		n++
	}
	return n
}

// Next process a single character, prefer NextSlice for longer input.
func (s *Stream) Next(c uint8) {
	// The scalar path is responsible for decoding UTF-8 in the ground
	// state. Everything else goes to the parser as raw bytes.
	if s.parser.State == parser.StateGround &&
		s.charset == CharsetUTF8 &&
		(c >= 0x80 || s.utf8Decoder.Pending()) {
		s.nextUtf8(c)
		return
	}
	s.nextNonUtf8(c)
}

// Flush ends the stream. A running music sequence is completed and handed
// to the player, any other partial sequence is abandoned.
func (s *Stream) Flush() {
	if cp, generated := s.utf8Decoder.Flush(); generated {
		s.print(cp)
	}
	s.handleActions(s.parser.Flush())
}

// nextUtf8 processes a single UTF-8 byte and print as necessary.
func (s *Stream) nextUtf8(c uint8) {
	utils.Assert(s.parser.State == parser.StateGround)

	cp, generated, consumed := s.utf8Decoder.Next(c)
	if generated {
		s.handleCodepoint(cp)
	}

	if !consumed {
		cp, generated, consumed := s.utf8Decoder.Next(c)

		// It should be impossible for the utf8Decoder
		// to not consume the byte twice in a row.
		utils.Assert(consumed)
		if generated {
			s.handleCodepoint(cp)
		}
	}
}

// To be called whenever the utf-8 decoder produces a codepoint.
//
// The decoder hands back ASCII bytes that ended an ill-formed sequence,
// those go through the parser like any other byte.
func (s *Stream) handleCodepoint(cp uint32) {
	if cp < 0x80 {
		s.nextNonUtf8(uint8(cp))
		return
	}
	s.print(cp)
}

// Process the next character and call any callbacks if necessary.
func (s *Stream) nextNonUtf8(c uint8) {
	s.handleActions(s.parser.Next(c))
}

func (s *Stream) handleActions(actions [3]*parser.Action) {
	for action := range slices.Values(actions[:]) {
		if action == nil {
			continue
		}
		switch action.Type {
		case parser.ActionPrint:
			s.print(s.decodeByte(action.PrintData))

		case parser.ActionExecute:
			s.execute(action.ExecuteData)

		case parser.ActionCSIDispatch:
			s.csiDispatch(action.CSIDispatchData)

		case parser.ActionESCDispatch:
			s.escDispatch(action.ESCDispatchData)

		case parser.ActionFunctionKey:
			s.functionKey(action.FunctionKeyData)

		case parser.ActionNote:
			s.notes = append(s.notes, *action.NoteData)

		case parser.ActionMusicEnd:
			s.endMusic()

		default:
			s.logger.Warn("unhandled parser action", "action", action.String())
		}
	}
}

// decodeByte maps a printed byte to its character in the stream charset.
func (s *Stream) decodeByte(c uint8) uint32 {
	if c < 0x80 {
		return uint32(c)
	}
	if s.charset == CharsetCP437 {
		return uint32(charmap.CodePage437.DecodeByte(c))
	}
	// High bytes in UTF-8 mode are decoded before the parser sees them.
	return utf8.RuneError
}

func (s *Stream) execute(c uint8) {
	if s.handler == nil {
		s.logger.Warn("handler is nil, ignoring")
		return
	}
	c0 := ansi.C0
	switch c {
	case c0.BEL:
		if handler, implemented := s.handler.(handler.BellHandler); implemented {
			handler.Bell()
		} else {
			s.logger.Debug("unimplemented execute", "codepoint", ansi.Name(c))
		}

	case c0.BS:
		if handler, implemented := s.handler.(handler.EditorHandler); implemented {
			handler.Backspace()
		} else {
			s.logger.Warn("unimplemented execute", "codepoint", ansi.Name(c))
		}

	case c0.HT:
		if handler, implemented := s.handler.(handler.EditorHandler); implemented {
			handler.SetCursorTabRight(1)
		} else {
			s.logger.Warn("unimplemented execute", "codepoint", ansi.Name(c))
		}

	case c0.LF, c0.VT:
		if handler, implemented := s.handler.(handler.EditorHandler); implemented {
			handler.LineFeed()
		} else {
			s.logger.Warn("unimplemented execute", "codepoint", ansi.Name(c))
		}

	case c0.FF:
		if handler, implemented := s.handler.(handler.FormatEffectorHandler); implemented {
			handler.FormFeed()
		} else {
			s.logger.Warn("unimplemented execute", "codepoint", ansi.Name(c))
		}

	case c0.CR:
		if handler, implemented := s.handler.(handler.EditorHandler); implemented {
			handler.CarriageReturn()
		} else {
			s.logger.Warn("unimplemented execute", "codepoint", ansi.Name(c))
		}

	case c0.DEL:
		if handler, implemented := s.handler.(handler.EditorHandler); implemented {
			handler.Delete()
		} else {
			s.logger.Warn("unimplemented execute", "codepoint", ansi.Name(c))
		}

	default:
		// NUL, ENQ, SO, SI and the rest have no effect on the buffer.
		s.logger.Debug("ignoring control character", "codepoint", ansi.Name(c))
	}
}

func (s *Stream) print(c uint32) {
	if handler, implemented := s.handler.(handler.PrintHandler); implemented {
		handler.Print(c)
	} else {
		s.logger.Warn("unimplemented print", "codepoint", c)
	}
}

func (s *Stream) functionKey(key *esc.FunctionKey) {
	if handler, implemented := s.handler.(handler.KeyHandler); implemented {
		handler.FunctionKey(key.Key)
	} else {
		s.logger.Debug("unimplemented function key", "command", key)
	}
}

// startMusic switches the parser into the music state. The bytes up to the
// terminator are read as notes.
func (s *Stream) startMusic() {
	s.notes = s.notes[:0]
	s.parser.StartMusic()
}

func (s *Stream) endMusic() {
	notes := slices.Clone(s.notes)
	s.notes = s.notes[:0]
	if len(notes) == 0 {
		s.logger.Debug("empty music sequence")
		return
	}
	if handler, implemented := s.handler.(handler.MusicHandler); implemented {
		handler.PlayMusic(notes)
	} else {
		s.logger.Debug("unimplemented music", "notes", len(notes))
	}
}

// escDispatch runs the two byte escape sequences. Sequences with
// intermediates (charset designations and the like) are consumed with no
// effect.
func (s *Stream) escDispatch(c *esc.Command) {
	if len(c.Intermediates) > 0 {
		s.logger.Debug("ignoring ESC with intermediates", "command", c)
		return
	}

	handler, implemented := s.handler.(handler.FormatEffectorHandler)
	if !implemented {
		s.logger.Warn("unimplemented ESC command", "command", c)
		return
	}

	switch c.Final {
	case 'D':
		// IND - Index
		handler.Index()
	case 'E':
		// NEL - NextLine
		handler.NextLine()
	case 'H':
		// HTS - Tabset
		handler.TabSet()
	case 'M':
		// RI - Reverse Index
		handler.ReverseIndex()
	case '7':
		// DECSC - Save Cursor
		handler.SaveCursor()
	case '8':
		// DECRC - Restore Cursor
		handler.RestoreCursor()
	case 'c':
		// RIS - Full Reset
		handler.FullReset()
	default:
		s.logger.Debug("unknown ESC command, ignoring", "command", c)
	}
}
