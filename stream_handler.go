package bbsterm

import (
	"context"
	"fmt"
	"io"

	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/terminal"
	"github.com/hnimtadd/bbsterm/terminal/core"
	"github.com/hnimtadd/bbsterm/terminal/handler"
	"github.com/hnimtadd/bbsterm/terminal/music"
	"github.com/hnimtadd/bbsterm/terminal/sequences/csi"
	"github.com/hnimtadd/bbsterm/terminal/sgr"
	"github.com/hnimtadd/bbsterm/terminal/stream"
)

// DeviceAttributes is the reply to CSI c.
const DeviceAttributes = "\x1b[=66;66;83;84;1;0;0c"

// This is used as the handler for the terminal.Stream type. This is stateful
// and is expected to live for the entire lifetime of the terminal. It is not
// valid to stop a stream handler, create a new one, and use that unless all
// of the member fields are copied.
type StreamHandler struct {
	terminal *terminal.Terminal
	dialect  stream.Dialect

	// Replies to device queries go here, inline with the stream.
	response io.Writer
	// The first reply write error, handed to the caller after the chunk.
	err error

	player music.Player
	ctx    context.Context

	bell        func()
	functionKey func(key uint8)

	logger logger.Logger
}

func (s *StreamHandler) takeErr() error {
	err := s.err
	s.err = nil
	return err
}

func (s *StreamHandler) reply(format string, args ...any) {
	if s.response == nil {
		s.logger.Debug("no response sink, dropping reply", "reply", fmt.Sprintf(format, args...))
		return
	}
	if _, err := fmt.Fprintf(s.response, format, args...); err != nil && s.err == nil {
		s.err = fmt.Errorf("write reply: %w", err)
	}
}

// Backspace implements streamHandler.
func (s *StreamHandler) Backspace() {
	s.terminal.Backspace()
}

// Delete implements streamHandler.
func (s *StreamHandler) Delete() {
	s.terminal.Delete()
}

// CarriageReturn implements streamHandler.
func (s *StreamHandler) CarriageReturn() {
	s.terminal.CarriageReturn()
}

// DeleteChars implements streamHandler.
func (s *StreamHandler) DeleteChars(repeated uint16) {
	s.terminal.DeleteChars(repeated)
}

// DeleteLines implements streamHandler.
func (s *StreamHandler) DeleteLines(repeated uint16) {
	s.terminal.DeleteLines(repeated)
}

// EraseChars implements streamHandler.
func (s *StreamHandler) EraseChars(repeated uint16) {
	s.terminal.EraseChars(repeated)
}

// EraseInDisplay implements streamHandler.
func (s *StreamHandler) EraseInDisplay(erase csi.EDMode) {
	s.terminal.EraseInDisplay(erase)
}

// EraseInLine implements streamHandler.
func (s *StreamHandler) EraseInLine(mode csi.ELMode) {
	s.terminal.EraseInLine(mode)
}

// FullReset implements streamHandler.
func (s *StreamHandler) FullReset() {
	s.terminal.FullReset()
}

// FormFeed implements streamHandler.
func (s *StreamHandler) FormFeed() {
	s.terminal.FormFeed()
}

// Index implements streamHandler.
func (s *StreamHandler) Index() {
	s.terminal.Index()
}

// InsertBlanks implements streamHandler.
func (s *StreamHandler) InsertBlanks(repeated uint16) {
	s.terminal.InsertBlanks(repeated)
}

// InsertLines implements streamHandler.
func (s *StreamHandler) InsertLines(repeated uint16) {
	s.terminal.InsertLines(repeated)
}

// LineFeed implements streamHandler.
func (s *StreamHandler) LineFeed() {
	s.terminal.LineFeed()
}

// NextLine implements streamHandler.
func (s *StreamHandler) NextLine() {
	s.terminal.NextLine()
}

// Print implements streamHandler.
func (s *StreamHandler) Print(c uint32) {
	s.terminal.Print(c)
}

// PrintRepeat implements streamHandler.
func (s *StreamHandler) PrintRepeat(repeated uint16) {
	s.terminal.PrintRepeat(repeated)
}

// ReverseIndex implements streamHandler.
func (s *StreamHandler) ReverseIndex() {
	s.terminal.ReverseIndex()
}

// SaveCursor implements streamHandler.
func (s *StreamHandler) SaveCursor() {
	s.terminal.SaveCursor()
}

// RestoreCursor implements streamHandler.
func (s *StreamHandler) RestoreCursor() {
	s.terminal.RestoreCursor()
}

// ScrollUp implements streamHandler.
func (s *StreamHandler) ScrollUp(repeated uint16) {
	s.terminal.ScrollUp(repeated)
}

// ScrollDown implements streamHandler.
func (s *StreamHandler) ScrollDown(repeated uint16) {
	s.terminal.ScrollDown(repeated)
}

// SetCursorCol implements streamHandler.
func (s *StreamHandler) SetCursorCol(col uint16) {
	s.terminal.SetCursorCol(col)
}

// SetCursorDown implements streamHandler.
func (s *StreamHandler) SetCursorDown(offset uint16, carriage bool) {
	s.terminal.SetCursorDown(offset, carriage)
}

// SetCursorLeft implements streamHandler.
func (s *StreamHandler) SetCursorLeft(offset uint16) {
	s.terminal.SetCursorLeft(offset)
}

// SetCursorPosition implements streamHandler.
func (s *StreamHandler) SetCursorPosition(row uint16, col uint16) {
	s.terminal.SetCursorPosition(row, col)
}

// SetCursorRight implements streamHandler.
func (s *StreamHandler) SetCursorRight(offset uint16) {
	s.terminal.SetCursorRight(offset)
}

// SetCursorRow implements streamHandler.
func (s *StreamHandler) SetCursorRow(row uint16) {
	s.terminal.SetCursorRow(row)
}

// SetCursorTabLeft implements streamHandler.
func (s *StreamHandler) SetCursorTabLeft(repeated uint16) {
	s.terminal.SetCursorTabLeft(repeated)
}

// SetCursorTabRight implements streamHandler.
func (s *StreamHandler) SetCursorTabRight(repeated uint16) {
	s.terminal.SetCursorTabRight(repeated)
}

// SetCursorUp implements streamHandler.
func (s *StreamHandler) SetCursorUp(offset uint16, carriage bool) {
	s.terminal.SetCursorUp(offset, carriage)
}

// SetGraphicsRendition implements streamHandler.
func (s *StreamHandler) SetGraphicsRendition(attr sgr.Attribute) {
	switch attr.Type {
	case sgr.AttributeTypeUnknown:
		s.logger.Warn("Unknown SGR attribute", "attribute", attr)
	default:
		s.terminal.SetGraphicsRendition(attr)
	}
}

// TabSet implements streamHandler.
func (s *StreamHandler) TabSet() {
	s.terminal.TabSet()
}

// TabClear implements streamHandler.
func (s *StreamHandler) TabClear(mode csi.TBCMode) {
	s.terminal.TabClear(mode)
}

// SetMode implements streamHandler.
func (s *StreamHandler) SetMode(mode core.Mode, enabled bool) {
	s.terminal.SetMode(mode, enabled)
}

// SetTopAndBottomMargin implements streamHandler.
func (s *StreamHandler) SetTopAndBottomMargin(top, bottom uint16) {
	s.terminal.SetTopAndBottomMargin(top, bottom)
}

// DeviceStatusReport implements streamHandler.
func (s *StreamHandler) DeviceStatusReport(req csi.DSRRequest) {
	switch req {
	case csi.DSRStatus:
		s.reply("\x1b[0n")
	case csi.DSRCursorPosition:
		row, col := s.terminal.CursorPosition()
		s.reply("\x1b[%d;%dR", row, col)
	case csi.DSRScreenSize:
		cols, rows := s.terminal.Size()
		s.reply("\x1b[%d;%dR", rows, cols)
	default:
		s.logger.Warn("unknown device status request", "request", req)
	}
}

// DeviceAttributes implements streamHandler.
func (s *StreamHandler) DeviceAttributes() {
	s.reply(DeviceAttributes)
}

// DialectReport implements streamHandler. The first field is 1 when
// ESC[M starts music.
func (s *StreamHandler) DialectReport() {
	m := 0
	if s.dialect == stream.DialectMusic {
		m = 1
	}
	s.reply("\x1b[=%d;1;1n", m)
}

// PlayMusic implements streamHandler.
func (s *StreamHandler) PlayMusic(notes []music.Note) {
	if s.player == nil {
		s.logger.Debug("no player, dropping music", "notes", len(notes))
		return
	}
	if err := s.player.Play(s.ctx, notes); err != nil {
		s.logger.Warn("play music", "error", err)
	}
}

// Bell implements streamHandler.
func (s *StreamHandler) Bell() {
	if s.bell != nil {
		s.bell()
	}
}

// FunctionKey implements streamHandler.
func (s *StreamHandler) FunctionKey(key uint8) {
	if s.functionKey != nil {
		s.functionKey(key)
		return
	}
	s.logger.Debug("function key", "key", string(rune(key)))
}

// ---------------- IGNORE THIS ----------------
var _ streamHandler = (*StreamHandler)(nil)

// This handler marks handlers supported by the session terminal
type streamHandler interface {
	handler.EditorHandler
	handler.FormatEffectorHandler
	handler.PrintHandler
	handler.SGRHandler
	handler.VT100Handler
	handler.ReportHandler
	handler.MusicHandler
	handler.BellHandler
	handler.KeyHandler
}

// ---------------- IGNORE THIS ----------------
