// Package bbsterm interprets ANSI/VT100 byte streams as a BBS terminal
// does, against a fixed size character buffer.
package bbsterm

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/hnimtadd/bbsterm/config"
	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/terminal"
	"github.com/hnimtadd/bbsterm/terminal/core"
	"github.com/hnimtadd/bbsterm/terminal/music"
	"github.com/hnimtadd/bbsterm/terminal/screen"
	"github.com/hnimtadd/bbsterm/terminal/stream"
)

// Session is one byte stream interpreted against one buffer.
type Session struct {
	// The terminal emulator internal state. This is the abstract "terminal"
	// that manages input, grid updating, etc. and is renderer-agnostic. It
	// just stores internal state about a grid.
	terminal *terminal.Terminal

	// The stream parser. This parses the stream of escape codes and so on
	// from the host and calls callbacks in the stream handler.
	terminalStream *stream.Stream

	handler *StreamHandler

	logger logger.Logger
}

type Options struct {
	Rows, Cols int

	Dialect stream.Dialect
	Charset stream.Charset

	// Mode defaults restored by a reset. Autowrap is on unless NoAutowrap
	// is set.
	OriginMode bool
	NoAutowrap bool

	// Response receives the replies to device queries. Nil drops them.
	Response io.Writer
	// Player receives every finished music sequence. Nil drops them.
	Player music.Player
	// Context is passed to the player, context.Background when nil.
	Context context.Context

	// Bell and FunctionKey are called for BEL and ESC O reports.
	Bell        func()
	FunctionKey func(key uint8)

	Logger logger.Logger
}

// OptionsFromConfig builds session options from a validated config.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Rows:       cfg.Height,
		Cols:       cfg.Width,
		Dialect:    cfg.Dialect,
		Charset:    cfg.Charset,
		OriginMode: cfg.OriginMode,
		NoAutowrap: !cfg.Autowrap,
	}
}

// NewSession creates the buffer and the parser of a session.
func NewSession(opts Options) *Session {
	l := logger.OrDiscard(opts.Logger)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	term := terminal.NewTerminal(
		terminal.Options{
			Rows:         opts.Rows,
			Cols:         opts.Cols,
			Modes:        core.Defaults(opts.OriginMode, !opts.NoAutowrap),
			UnicodeWidth: opts.Charset == stream.CharsetUTF8,
			Logger:       l,
		},
	)

	// Create our stream handler.
	handler := &StreamHandler{
		terminal:    term,
		dialect:     opts.Dialect,
		response:    opts.Response,
		player:      opts.Player,
		ctx:         ctx,
		bell:        opts.Bell,
		functionKey: opts.FunctionKey,
		logger:      l,
	}
	return &Session{
		terminal: term,
		terminalStream: stream.NewStream(handler, stream.Options{
			Dialect: opts.Dialect,
			Charset: opts.Charset,
			Logger:  l,
		}),
		handler: handler,
		logger:  l,
	}
}

// ProcessOutput interprets buf. Bad input never fails; the error reports a
// failed reply write or an internal fault.
func (s *Session) ProcessOutput(buf []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in ProcessOutput", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic in ProcessOutput: %v", r)
		}
	}()
	s.terminalStream.NextSlice(buf)
	return s.handler.takeErr()
}

// Write implements io.Writer over ProcessOutput.
func (s *Session) Write(p []byte) (n int, err error) {
	return len(p), s.ProcessOutput(p)
}

// Flush ends the stream: a music sequence still open is played, any other
// partial sequence is dropped.
func (s *Session) Flush() (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in Flush", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic in Flush: %v", r)
		}
	}()
	s.terminalStream.Flush()
	return s.handler.takeErr()
}

// Snapshot copies the buffer.
func (s *Session) Snapshot() terminal.Snapshot {
	return s.terminal.Snapshot()
}

// Load writes a block of cells into the buffer, see terminal.Load.
func (s *Session) Load(x, y, width int, cells []screen.Cell) {
	s.terminal.Load(x, y, width, cells)
}

// DumpString returns the buffer text, trailing blanks trimmed.
func (s *Session) DumpString() string {
	return s.terminal.PlainString()
}

func (s *Session) Dialect() stream.Dialect {
	return s.terminalStream.Dialect()
}
