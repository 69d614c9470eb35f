package parser

import (
	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/terminal/music"
	"github.com/hnimtadd/bbsterm/terminal/sequences/csi"
	"github.com/hnimtadd/bbsterm/terminal/sequences/esc"
	"github.com/hnimtadd/bbsterm/terminal/utils"
)

const (
	MaxParams        = csi.MaxParams
	MaxIntermediates = 4
)

// VT-series parser for escape and control sequences.
//
// This is implemented directly as the state machine described on
// vt100.net: https://vt100.net/emu/dec_ansi_parser
// with one extra state that runs the ANSI music grammar.
type Parser struct {
	State State

	marker uint8

	// intermediate tracking
	intermediates    [MaxIntermediates]uint8
	intermediatesIdx int

	// param tracking
	params        [MaxParams]uint16
	paramsIdx     int
	omitted       *utils.StaticBitSet
	paramAcc      uint16
	paramAccIdx   int
	paramOverflow bool

	music *music.Parser
	table *parserTable

	logger logger.Logger
}

func NewParser(l logger.Logger) *Parser {
	l = logger.OrDiscard(l)
	return &Parser{
		State:   StateGround,
		table:   newParserTable(),
		omitted: utils.NewStaticBitSet(MaxParams),
		music:   music.NewParser(l),
		logger:  l,
	}
}

// Next consumes the next character c and returns the actions to execute.
//
// # Up to 3 actions may need to be executed
//
// When going from one state to another state, the actions take place
// in this order
//
// 1. exit action from old state
//
// 2. transition action
//
// 3. entry action to new state
func (p *Parser) Next(c uint8) [3]*Action {
	effect := p.table[c][p.State]

	nextState := effect.state
	action := effect.action

	// after generating the actions, we set our next state
	defer func() {
		p.State = nextState
	}()

	actions := [3]*Action{}

	// Exit action from old state
	if p.State != nextState && p.State == StateMusic {
		actions[0] = p.flushNote()
	}

	// transtion action
	actions[1] = p.doAction(action, c)

	// entry action
	if p.State != nextState {
		switch nextState {
		case StateEscape, StateCSIEntry:
			p.Clear()
		}
	}

	return actions
}

// StartMusic switches the parser into the music state. The dispatcher calls
// it after a command that opens a music sequence.
func (p *Parser) StartMusic() {
	p.music.Reset()
	p.State = StateMusic
}

// Flush ends whatever sequence is in progress at the end of the stream.
// A running music sequence is completed; any other partial sequence is
// abandoned.
func (p *Parser) Flush() [3]*Action {
	actions := [3]*Action{}
	switch p.State {
	case StateGround:
		return actions
	case StateMusic:
		actions[0] = p.flushNote()
		actions[1] = &Action{Type: ActionMusicEnd}
	default:
		p.logger.Debug("abandoning partial sequence at end of stream", "state", p.State.String())
	}
	p.Clear()
	p.State = StateGround
	return actions
}

func (p *Parser) flushNote() *Action {
	if n, ok := p.music.Flush(); ok {
		return &Action{Type: ActionNote, NoteData: &n}
	}
	return nil
}

func (p *Parser) doAction(actionType ActionType, c uint8) (action *Action) {
	switch actionType {
	case ActionIgnore, ActionNone:
		return
	case ActionMusicEnd:
		return &Action{Type: ActionMusicEnd}
	case ActionPrint:
		return &Action{Type: ActionPrint, PrintData: c}
	case ActionExecute:
		return &Action{Type: ActionExecute, ExecuteData: c}
	case ActionCollect:
		p.Collect(c)
		return
	case ActionMarker:
		p.marker = c
		return
	case ActionParam:
		p.param(c)
		return
	case ActionESCDispatch:
		return &Action{
			Type: ActionESCDispatch,
			ESCDispatchData: &esc.Command{
				Intermediates: p.collected(),
				Final:         c,
			},
		}
	case ActionCSIDispatch:
		// Finalize the last parameter. A sequence with a separator but
		// nothing after it still has a trailing omitted slot.
		if p.paramAccIdx > 0 || p.paramsIdx > 0 {
			p.finalizeParam()
		}
		omitted := p.omitted.Clone()
		return &Action{
			Type: ActionCSIDispatch,
			CSIDispatchData: &csi.Command{
				Marker:        p.marker,
				Intermediates: p.collected(),
				Params:        append([]uint16(nil), p.params[:p.paramsIdx]...),
				Omitted:       omitted,
				Final:         c,
			},
		}
	case ActionFunctionKey:
		return &Action{
			Type:            ActionFunctionKey,
			FunctionKeyData: &esc.FunctionKey{Key: c},
		}
	case ActionMusicPut:
		if n, ok := p.music.Next(c); ok {
			return &Action{Type: ActionNote, NoteData: &n}
		}
		return
	default:
		p.logger.Warn("Unknown action", "type", actionType)
		return nil
	}
}

func (p *Parser) param(c uint8) {
	// Semicolon and colon separate parameters. If we encounter one we
	// store the current slot and move on to the next parameter.
	if c == ';' || c == ':' {
		p.finalizeParam()
		return
	}

	// A numeric value. Add it to our accumulator. An overflowed value
	// is kept as omitted so the command falls back to its default.
	next, overflow := utils.AccumulateDigit(p.paramAcc, c-'0')
	if overflow {
		p.paramOverflow = true
	}
	p.paramAcc = next
	p.paramAccIdx++
}

func (p *Parser) finalizeParam() {
	// ignore too many parameters
	if p.paramsIdx >= MaxParams {
		p.logger.Debug("too many parameters, ignoring", "count", p.paramsIdx+1)
	} else {
		p.params[p.paramsIdx] = p.paramAcc
		if p.paramAccIdx == 0 || p.paramOverflow {
			p.omitted.Set(p.paramsIdx)
		}
		p.paramsIdx++
	}
	p.paramAcc = 0
	p.paramAccIdx = 0
	p.paramOverflow = false
}

func (p *Parser) collected() []uint8 {
	if p.intermediatesIdx == 0 {
		return nil
	}
	return append([]uint8(nil), p.intermediates[:p.intermediatesIdx]...)
}

func (p *Parser) Collect(c uint8) {
	if p.intermediatesIdx >= MaxIntermediates {
		p.logger.Warn("Too many intermediates, ignoring", "codepoint", c)
		return
	}
	p.intermediates[p.intermediatesIdx] = c
	p.intermediatesIdx += 1
}

func (p *Parser) Clear() {
	p.marker = 0
	p.paramsIdx = 0
	p.paramAcc = 0
	p.paramAccIdx = 0
	p.paramOverflow = false
	p.omitted.Clear()
	p.intermediatesIdx = 0
}
