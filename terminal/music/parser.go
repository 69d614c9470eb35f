package music

import (
	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/terminal/utils"
)

// semitones maps note letters A..G to their offset from C.
var semitones = [7]int{9, 11, 0, 2, 4, 5, 7}

// maxNumber caps accumulated token numbers. Anything above is out of range
// for every command.
const maxNumber = 9999

// token is the music command being collected.
type token struct {
	kind       byte // upper case command letter, 0 when idle
	accidental int
	digits     int
	num        int
	dots       int
}

func (t token) hasNumber() bool { return t.digits > 0 }

// Parser is the streaming tokenizer of an ANSI music sequence. It receives
// the bytes between the music start command and the terminator one at a
// time and produces notes as soon as they are complete.
//
// A token ends at the first byte that cannot extend it, so a note is
// emitted when the next command starts or when the sequence is flushed.
type Parser struct {
	octave       int
	length       int
	lengthDots   int
	tempo        int
	articulation Articulation
	background   bool

	// expectStyle is set until the first byte of the sequence, which may
	// be a play style letter without the M prefix.
	expectStyle bool
	tok         token

	logger logger.Logger
}

func NewParser(l logger.Logger) *Parser {
	p := &Parser{logger: logger.OrDiscard(l)}
	p.Reset()
	return p
}

// Reset prepares the parser for a new sequence.
func (p *Parser) Reset() {
	p.octave = DefaultOctave
	p.length = DefaultLength
	p.lengthDots = 0
	p.tempo = DefaultTempo
	p.articulation = Normal
	p.background = false
	p.expectStyle = true
	p.tok = token{}
}

func (p *Parser) Octave() int                { return p.octave }
func (p *Parser) Tempo() int                 { return p.tempo }
func (p *Parser) Articulation() Articulation { return p.articulation }
func (p *Parser) Background() bool           { return p.background }

// Next consumes one byte of the sequence. It returns a note when c
// completed one.
func (p *Parser) Next(c byte) (Note, bool) {
	u := upper(c)

	if p.expectStyle {
		p.expectStyle = false
		if p.applyStyle(u) {
			return Note{}, false
		}
	}

	if p.tok.kind == 'M' {
		p.tok = token{}
		if p.applyStyle(u) {
			return Note{}, false
		}
		p.logger.Warn("unknown music style, skipping", "codepoint", c)
		return Note{}, false
	}

	switch {
	case c >= '0' && c <= '9':
		if p.acceptsNumber() {
			p.tok.num = min(p.tok.num*10+int(c-'0'), maxNumber)
			p.tok.digits++
		} else {
			p.logger.Debug("stray digit in music sequence", "codepoint", c)
		}
		return Note{}, false
	case c == '#' || c == '+' || c == '-':
		if p.isNote() && !p.tok.hasNumber() && p.tok.dots == 0 && p.tok.accidental == 0 {
			if c == '-' {
				p.tok.accidental = -1
			} else {
				p.tok.accidental = 1
			}
		} else {
			p.logger.Debug("stray accidental in music sequence", "codepoint", c)
		}
		return Note{}, false
	case c == '.':
		switch p.tok.kind {
		case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'N', 'L', 'P':
			p.tok.dots++
		default:
			p.logger.Debug("stray dot in music sequence", "codepoint", c)
		}
		return Note{}, false
	}

	note, ok := p.finish()

	switch u {
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'N', 'L', 'O', 'P', 'T', 'M':
		p.tok = token{kind: u}
	case '<':
		p.octave = max(p.octave-1, 0)
	case '>':
		p.octave = min(p.octave+1, Octaves-1)
	case ' ', '\t', '\r', '\n':
	default:
		p.logger.Warn("unknown music command, skipping", "codepoint", c)
	}
	return note, ok
}

// Flush completes the pending token, if any. It is called when the
// sequence ends.
func (p *Parser) Flush() (Note, bool) {
	if p.tok.kind == 'M' {
		p.logger.Warn("music style letter missing at end of sequence")
		p.tok = token{}
		return Note{}, false
	}
	return p.finish()
}

func (p *Parser) isNote() bool {
	return p.tok.kind >= 'A' && p.tok.kind <= 'G'
}

func (p *Parser) acceptsNumber() bool {
	return p.tok.kind != 0 && p.tok.kind != 'M' && p.tok.dots == 0
}

func (p *Parser) applyStyle(u byte) bool {
	switch u {
	case 'F':
		p.background = false
	case 'B':
		p.background = true
	case 'N':
		p.articulation = Normal
	case 'L':
		p.articulation = Legato
	case 'S':
		p.articulation = Staccato
	default:
		return false
	}
	return true
}

// lengthOf resolves the length of a note or rest token. ok is false when
// the explicit length is out of range.
func (p *Parser) lengthOf(t token) (n, dots int, ok bool) {
	if !t.hasNumber() {
		return p.length, p.lengthDots + t.dots, true
	}
	if t.num < 1 || t.num > 64 {
		return 0, 0, false
	}
	return t.num, t.dots, true
}

func (p *Parser) finish() (Note, bool) {
	t := p.tok
	p.tok = token{}

	switch t.kind {
	case 0:
		return Note{}, false

	case 'A', 'B', 'C', 'D', 'E', 'F', 'G':
		n, dots, ok := p.lengthOf(t)
		if !ok {
			p.logger.Warn("note length out of range, skipping", "note", string(t.kind), "length", t.num)
			return Note{}, false
		}
		key := p.octave*12 + semitones[t.kind-'A'] + t.accidental
		return p.pitch(utils.Clamp(key, 0, Keys-1), n, dots), true

	case 'N':
		if !t.hasNumber() || t.num > Keys {
			p.logger.Warn("note index out of range, skipping", "index", t.num)
			return Note{}, false
		}
		if t.num == 0 {
			return p.rest(p.length, p.lengthDots+t.dots), true
		}
		return p.pitch(t.num-1, p.length, p.lengthDots+t.dots), true

	case 'P':
		n, dots, ok := p.lengthOf(t)
		if !ok {
			p.logger.Warn("pause length out of range, skipping", "length", t.num)
			return Note{}, false
		}
		return p.rest(n, dots), true

	case 'L':
		if !t.hasNumber() || t.num < 1 || t.num > 64 {
			p.logger.Warn("default length out of range, skipping", "length", t.num)
			return Note{}, false
		}
		p.length = t.num
		p.lengthDots = t.dots

	case 'O':
		if !t.hasNumber() || t.num >= Octaves {
			p.logger.Warn("octave out of range, skipping", "octave", t.num)
			return Note{}, false
		}
		p.octave = t.num

	case 'T':
		if !t.hasNumber() {
			p.logger.Warn("tempo without value, skipping")
			return Note{}, false
		}
		p.tempo = utils.Clamp(t.num, MinTempo, MaxTempo)
	}
	return Note{}, false
}

func (p *Parser) pitch(key, n, dots int) Note {
	ticks := Length(n, dots)
	return Note{
		Octave:     key / 12,
		Semitone:   key % 12,
		Ticks:      ticks,
		Sounded:    sounded(ticks, p.articulation),
		Tempo:      p.tempo,
		Background: p.background,
	}
}

func (p *Parser) rest(n, dots int) Note {
	return Note{
		Rest:       true,
		Ticks:      Length(n, dots),
		Tempo:      p.tempo,
		Background: p.background,
	}
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
