package stream

import (
	"errors"
	"fmt"

	"github.com/hnimtadd/bbsterm/logger"
)

var (
	ErrUnknownDialect = errors.New("unknown dialect")
	ErrUnknownCharset = errors.New("unknown charset")
)

// Dialect selects what the ambiguous ESC[M means.
type Dialect int

const (
	// DialectDeleteLine reads ESC[M as DL, the ANSI meaning.
	DialectDeleteLine Dialect = iota
	// DialectMusic reads ESC[M as the start of an ANSI music sequence and
	// also enables ESC[|.
	DialectMusic
)

func (d Dialect) String() string {
	switch d {
	case DialectDeleteLine:
		return "delete_line"
	case DialectMusic:
		return "music"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

func (d Dialect) MarshalText() ([]byte, error) {
	switch d {
	case DialectDeleteLine, DialectMusic:
		return []byte(d.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownDialect, int(d))
	}
}

func (d *Dialect) UnmarshalText(text []byte) error {
	switch string(text) {
	case "delete_line", "":
		*d = DialectDeleteLine
	case "music":
		*d = DialectMusic
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDialect, text)
	}
	return nil
}

// Charset selects how bytes 0x80 and above are turned into characters.
type Charset int

const (
	// CharsetCP437 maps every high byte to its IBM PC glyph.
	CharsetCP437 Charset = iota
	// CharsetUTF8 decodes multi-byte UTF-8 sequences.
	CharsetUTF8
)

func (c Charset) String() string {
	switch c {
	case CharsetCP437:
		return "cp437"
	case CharsetUTF8:
		return "utf8"
	default:
		return fmt.Sprintf("Charset(%d)", int(c))
	}
}

func (c Charset) MarshalText() ([]byte, error) {
	switch c {
	case CharsetCP437, CharsetUTF8:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCharset, int(c))
	}
}

func (c *Charset) UnmarshalText(text []byte) error {
	switch string(text) {
	case "cp437", "":
		*c = CharsetCP437
	case "utf8", "utf-8":
		*c = CharsetUTF8
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCharset, text)
	}
	return nil
}

type Options struct {
	Dialect Dialect
	Charset Charset
	Logger  logger.Logger
}
