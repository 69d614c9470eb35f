package csi

import (
	"fmt"

	"github.com/hnimtadd/bbsterm/terminal/utils"
)

// MaxParams is the number of parameters kept for a single sequence. Extra
// parameters are dropped.
const MaxParams = 24

type Command struct {
	// Marker is the private marker byte ('?', '<', '=' or '>') that followed
	// the introducer, or 0.
	Marker        uint8
	Intermediates []uint8
	Params        []uint16
	// Omitted records the parameter slots that were left empty or whose
	// value overflowed. Such a slot takes the command's default.
	Omitted *utils.StaticBitSet
	Final   uint8
}

// Key identifies a command for dispatch.
type Key struct {
	Marker uint8
	Final  uint8
}

func (c Command) Key() Key {
	return Key{Marker: c.Marker, Final: c.Final}
}

// Param returns the i-th parameter, or def when the slot is missing or
// omitted.
func (c Command) Param(i int, def uint16) uint16 {
	if i >= len(c.Params) {
		return def
	}
	if c.Omitted != nil && i < c.Omitted.Size() && c.Omitted.IsSet(i) {
		return def
	}
	return c.Params[i]
}

// Count is like Param but also replaces an explicit zero by def. Most
// cursor and editing commands treat 0 as 1.
func (c Command) Count(i int, def uint16) uint16 {
	v := c.Param(i, def)
	if v == 0 {
		return def
	}
	return v
}

func (c Command) String() string {
	marker := ""
	if c.Marker != 0 {
		marker = string(rune(c.Marker))
	}
	return fmt.Sprintf("CSI %s%v %q %q", marker, c.Params, c.Intermediates, rune(c.Final))
}

// Erase in Display mode
type EDMode uint8

const (
	EDModeBelow      EDMode = 0
	EDModeAbove      EDMode = 1
	EDModeComplete   EDMode = 2
	EDModeScrollback EDMode = 3
)

// Erase in Line mode
type ELMode uint8

const (
	ELModeRight ELMode = 0
	ELModeLeft  ELMode = 1
	ELModeAll   ELMode = 2
)

// Tabulation Clear mode
type TBCMode uint8

const (
	TBCModeCurrent TBCMode = 0
	TBCModeAll     TBCMode = 3
)

// DSRRequest is the parameter of a device status report (CSI n).
type DSRRequest uint16

const (
	DSRStatus         DSRRequest = 5
	DSRCursorPosition DSRRequest = 6
	// DSRScreenSize is a BBS extension answered with the buffer size in the
	// cursor position report format.
	DSRScreenSize DSRRequest = 255
)
