package music

import (
	"fmt"
	"math"
	"time"
)

const (
	// WholeNote is the number of ticks in a whole note. It is divisible by
	// every common note length so most durations are exact.
	WholeNote = 3840
	// QuarterNote is the tempo unit.
	QuarterNote = WholeNote / 4

	// MaxDots is the number of dots honoured on a single length.
	MaxDots = 8

	Octaves = 7
	// Keys is the number of playable keys, C of octave 0 through B of
	// octave 6.
	Keys = Octaves * 12

	DefaultOctave = 4
	DefaultLength = 4
	DefaultTempo  = 120
	MinTempo      = 32
	MaxTempo      = 255

	// baseFrequency is the frequency of C in octave 0, in Hz.
	baseFrequency = 65.4064
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Articulation is the share of a note that is sounded.
type Articulation int

const (
	Normal Articulation = iota
	Legato
	Staccato
)

// eighths returns the sounded portion of a note in eighths.
func (a Articulation) eighths() int {
	switch a {
	case Legato:
		return 8
	case Staccato:
		return 6
	default:
		return 7
	}
}

func (a Articulation) String() string {
	switch a {
	case Legato:
		return "legato"
	case Staccato:
		return "staccato"
	default:
		return "normal"
	}
}

// Note is one event of a music sequence, either a pitch or a rest.
type Note struct {
	Rest bool
	// Octave 0..6 and Semitone 0..11 (C = 0). Zero for rests.
	Octave   int
	Semitone int
	// Ticks is the total length of the event, Sounded the part of it
	// that makes sound. The remainder is silence.
	Ticks   int
	Sounded int
	Tempo   int
	// Background is set when the sequence asked to be played without
	// blocking the caller (MB).
	Background bool
}

// Key returns the absolute key index, 0 for C of octave 0.
func (n Note) Key() int {
	return n.Octave*12 + n.Semitone
}

// Frequency returns the pitch in Hz, or 0 for a rest.
func (n Note) Frequency() float64 {
	if n.Rest {
		return 0
	}
	return baseFrequency * math.Pow(2, float64(n.Key())/12)
}

// Ticks converts a tick count to wall clock time at the given tempo. One
// tick lasts a minute divided by tempo*QuarterNote.
func Ticks(ticks, tempo int) time.Duration {
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	return time.Duration(int64(ticks) * int64(time.Minute) / int64(tempo*QuarterNote))
}

// Duration is the wall clock length of the whole event.
func (n Note) Duration() time.Duration {
	return Ticks(n.Ticks, n.Tempo)
}

// SoundedDuration is the wall clock length of the sounded part.
func (n Note) SoundedDuration() time.Duration {
	return Ticks(n.Sounded, n.Tempo)
}

func (n Note) String() string {
	if n.Rest {
		return fmt.Sprintf("rest %d", n.Ticks)
	}
	return fmt.Sprintf("%s%d %d/%d", noteNames[n.Semitone], n.Octave, n.Sounded, n.Ticks)
}

// Length returns the ticks of a 1/n note with the given number of dots.
// Each dot multiplies the length by 1.5. The result is rounded half to
// even.
func Length(n, dots int) int {
	if n <= 0 {
		n = DefaultLength
	}
	dots = min(max(dots, 0), MaxDots)
	num, den := WholeNote, n
	for range dots {
		num *= 3
		den *= 2
	}
	return divRoundEven(num, den)
}

// sounded returns the sounded part of ticks under a, rounded half to even.
func sounded(ticks int, a Articulation) int {
	return divRoundEven(ticks*a.eighths(), 8)
}

func divRoundEven(num, den int) int {
	q, r := num/den, num%den
	switch {
	case 2*r > den:
		q++
	case 2*r == den && q%2 == 1:
		q++
	}
	return q
}
