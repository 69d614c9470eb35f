// Package audio turns music note events into sound with beep.
package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/hnimtadd/bbsterm/terminal/music"
)

const (
	// DefaultSampleRate is used when a zero rate is given.
	DefaultSampleRate = beep.SampleRate(44100)

	// volume is the gain of the square wave, in powers of two.
	volume = -2
)

// Recorder collects note events instead of playing them.
type Recorder = music.Recorder

// Streamer renders the notes as one mono square-wave stream. The sounded
// part of a note is a square tone at its pitch, rests and the articulation
// gap are silence.
func Streamer(notes []music.Note, rate beep.SampleRate) (beep.Streamer, error) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	parts := make([]beep.Streamer, 0, 2*len(notes))
	for i, n := range notes {
		sounded, gap := split(n)
		if n.Rest {
			parts = append(parts, beep.Silence(rate.N(sounded+gap)))
			continue
		}
		tone, err := generators.SquareTone(rate, n.Frequency())
		if err != nil {
			return nil, fmt.Errorf("note %d (%s): %w", i, n, err)
		}
		parts = append(parts, &effects.Volume{
			Streamer: beep.Take(rate.N(sounded), tone),
			Base:     2,
			Volume:   volume,
		})
		if gap > 0 {
			parts = append(parts, beep.Silence(rate.N(gap)))
		}
	}
	return beep.Seq(parts...), nil
}

// Samples is the number of samples Streamer produces for the notes.
func Samples(notes []music.Note, rate beep.SampleRate) int {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	total := 0
	for _, n := range notes {
		sounded, gap := split(n)
		if n.Rest {
			total += rate.N(sounded + gap)
			continue
		}
		total += rate.N(sounded)
		if gap > 0 {
			total += rate.N(gap)
		}
	}
	return total
}

func split(n music.Note) (sounded, gap time.Duration) {
	sounded = n.SoundedDuration()
	return sounded, n.Duration() - sounded
}

// WriteWAV encodes the notes as a 16 bit mono WAV file.
func WriteWAV(w io.WriteSeeker, notes []music.Note, rate beep.SampleRate) error {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	s, err := Streamer(notes, rate)
	if err != nil {
		return err
	}
	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(w, s, format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}
