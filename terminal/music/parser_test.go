package music_test

import (
	"testing"
	"time"

	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/terminal/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) []music.Note {
	t.Helper()
	p := music.NewParser(logger.Discard)
	var notes []music.Note
	for i := range len(input) {
		if n, ok := p.Next(input[i]); ok {
			notes = append(notes, n)
		}
	}
	if n, ok := p.Flush(); ok {
		notes = append(notes, n)
	}
	return notes
}

func TestLength(t *testing.T) {
	tests := []struct {
		name string
		n    int
		dots int
		want int
	}{
		{name: "whole", n: 1, want: 3840},
		{name: "quarter", n: 4, want: 960},
		{name: "dotted quarter", n: 4, dots: 1, want: 1440},
		{name: "double dotted quarter", n: 4, dots: 2, want: 2160},
		{name: "seventh rounds", n: 7, want: 549},
		{name: "dots are capped", n: 1, dots: 20, want: music.Length(1, music.MaxDots)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, music.Length(tc.n, tc.dots))
		})
	}
}

func TestDottedDefaultLength(t *testing.T) {
	plain := parse(t, "L4C")
	dotted := parse(t, "L4.C")
	double := parse(t, "L4..C")
	require.Len(t, plain, 1)
	require.Len(t, dotted, 1)
	require.Len(t, double, 1)

	assert.Equal(t, plain[0].Ticks*3/2, dotted[0].Ticks)
	assert.Equal(t, plain[0].Ticks*9/4, double[0].Ticks)
}

func TestNoteIndex(t *testing.T) {
	// A leading N would be read as the play style letter.
	notes := parse(t, " N0 N10 N22 N34")
	require.Len(t, notes, 4)

	assert.True(t, notes[0].Rest)
	assert.Zero(t, notes[0].Frequency())

	for i := 1; i < 3; i++ {
		assert.Equal(t, notes[1].Semitone, notes[i+1].Semitone)
		assert.Equal(t, notes[i].Octave+1, notes[i+1].Octave)
	}
	assert.Equal(t, 0, notes[1].Octave)
	assert.Equal(t, 9, notes[1].Semitone)
}

func TestFrequency(t *testing.T) {
	notes := parse(t, "O2A O0C N84")
	require.Len(t, notes, 3)
	assert.InDelta(t, 440.0, notes[0].Frequency(), 0.001)
	assert.InDelta(t, 65.4064, notes[1].Frequency(), 0.001)
	assert.Equal(t, music.Keys-1, notes[2].Key())
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []music.Note
	}{
		{
			name:  "default octave and length",
			input: "C",
			want:  []music.Note{{Octave: 4, Semitone: 0, Ticks: 960, Sounded: 840, Tempo: 120}},
		},
		{
			name:  "accidentals and explicit length",
			input: "c#8d-2",
			want: []music.Note{
				{Octave: 4, Semitone: 1, Ticks: 480, Sounded: 420, Tempo: 120},
				{Octave: 4, Semitone: 1, Ticks: 1920, Sounded: 1680, Tempo: 120},
			},
		},
		{
			name:  "octave shift clamps",
			input: "O6>>C<C",
			want: []music.Note{
				{Octave: 6, Semitone: 0, Ticks: 960, Sounded: 840, Tempo: 120},
				{Octave: 5, Semitone: 0, Ticks: 960, Sounded: 840, Tempo: 120},
			},
		},
		{
			name:  "pause uses length semantics",
			input: "P2.",
			want:  []music.Note{{Rest: true, Ticks: 2880, Tempo: 120}},
		},
		{
			name:  "tempo clamps",
			input: "T999C T1C",
			want: []music.Note{
				{Octave: 4, Ticks: 960, Sounded: 840, Tempo: 255},
				{Octave: 4, Ticks: 960, Sounded: 840, Tempo: 32},
			},
		},
		{
			name:  "articulation",
			input: "MLC MSC",
			want: []music.Note{
				{Octave: 4, Ticks: 960, Sounded: 960, Tempo: 120},
				{Octave: 4, Ticks: 960, Sounded: 720, Tempo: 120},
			},
		},
		{
			name:  "style letter without prefix",
			input: "BC",
			want:  []music.Note{{Octave: 4, Ticks: 960, Sounded: 840, Tempo: 120, Background: true}},
		},
		{
			name:  "out of range octave is skipped",
			input: "O9C",
			want:  []music.Note{{Octave: 4, Ticks: 960, Sounded: 840, Tempo: 120}},
		},
		{
			name:  "unknown letters are skipped",
			input: "XZC",
			want:  []music.Note{{Octave: 4, Ticks: 960, Sounded: 840, Tempo: 120}},
		},
		{
			name:  "note length out of range is skipped",
			input: "C99D",
			want:  []music.Note{{Octave: 4, Semitone: 2, Ticks: 960, Sounded: 840, Tempo: 120}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parse(t, tc.input))
		})
	}
}

func TestReset(t *testing.T) {
	p := music.NewParser(nil)
	for _, c := range []byte("O1T60MS") {
		p.Next(c)
	}
	p.Flush()
	assert.Equal(t, 1, p.Octave())
	assert.Equal(t, 60, p.Tempo())
	assert.Equal(t, music.Staccato, p.Articulation())

	p.Reset()
	assert.Equal(t, music.DefaultOctave, p.Octave())
	assert.Equal(t, music.DefaultTempo, p.Tempo())
	assert.Equal(t, music.Normal, p.Articulation())
}

func TestDuration(t *testing.T) {
	quarter := music.Note{Ticks: music.QuarterNote, Tempo: 120}
	assert.Equal(t, 500*time.Millisecond, quarter.Duration())

	n := parse(t, "T60L1C")
	require.Len(t, n, 1)
	assert.Equal(t, 4*time.Second, n[0].Duration())
	assert.Equal(t, 3500*time.Millisecond, n[0].SoundedDuration())
}

func TestRecorder(t *testing.T) {
	r := &music.Recorder{}
	notes := parse(t, "CDE")
	require.NoError(t, r.Play(t.Context(), notes))
	require.NoError(t, r.Play(t.Context(), notes[:1]))
	assert.Len(t, r.Sequences, 2)
	assert.Len(t, r.Notes(), 4)
	assert.Equal(t, "C4 840/960", notes[0].String())
}
