package main

import (
	"fmt"
	"os"

	"github.com/gopxl/beep"
	"github.com/hnimtadd/bbsterm"
	"github.com/hnimtadd/bbsterm/audio"
	"github.com/hnimtadd/bbsterm/terminal/music"
)

type PlayCmd struct {
	File    string `arg:"" help:"File to replay." type:"existingfile"`
	WAV     string `help:"Write the music to a WAV file." name:"wav" type:"path"`
	Speaker bool   `help:"Play the music on the default audio device."`
	Rate    int    `help:"Sample rate in Hz." default:"44100"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	rec := &audio.Recorder{}
	s := g.session(cfg, func(o *bbsterm.Options) { o.Player = rec })
	if err := g.replay(s, c.File); err != nil {
		return err
	}

	notes := rec.Notes()
	if c.WAV != "" {
		if err := writeWAV(c.WAV, notes, beep.SampleRate(c.Rate)); err != nil {
			return err
		}
	}
	if c.Speaker {
		sp := audio.NewSpeaker(beep.SampleRate(c.Rate), g.logger(cfg))
		defer sp.Close()
		for _, seq := range rec.Sequences {
			if err := sp.Play(g.ctx, seq); err != nil {
				return err
			}
		}
	}
	if c.WAV == "" && !c.Speaker {
		for i, seq := range rec.Sequences {
			fmt.Fprintf(g.stdout, "sequence %d\n", i+1)
			for _, n := range seq {
				fmt.Fprintf(g.stdout, "  %s\n", n)
			}
		}
	}
	return nil
}

func writeWAV(path string, notes []music.Note, rate beep.SampleRate) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return audio.WriteWAV(f, notes, rate)
}
