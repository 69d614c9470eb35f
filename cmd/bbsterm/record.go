package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hnimtadd/bbsterm"
	"github.com/hnimtadd/bbsterm/config"
	"github.com/hnimtadd/bbsterm/render"
	"github.com/hnimtadd/bbsterm/terminal/record"
)

var errNoOutput = errors.New("record needs -o or --decode")

type RecordCmd struct {
	File   string `arg:"" help:"File to replay, or the record to decode." type:"existingfile"`
	Output string `help:"Write the layer record here." short:"o" type:"path"`
	Title  string `help:"Layer title."`
	Decode bool   `help:"Decode a layer record and print its text."`
}

func (c *RecordCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Decode {
		return c.decode(g, cfg)
	}
	if c.Output == "" {
		return errNoOutput
	}

	s := g.session(cfg, nil)
	if err := g.replay(s, c.File); err != nil {
		return err
	}
	layer := record.FromSnapshot(s.Snapshot(), c.Title)

	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	if err := layer.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *RecordCmd) decode(g *Globals, cfg config.Config) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	layer, err := record.DecodeLayer(f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}
	if layer.Width == 0 || layer.Height == 0 {
		return nil
	}
	if layer.Width > config.MaxSize || layer.Height > config.MaxSize {
		return fmt.Errorf("%w: %dx%d layer", config.ErrInvalidSize, layer.Width, layer.Height)
	}
	s := bbsterm.NewSession(bbsterm.Options{
		Cols:   int(layer.Width),
		Rows:   int(layer.Height),
		Logger: g.logger(cfg),
	})
	s.Load(0, 0, int(layer.Width), layer.Cells)
	if layer.Title != "" {
		fmt.Fprintf(g.stdout, "# %s\n", layer.Title)
	}
	fmt.Fprintln(g.stdout, render.Text(s.Snapshot()))
	return nil
}
