package main

import (
	"fmt"

	"github.com/hnimtadd/bbsterm/render"
)

type RenderCmd struct {
	File   string `arg:"" help:"File to replay." type:"existingfile"`
	Format string `help:"Output format." enum:"text,ansi,json" default:"text" short:"f"`
	Clip   int    `help:"Truncate ANSI lines to this many columns."`
}

func (c *RenderCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	s := g.session(cfg, nil)
	if err := g.replay(s, c.File); err != nil {
		return err
	}
	snap := s.Snapshot()

	switch c.Format {
	case "ansi":
		lines := render.ANSILines(snap)
		if c.Clip > 0 {
			lines = render.Clip(lines, c.Clip)
		}
		for _, l := range lines {
			fmt.Fprintf(g.stdout, "%s\r\n", l)
		}
	case "json":
		data, err := render.JSON(snap)
		if err != nil {
			return err
		}
		fmt.Fprintln(g.stdout, string(data))
	default:
		fmt.Fprintln(g.stdout, render.Text(snap))
	}
	return nil
}
