package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hnimtadd/bbsterm/render/tcellview"
	"github.com/hnimtadd/bbsterm/terminal/color"
)

type ViewCmd struct {
	File string `arg:"" help:"File to replay." type:"existingfile"`
}

func (c *ViewCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	s := g.session(cfg, nil)
	if err := g.replay(s, c.File); err != nil {
		return err
	}

	scr, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	defer scr.Fini()

	snap := s.Snapshot()
	draw := func() {
		scr.Clear()
		tcellview.Draw(scr, snap, color.VGA)
		scr.Show()
	}
	draw()
	for {
		switch scr.PollEvent().(type) {
		case *tcell.EventResize:
			scr.Sync()
			draw()
		case *tcell.EventKey, nil:
			return nil
		}
	}
}
