package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
	"github.com/hnimtadd/bbsterm"
	"github.com/hnimtadd/bbsterm/render"
)

type ExecCmd struct {
	Command []string `arg:"" passthrough:"" help:"Program and arguments."`
	Format  string   `help:"Format of the final buffer." enum:"text,ansi" default:"ansi" short:"f"`
}

func (c *ExecCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(g.ctx, c.Command[0], c.Command[1:]...)
	cmd.Env = append(os.Environ(), "TERM=ansi")
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(cfg.Height),
		Cols: uint16(cfg.Width),
	})
	if err != nil {
		return fmt.Errorf("start %s: %w", c.Command[0], err)
	}
	defer ptmx.Close()

	// Device query replies go back to the program through the pty.
	s := g.session(cfg, func(o *bbsterm.Options) { o.Response = ptmx })
	go func() {
		_, _ = io.Copy(ptmx, os.Stdin)
	}()

	if _, err := io.Copy(s, ptmx); err != nil && !isPtyClosed(err) {
		return err
	}
	if err := s.Flush(); err != nil {
		return err
	}
	waitErr := cmd.Wait()

	snap := s.Snapshot()
	if c.Format == "text" {
		fmt.Fprintln(g.stdout, render.Text(snap))
	} else {
		fmt.Fprintln(g.stdout, render.ANSI(snap))
	}
	return waitErr
}

// isPtyClosed reports the error a pty read returns once the child has
// exited.
func isPtyClosed(err error) bool {
	return errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed)
}
