// Command bbsterm replays BBS ANSI streams into a character buffer.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/hnimtadd/bbsterm"
	"github.com/hnimtadd/bbsterm/config"
	"github.com/hnimtadd/bbsterm/logger"
)

// Globals are the flags shared by every command. Zero values keep the
// config file setting.
type Globals struct {
	Config   string `help:"YAML config file." short:"c" type:"path"`
	Music    string `help:"Meaning of ESC[M: delete_line or music."`
	Charset  string `help:"Input charset: cp437 or utf8."`
	Width    int    `help:"Buffer width in columns."`
	Height   int    `help:"Buffer height in rows."`
	LogLevel string `help:"Log level: debug, info, warn or error."`
	LogJSON  bool   `help:"Log as JSON."`

	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
}

type CLI struct {
	Globals

	Render RenderCmd `cmd:"" help:"Replay a file and print the buffer."`
	Play   PlayCmd   `cmd:"" help:"Collect the music of a file."`
	Record RecordCmd `cmd:"" help:"Encode the buffer as a layer record, or decode one."`
	View   ViewCmd   `cmd:"" help:"Show the buffer until a key is pressed."`
	Exec   ExecCmd   `cmd:"" help:"Run a program in a pty and interpret its output."`
}

// load reads the config file and applies the flag overrides.
func (g *Globals) load() (config.Config, error) {
	cfg := config.Default()
	if g.Config != "" {
		var err error
		if cfg, err = config.Load(g.Config); err != nil {
			return config.Config{}, err
		}
	}
	if g.Music != "" {
		if err := cfg.Dialect.UnmarshalText([]byte(g.Music)); err != nil {
			return config.Config{}, err
		}
	}
	if g.Charset != "" {
		if err := cfg.Charset.UnmarshalText([]byte(g.Charset)); err != nil {
			return config.Config{}, err
		}
	}
	if g.Width != 0 {
		cfg.Width = g.Width
	}
	if g.Height != 0 {
		cfg.Height = g.Height
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	return cfg, cfg.Validate()
}

func (g *Globals) logger(cfg config.Config) logger.Logger {
	level, _ := cfg.Level()
	typ := logger.TypeText
	if g.LogJSON {
		typ = logger.TypeJSON
	}
	return logger.New(logger.Options{Buffer: g.stderr, Level: level, Type: typ})
}

// session builds a session from the config. The caller fills in the
// reply sink and the player.
func (g *Globals) session(cfg config.Config, opts func(*bbsterm.Options)) *bbsterm.Session {
	o := bbsterm.OptionsFromConfig(cfg)
	o.Logger = g.logger(cfg)
	o.Context = g.ctx
	if opts != nil {
		opts(&o)
	}
	return bbsterm.NewSession(o)
}

// replay feeds a whole file and ends the stream.
func (g *Globals) replay(s *bbsterm.Session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := s.ProcessOutput(data); err != nil {
		return err
	}
	return s.Flush()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("bbsterm"),
		kong.Description("Interpret BBS ANSI art and music streams."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cli.ctx, cli.stdout, cli.stderr = ctx, stdout, stderr
	return kctx.Run(&cli.Globals)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "bbsterm: %v\n", err)
		os.Exit(1)
	}
}
