// Package config loads the session settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hnimtadd/bbsterm/logger"
	"github.com/hnimtadd/bbsterm/terminal/stream"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 25

	// MaxSize bounds both dimensions of the buffer.
	MaxSize = 4096
)

var (
	ErrInvalidSize    = errors.New("invalid buffer size")
	ErrUnknownDialect = stream.ErrUnknownDialect
	ErrUnknownCharset = stream.ErrUnknownCharset
	ErrUnknownLevel   = errors.New("unknown log level")
)

// Config holds the settings of one session.
type Config struct {
	// Dialect is what ESC[M means: delete_line or music.
	Dialect stream.Dialect `yaml:"ambiguous_m_meaning"`
	// OriginMode and Autowrap are the mode defaults restored by a reset
	// and by every scroll region change.
	OriginMode bool `yaml:"relative_origin_default"`
	Autowrap   bool `yaml:"autowrap_default"`
	Width      int  `yaml:"buffer_width"`
	Height     int  `yaml:"buffer_height"`

	Charset  stream.Charset `yaml:"charset"`
	LogLevel string         `yaml:"log_level"`
}

// Default returns an 80x25 code page 437 buffer with ESC[M read as delete
// line, origin mode off and autowrap on.
func Default() Config {
	return Config{
		Dialect:    stream.DialectDeleteLine,
		OriginMode: false,
		Autowrap:   true,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Charset:    stream.CharsetCP437,
		LogLevel:   "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file
// keep their default value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Width < 1 || c.Width > MaxSize || c.Height < 1 || c.Height > MaxSize {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if _, err := c.Dialect.MarshalText(); err != nil {
		return err
	}
	if _, err := c.Charset.MarshalText(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() (logger.Level, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return level, fmt.Errorf("%w: %w", ErrUnknownLevel, err)
	}
	return level, nil
}
