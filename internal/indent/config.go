package indent

import (
	"strings"

	"github.com/dshills/linecore/internal/engine/buffer"
)

// Default indentation settings.
const (
	DefaultWidth   = 4
	DefaultUseTabs = false
)

// Config describes one level of indentation.
type Config struct {
	// Width is the number of columns per indent level and per tab stop.
	Width int
	// UseTabs selects a tab character as the indent unit instead of
	// Width spaces.
	UseTabs bool
}

// DefaultConfig returns the default indentation settings.
func DefaultConfig() Config {
	return Config{Width: DefaultWidth, UseTabs: DefaultUseTabs}
}

// Validate checks that Width is positive.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return &buffer.ConfigError{
			Setting: "indent.width",
			Value:   c.Width,
			Reason:  "must be a positive integer",
		}
	}
	return nil
}

// Unit returns the string for one level of indentation.
func (c Config) Unit() string {
	if c.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", c.Width)
}

// UnitLen returns the length of Unit in characters.
func (c Config) UnitLen() int {
	if c.UseTabs {
		return 1
	}
	return c.Width
}
