// Package config provides configuration loading for retro.
package config

import (
	"errors"
	"fmt"

	"github.com/fyrsmithlabs/retro/internal/extract"
	"github.com/fyrsmithlabs/retro/internal/habits"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Output formats understood by the renderer.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatPretty   = "pretty"
)

// Config is the complete retro configuration.
type Config struct {
	Log    LogConfig      `koanf:"log"`
	Store  StoreConfig    `koanf:"store"`
	Output OutputConfig   `koanf:"output"`
	Watch  WatchConfig    `koanf:"watch"`
	Engine extract.Config `koanf:"engine"`
	Habits habits.Rules   `koanf:"habits"`
}

// LogConfig carries the textual logging settings; the logging package
// turns them into a logger.
type LogConfig struct {
	Level    string `koanf:"level"`
	Format   string `koanf:"format"`
	Output   string `koanf:"output"`
	Sampling bool   `koanf:"sampling"`
	Caller   bool   `koanf:"caller"`
}

// StoreConfig locates the SQLite database of saved weeks.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format string `koanf:"format"`
	// MaxLength caps each rendered section in runes. 0 disables the cap.
	MaxLength int `koanf:"max_length"`
}

// WatchConfig controls `retro weekly --watch`.
type WatchConfig struct {
	Debounce Duration `koanf:"debounce"`
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: log.format must be json or console, got %q", ErrInvalidConfig, c.Log.Format)
	}
	switch c.Output.Format {
	case FormatText, FormatMarkdown, FormatJSON, FormatPretty:
	default:
		return fmt.Errorf("%w: output.format %q", ErrInvalidConfig, c.Output.Format)
	}
	if c.Output.MaxLength < 0 {
		return fmt.Errorf("%w: output.max_length must be >= 0, got %d", ErrInvalidConfig, c.Output.MaxLength)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("%w: store.path required", ErrInvalidConfig)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("%w: engine: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Habits.Compile(); err != nil {
		return fmt.Errorf("%w: habits: %v", ErrInvalidConfig, err)
	}
	return nil
}
