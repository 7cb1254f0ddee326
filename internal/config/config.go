// Application configuration loaded from a TOML file with defaults
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  LoggerConfig  `toml:"logger"`
	History HistoryConfig `toml:"history"`
	Preview PreviewConfig `toml:"preview"`
	Window  WindowConfig  `toml:"window"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// HistoryConfig holds undo/redo settings.
type HistoryConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// PreviewConfig holds live-preview settings.
type PreviewConfig struct {
	DebounceMs int `toml:"debounce_ms"`
}

// WindowConfig holds initial window geometry.
type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

const (
	DefaultLogLevel        = "info"
	DefaultHistoryDepth    = 50
	DefaultPreviewDebounce = 100
	DefaultWindowWidth     = 1280
	DefaultWindowHeight    = 860
)

// NewDefaultConfig creates a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level: DefaultLogLevel,
		},
		History: HistoryConfig{
			MaxDepth: DefaultHistoryDepth,
		},
		Preview: PreviewConfig{
			DebounceMs: DefaultPreviewDebounce,
		},
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
	}
}

// Load reads configuration from a TOML file merged over defaults. A
// missing file is not an error; a malformed one is.
func Load(filePath string) (*Config, error) {
	cfg := NewDefaultConfig()

	if filePath == "" {
		return cfg, nil
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	if _, err := toml.DecodeFile(filePath, cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}

	cfg.validate()
	return cfg, nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	switch c.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logger.Level = DefaultLogLevel
	}

	if c.History.MaxDepth <= 0 {
		c.History.MaxDepth = DefaultHistoryDepth
	}
	if c.Preview.DebounceMs < 0 {
		c.Preview.DebounceMs = DefaultPreviewDebounce
	}
	if c.Window.Width <= 0 {
		c.Window.Width = DefaultWindowWidth
	}
	if c.Window.Height <= 0 {
		c.Window.Height = DefaultWindowHeight
	}
}
