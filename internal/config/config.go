// Package config loads and saves the markview configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/log"
)

const (
	appName    = "markview"
	configFile = "config.toml"

	DefaultMaxWidth       = 120
	DefaultMinRenderWidth = 5
	DefaultTimeoutSeconds = 30
)

// Config holds the user settings.
type Config struct {
	MaxWidth       int    `toml:"max_width"`
	MinRenderWidth int    `toml:"min_render_width"`
	MarkdownStyle  string `toml:"markdown_style"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	HistoryPath    string `toml:"history_path"` // Empty disables history
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	Home           string `toml:"home"` // Opened when no target is given
}

// Default returns the default configuration for a config directory.
func Default(dir string) *Config {
	return &Config{
		MaxWidth:       DefaultMaxWidth,
		MinRenderWidth: DefaultMinRenderWidth,
		MarkdownStyle:  styles.DarkStyle,
		UserAgent:      appName + "/1.0",
		TimeoutSeconds: DefaultTimeoutSeconds,
		HistoryPath:    filepath.Join(dir, "history.db"),
		LogFile:        filepath.Join(dir, appName+".log"),
		LogLevel:       log.InfoLevel.String(),
	}
}

// Dir returns the default config directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// Path returns the config file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, configFile)
}

// Load reads the config from dir. Settings missing from the file keep their
// defaults, and a missing file yields the default config.
func Load(dir string) (*Config, error) {
	cfg := Default(dir)

	path := Path(dir)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to dir.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(Path(dir), data, 0644)
}

// Encode returns the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate clamps numeric settings into range and rejects unknown names.
func (c *Config) Validate() error {
	if c.MinRenderWidth < 1 {
		c.MinRenderWidth = DefaultMinRenderWidth
	}
	if c.MaxWidth <= 0 {
		c.MaxWidth = DefaultMaxWidth
	}
	c.MaxWidth = max(c.MaxWidth, c.MinRenderWidth)
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if _, ok := styles.DefaultStyles[c.MarkdownStyle]; !ok {
		return fmt.Errorf("unknown markdown_style %q", c.MarkdownStyle)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
