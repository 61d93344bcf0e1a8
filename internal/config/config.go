// Package config loads the optional tally.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the file loaded when no --config flag is given.
const DefaultPath = "tally.yaml"

const (
	maxScale = 8

	// maxSide bounds each framebuffer dimension; glyph coordinates are int16.
	maxSide = 4096
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config represents tally.yaml. Keys left out keep their Default values.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Stopwatch StopwatchConfig `yaml:"stopwatch"`
	Log       LogConfig       `yaml:"log"`
}

// WindowConfig sizes the framebuffer and the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title,omitempty"`
	Scale  int    `yaml:"scale,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// StopwatchConfig contains the stopwatch tick period.
type StopwatchConfig struct {
	Interval time.Duration `yaml:"interval,omitempty"`
}

// LogConfig contains logging switches.
type LogConfig struct {
	Verbose bool `yaml:"verbose,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window:    WindowConfig{Title: "tally", Scale: 2, Width: 320, Height: 320},
		Stopwatch: StopwatchConfig{Interval: time.Second},
	}
}

// LoadOptional reads path over the defaults. A missing file is not an error.
func LoadOptional(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Window.Title = strings.TrimSpace(cfg.Window.Title)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0 || c.Window.Width > maxSide || c.Window.Height > maxSide:
		return fmt.Errorf("%w: window size %dx%d (want 1..%d per side)", ErrInvalid, c.Window.Width, c.Window.Height, maxSide)
	case c.Window.Scale <= 0 || c.Window.Scale > maxScale:
		return fmt.Errorf("%w: window scale %d (want 1..%d)", ErrInvalid, c.Window.Scale, maxScale)
	case c.Stopwatch.Interval <= 0:
		return fmt.Errorf("%w: stopwatch interval %s", ErrInvalid, c.Stopwatch.Interval)
	}
	return nil
}
