package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Motion model
	FrameRate = 60 // approximate
	TTL       = 8000
	MaxX      = 5
	MaxY      = 2
	MaxRadius = 10

	// FrameInterval is the timer fallback's target spacing between frames.
	FrameInterval = 16 * time.Millisecond

	DefaultID     = "wisps"
	DefaultCount  = 100
	DefaultStyle  = "random"
	DefaultTitle  = "Wisps - Space: pause, R: reseed, O: open audio, Esc/Q: quit"
	DefaultVolume = 0.0
)

// Config is the YAML configuration of a wisp forest.
type Config struct {
	ID      string       `yaml:"id"`
	Count   int          `yaml:"count"`
	Style   string       `yaml:"style"`
	Window  WindowConfig `yaml:"window"`
	Audio   AudioConfig  `yaml:"audio"`
	Verbose bool         `yaml:"verbose"`
}

// WindowConfig sizes and names the window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AudioConfig describes the optional looping soundtrack.
// Volume is in beep's log2 units: 0 plays unchanged, -1 halves.
type AudioConfig struct {
	Path   string  `yaml:"path"`
	Volume float64 `yaml:"volume"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ID:    DefaultID,
		Count: DefaultCount,
		Style: DefaultStyle,
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  DefaultTitle,
		},
		Audio: AudioConfig{Volume: DefaultVolume},
	}
}

// Load reads a YAML file on top of Default, so omitted keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields the window and loop depend on.
// The style selector is checked by the forest constructor.
func (c Config) Validate() error {
	var errs []error
	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("count must not be negative, got %d", c.Count))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Style == "" {
		errs = append(errs, errors.New("style must be set"))
	}
	return errors.Join(errs...)
}
