package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/sapling/stage"
)

type Config struct {
	Window  WindowConfig  `toml:"window" yaml:"window"`
	Input   InputConfig   `toml:"input" yaml:"input"`
	Assets  AssetsConfig  `toml:"assets" yaml:"assets"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

type InputConfig struct {
	DragDeadZone float64 `toml:"drag_dead_zone" yaml:"drag_dead_zone"` // pixels before a press becomes a drag
}

type AssetsConfig struct {
	Dir    string        `toml:"dir" yaml:"dir"` // relative to the config file
	Images []stage.Asset `toml:"images" yaml:"images"`
}

type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	Debug bool   `toml:"debug" yaml:"debug"` // stage debug overlay and tree checks
}

// Load reads a TOML or YAML file, chosen by extension, over the defaults.
// A relative Assets.Dir is resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("parse config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Assets.Dir != "" && !filepath.IsAbs(cfg.Assets.Dir) {
		cfg.Assets.Dir = filepath.Join(filepath.Dir(path), cfg.Assets.Dir)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config { return defaults() }

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "sapling",
			Width:  800,
			Height: 600,
		},
		Input: InputConfig{
			DragDeadZone: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Input.DragDeadZone < 0 {
		return fmt.Errorf("drag_dead_zone %v must not be negative", c.Input.DragDeadZone)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging level: %w", err)
	}
	for i, a := range c.Assets.Images {
		if a.Key == "" || a.Location == "" {
			return fmt.Errorf("assets.images[%d] needs key and location", i)
		}
	}
	return nil
}

// LogLevel returns the parsed logging level; Load has already validated it.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ImageAssets returns the configured images typed for stage.
func (c *Config) ImageAssets() []stage.Asset {
	out := make([]stage.Asset, len(c.Assets.Images))
	for i, a := range c.Assets.Images {
		if a.Type == "" {
			a.Type = stage.AssetImage
		}
		out[i] = a
	}
	return out
}

// Apply copies the window, input and logging settings onto an engine config.
func (c *Config) Apply(sc *stage.Config) {
	sc.Title = c.Window.Title
	sc.Width = c.Window.Width
	sc.Height = c.Window.Height
	sc.DragDeadZone = c.Input.DragDeadZone
	sc.Debug = c.Logging.Debug
}
