// Package config loads smarttask settings from a YAML or TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/MacroPower/smarttask/pkg/charts"
)

// Environment variables that override file settings.
const (
	EnvStore = "SMARTTASK_STORE"
	EnvTheme = "SMARTTASK_THEME"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrUnknownFormat = errors.New("unknown config format")
)

// Config holds every persistent setting.
type Config struct {
	// StorePath is the task store file.
	StorePath string    `toml:"store"     yaml:"store"`
	Theme     string    `toml:"theme"     yaml:"theme"`
	Chart     Chart     `toml:"chart"     yaml:"chart"`
	Dashboard Dashboard `toml:"dashboard" yaml:"dashboard"`
}

// Chart configures rendered chart files.
type Chart struct {
	Format     string  `toml:"format"      yaml:"format"`
	Width      float64 `toml:"width"       yaml:"width"`
	Height     float64 `toml:"height"      yaml:"height"`
	PixelRatio float64 `toml:"pixel_ratio" yaml:"pixelRatio"`
}

// Dashboard configures the terminal dashboard.
type Dashboard struct {
	FPS int `toml:"fps" yaml:"fps"`
}

// Dir is the smarttask directory under the user config directory.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, "smarttask")
}

// DefaultPath is the config file read when none is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		StorePath: filepath.Join(Dir(), "tasks.yaml"),
		Theme:     string(charts.ThemeLight),
		Chart: Chart{
			Format:     "png",
			Width:      400,
			Height:     300,
			PixelRatio: 2,
		},
		Dashboard: Dashboard{FPS: 60},
	}
}

// Load reads the file at path over the defaults and applies environment
// overrides. A missing file is not an error when path is the default.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""

	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)

	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		err = decode(path, data, &cfg)
		if err != nil {
			return Config{}, err
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvStore); ok && v != "" {
		c.StorePath = v
	}

	if v, ok := lookup(EnvTheme); ok && v != "" {
		c.Theme = v
	}
}

// ThemeValue parses the configured theme. An empty or "auto" theme returns
// ok false, meaning the terminal preference decides.
func (c Config) ThemeValue() (charts.Theme, bool) {
	t, err := charts.ParseTheme(c.Theme)
	if err != nil {
		return charts.ThemeLight, false
	}

	return t, true
}

// Dimensions is the logical chart size.
func (c Config) Dimensions() charts.Dimensions {
	return charts.Dimensions{
		Width:      c.Chart.Width,
		Height:     c.Chart.Height,
		PixelRatio: c.Chart.PixelRatio,
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var merr *multierror.Error

	if c.StorePath == "" {
		merr = multierror.Append(merr, fmt.Errorf("%w: store path is empty", ErrInvalidConfig))
	}

	if theme := strings.ToLower(strings.TrimSpace(c.Theme)); theme != "" && theme != "auto" {
		if _, err := charts.ParseTheme(theme); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
	}

	if err := c.Dimensions().Validate(); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("%w: chart: %w", ErrInvalidConfig, err))
	}

	switch strings.ToLower(c.Chart.Format) {
	case "png", "svg":
	default:
		merr = multierror.Append(merr, fmt.Errorf("%w: chart format %q", ErrInvalidConfig, c.Chart.Format))
	}

	if c.Dashboard.FPS <= 0 || c.Dashboard.FPS > 240 {
		merr = multierror.Append(merr, fmt.Errorf("%w: dashboard fps %d", ErrInvalidConfig, c.Dashboard.FPS))
	}

	return merr.ErrorOrNil()
}
