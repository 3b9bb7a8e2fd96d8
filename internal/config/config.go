// Package config loads and saves the resource browser settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Match modes understood by the catalog layer.
const (
	MatchGlob  = "glob"
	MatchFuzzy = "fuzzy"
)

// Config is the full settings file.
type Config struct {
	LogLevel string        `toml:"log_level"`
	Catalog  CatalogConfig `toml:"catalog"`
	Icons    IconConfig    `toml:"icons"`
	Window   WindowConfig  `toml:"window"`
	Loader   LoaderConfig  `toml:"loader"`
}

// CatalogConfig selects where resource names come from and how they match.
type CatalogConfig struct {
	// Dir is a directory of images. Empty means the built-in theme icons.
	Dir        string   `toml:"dir"`
	Match      string   `toml:"match"`
	Extensions []string `toml:"extensions"`
}

// IconConfig holds the thumbnail and grid cell metrics.
type IconConfig struct {
	Size       int `toml:"size"`
	GridWidth  int `toml:"grid_width"`
	GridHeight int `toml:"grid_height"`
	Padding    int `toml:"padding"`
	Border     int `toml:"border"`
}

// WindowConfig is the initial panel size.
type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// LoaderConfig tunes the background thumbnail pass.
type LoaderConfig struct {
	StartDelay Duration `toml:"start_delay"`
}

// Duration is a time.Duration stored as a string such as "10ms".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Catalog: CatalogConfig{
			Match:      MatchGlob,
			Extensions: []string{".png", ".svg"},
		},
		Icons: IconConfig{
			Size:       32,
			GridWidth:  120,
			GridHeight: 60,
			Padding:    5,
			Border:     1,
		},
		Window: WindowConfig{
			Width:  1030,
			Height: 590,
		},
		Loader: LoaderConfig{
			StartDelay: Duration(time.Millisecond),
		},
	}
}

// DefaultPath is the settings file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		dir = filepath.Join(dir, ".config")
	}
	return filepath.Join(dir, "resourcebrowser", "config.toml")
}

// Load reads the settings at path. A missing file yields Default().
// Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects settings the panel cannot work with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Catalog.Match) {
	case MatchGlob, MatchFuzzy:
	default:
		return fmt.Errorf("unknown match mode %q", c.Catalog.Match)
	}
	if len(c.Catalog.Extensions) == 0 {
		return errors.New("at least one image extension is required")
	}
	if c.Icons.Size <= 0 || c.Icons.GridWidth <= 0 || c.Icons.GridHeight <= 0 {
		return fmt.Errorf("icon sizes must be positive (size %d, grid %dx%d)",
			c.Icons.Size, c.Icons.GridWidth, c.Icons.GridHeight)
	}
	if c.Icons.Padding < 0 || c.Icons.Border < 0 {
		return errors.New("icon padding and border cannot be negative")
	}
	return nil
}
