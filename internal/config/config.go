// Package config loads tilegen settings from an optional TOML file.
//
// Every field has a default, so running without a config file renders a
// 512x512 tile into example/tiles the same way the map generator expects.
package config

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"tools.zach/dev/tilegen/internal/hexcolor"
	"tools.zach/dev/tilegen/internal/logger"
	"tools.zach/dev/tilegen/internal/paths"
	"tools.zach/dev/tilegen/internal/tile"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level configuration.
type Config struct {
	// Image holds raster settings.
	Image ImageConfig `toml:"image"`
	// Output holds where and under which name tiles are written.
	Output OutputConfig `toml:"output"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
	// Sectors are rectangles painted over the background, in order.
	Sectors []SectorConfig `toml:"sector"`

	// dir is the directory of the loaded file; empty when defaults are used.
	dir string
}

// ImageConfig holds raster settings.
type ImageConfig struct {
	// Size is the square tile edge in pixels.
	Size int `toml:"size"`
}

// OutputConfig holds output location settings.
type OutputConfig struct {
	// Dir is the output directory, relative to the config file when not absolute.
	Dir string `toml:"dir"`
	// Filename is the tile name template; supports {hex} and {size}.
	Filename string `toml:"filename"`
}

// SectorConfig describes one [[sector]] overlay. Parts outside the tile are
// clipped.
type SectorConfig struct {
	// Origin is the top-left corner as [x, y] in pixels.
	Origin []int `toml:"origin"`
	// Size is [width, height] in pixels.
	Size []int `toml:"size"`
	// Color is a 3- or 6-digit hex color.
	Color string `toml:"color"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `toml:"level"`
	// File is a log file path; empty logs to stderr.
	File string `toml:"file"`
	// MaxSizeMB is the log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// ///////////////////////////////////////////////
// Defaults
// ///////////////////////////////////////////////

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		Image: ImageConfig{
			Size: 512,
		},
		Output: OutputConfig{
			Dir:      paths.DefaultOutputDir,
			Filename: tile.DefaultNameTemplate,
		},
		Log: LogConfig{
			Level:     "warn",
			MaxSizeMB: 10,
		},
	}
}

// ///////////////////////////////////////////////
// Loading
// ///////////////////////////////////////////////

// Load reads the TOML file at path on top of [DefaultConfig].
// A missing file is not an error. Unknown keys are.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse config: unknown keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Image.Size <= 0 || c.Image.Size > tile.MaxSize {
		return fmt.Errorf("image.size must be between 1 and %d, got %d", tile.MaxSize, c.Image.Size)
	}

	name := c.Output.Filename
	if !strings.Contains(name, "{hex}") {
		return fmt.Errorf("invalid output.filename %q: must contain {hex}", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid output.filename %q: must not contain path separators", name)
	}
	if !strings.EqualFold(filepath.Ext(name), ".png") {
		return fmt.Errorf("invalid output.filename %q: must end in .png", name)
	}

	for i, sc := range c.Sectors {
		if err := sc.validate(); err != nil {
			return fmt.Errorf("sector[%d]: %w", i, err)
		}
	}

	if _, ok := logger.LookupLevel(c.Log.Level); !ok {
		return fmt.Errorf("invalid log.level %q: must be debug, info, warn, or error", c.Log.Level)
	}
	if c.Log.File != "" && c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB)
	}
	return nil
}

func (sc SectorConfig) validate() error {
	if len(sc.Origin) != 2 || sc.Origin[0] < 0 || sc.Origin[1] < 0 {
		return fmt.Errorf("origin must be [x, y] with x, y >= 0, got %v", sc.Origin)
	}
	if len(sc.Size) != 2 || sc.Size[0] <= 0 || sc.Size[1] <= 0 {
		return fmt.Errorf("size must be [width, height] with both > 0, got %v", sc.Size)
	}
	if _, err := hexcolor.Parse(sc.Color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	return nil
}

// ///////////////////////////////////////////////
// Derived Values
// ///////////////////////////////////////////////

// OutputDir returns the output directory, resolved against the directory of
// the loaded config file when relative.
func (c *Config) OutputDir() string {
	return paths.OutputDir(c.dir, c.Output.Dir)
}

// LogFile returns the log file path resolved like [Config.OutputDir], or
// "" when logging to stderr.
func (c *Config) LogFile() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) || c.dir == "" {
		return c.Log.File
	}
	return filepath.Join(c.dir, c.Log.File)
}

// TileSectors converts the configured sectors for [tile.Render].
func (c *Config) TileSectors() ([]tile.Sector, error) {
	out := make([]tile.Sector, 0, len(c.Sectors))
	for i, sc := range c.Sectors {
		if err := sc.validate(); err != nil {
			return nil, fmt.Errorf("sector[%d]: %w", i, err)
		}
		col, _ := hexcolor.Parse(sc.Color)
		x, y := sc.Origin[0], sc.Origin[1]
		out = append(out, tile.Sector{
			Rect:  image.Rect(x, y, x+sc.Size[0], y+sc.Size[1]),
			Color: col,
		})
	}
	return out, nil
}

// FileName returns the tile file name for a hex input as typed.
func (c *Config) FileName(input string) string {
	return tile.FileName(c.Output.Filename, input, c.Image.Size)
}
