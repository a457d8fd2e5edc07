package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/pixelsmash/levels"
	"github.com/milk9111/pixelsmash/palette"
)

//go:embed editor.yaml
var defaultYAML []byte

// Environment variables that override the YAML file.
const (
	EnvAssetsDir = "PIXELSMASH_ASSETS_DIR"
	EnvOutputDir = "PIXELSMASH_OUTPUT_DIR"
	EnvLogLevel  = "PIXELSMASH_LOG_LEVEL"
)

type Config struct {
	// AssetsDir holds the grayscale sprite PNGs. Empty means the embedded set.
	AssetsDir string `yaml:"assets_dir"`
	// OutputDir is where levels are saved and loaded by file name.
	OutputDir string `yaml:"output_dir"`

	TileSize     int `yaml:"tile_size"`
	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`
	EditorScale  int `yaml:"editor_scale"`

	Level LevelSpec `yaml:"level"`

	DefaultPrimary   string   `yaml:"default_primary"`
	DefaultSecondary string   `yaml:"default_secondary"`
	DefaultTileType  int      `yaml:"default_tile_type"`
	PaletteHex       []string `yaml:"palette"`

	LogLevel string `yaml:"log_level"`
}

// LevelSpec is the size of a new level.
type LevelSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the embedded configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic("config: embedded editor.yaml: " + err.Error())
	}
	return &cfg
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// Load starts from the embedded defaults, applies the YAML file at path when
// it exists and then the environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if v, ok := os.LookupEnv(EnvAssetsDir); ok {
		cfg.AssetsDir = v
	}
	if v, ok := os.LookupEnv(EnvOutputDir); ok {
		cfg.OutputDir = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the numeric settings and every color.
func (c *Config) Validate() error {
	var errs []error
	positive := map[string]int{
		"tile_size":     c.TileSize,
		"screen_width":  c.ScreenWidth,
		"screen_height": c.ScreenHeight,
		"editor_scale":  c.EditorScale,
		"level.width":   c.Level.Width,
		"level.height":  c.Level.Height,
	}
	for name, v := range positive {
		if v < 1 {
			errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", name, v))
		}
	}
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Primary(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Secondary(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// GridWidth is the number of tiles visible across the canvas.
func (c *Config) GridWidth() int { return c.ScreenWidth / c.TileSize }

// GridHeight is the number of tiles visible down the canvas.
func (c *Config) GridHeight() int { return c.ScreenHeight / c.TileSize }

// CellPixels is the on-screen size of one tile.
func (c *Config) CellPixels() int { return c.TileSize * c.EditorScale }

// CanvasSize is the on-screen size of the painting area.
func (c *Config) CanvasSize() (int, int) {
	return c.ScreenWidth * c.EditorScale, c.ScreenHeight * c.EditorScale
}

// Palette parses the swatch list. An empty list means palette.Default.
func (c *Config) Palette() ([]levels.Color, error) {
	if len(c.PaletteHex) == 0 {
		return append([]levels.Color(nil), palette.Default...), nil
	}
	out := make([]levels.Color, 0, len(c.PaletteHex))
	for _, h := range c.PaletteHex {
		col, err := palette.ParseHex(strings.TrimSpace(h))
		if err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, nil
}

func (c *Config) Primary() (levels.Color, error) {
	return parseOr(c.DefaultPrimary, palette.DefaultPrimary)
}

func (c *Config) Secondary() (levels.Color, error) {
	return parseOr(c.DefaultSecondary, palette.DefaultSecondary)
}

func parseOr(hex string, fallback levels.Color) (levels.Color, error) {
	if strings.TrimSpace(hex) == "" {
		return fallback, nil
	}
	return palette.ParseHex(strings.TrimSpace(hex))
}

// TileType is the brush type for a fresh session.
func (c *Config) TileType() levels.TypeID {
	if c.DefaultTileType < int(levels.TypeFloor) || c.DefaultTileType > int(levels.TypeParticle) {
		return palette.DefaultTileType
	}
	return levels.TypeID(c.DefaultTileType)
}

// Logger builds a text logger at the configured level.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
