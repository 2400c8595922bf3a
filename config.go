package editscene

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable constants of a scene.
type Config struct {
	// ScrollStep is the pan distance in world units for one wheel step or
	// one pan timer fire.
	ScrollStep int64 `yaml:"scroll_step"`
	// FastScrollMultiplier scales wheel panning while shift is held.
	FastScrollMultiplier int64   `yaml:"fast_scroll_multiplier"`
	ZoomStep             float64 `yaml:"zoom_step"`
	MinZoom              float64 `yaml:"min_zoom"`

	PanInterval     time.Duration `yaml:"pan_interval"`
	FastPanInterval time.Duration `yaml:"fast_pan_interval"`

	// ItemSize is the edge length of items created by AddRect.
	ItemSize int64 `yaml:"item_size"`

	Grid GridConfig `yaml:"grid"`

	// ScreenshotDir receives PNG captures queued with Scene.Screenshot.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// GridConfig describes the procedural population grid. Cells cover
// [MinX, MaxX) x [MinY, MaxY) in Step increments; every other cell is
// shifted down by Offset, giving a brick pattern.
type GridConfig struct {
	MinX   int64 `yaml:"min_x"`
	MaxX   int64 `yaml:"max_x"`
	MinY   int64 `yaml:"min_y"`
	MaxY   int64 `yaml:"max_y"`
	Step   int64 `yaml:"step"`
	Offset int64 `yaml:"offset"`
}

// Cells returns the number of cells the grid produces.
func (g GridConfig) Cells() int64 {
	if g.Step <= 0 || g.MaxX <= g.MinX || g.MaxY <= g.MinY {
		return 0
	}
	cols := (g.MaxX - g.MinX + g.Step - 1) / g.Step
	rows := (g.MaxY - g.MinY + g.Step - 1) / g.Step
	return cols * rows
}

// DefaultConfig returns the stock editor configuration.
func DefaultConfig() Config {
	return Config{
		ScrollStep:           32,
		FastScrollMultiplier: 4,
		ZoomStep:             0.1,
		MinZoom:              0.05,
		PanInterval:          32 * time.Millisecond,
		FastPanInterval:      8 * time.Millisecond,
		ItemSize:             32,
		Grid: GridConfig{
			MinX: -1024, MaxX: 32000,
			MinY: -1024, MaxY: 32000,
			Step:   32,
			Offset: 16,
		},
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig reads a YAML configuration file. Keys missing from the file
// keep their default values. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("scroll_step", c.ScrollStep, positive[int64]),
		criterio.Run("fast_scroll_multiplier", c.FastScrollMultiplier, positive[int64]),
		criterio.Run("zoom_step", c.ZoomStep, positive[float64]),
		criterio.Run("min_zoom", c.MinZoom, positive[float64]),
		criterio.Run("pan_interval", c.PanInterval, positive[time.Duration]),
		criterio.Run("fast_pan_interval", c.FastPanInterval, positive[time.Duration]),
		criterio.Run("item_size", c.ItemSize, positive[int64]),
		c.Grid.validate(),
	)
}

func (g GridConfig) validate() error {
	var errs criterio.FieldErrorsBuilder
	if g.Step <= 0 {
		errs = errs.Append("grid.step", fmt.Errorf("must be positive, got %d", g.Step))
	}
	if g.MaxX <= g.MinX {
		errs = errs.Append("grid.max_x", fmt.Errorf("must be greater than min_x (%d)", g.MinX))
	}
	if g.MaxY <= g.MinY {
		errs = errs.Append("grid.max_y", fmt.Errorf("must be greater than min_y (%d)", g.MinY))
	}
	return errs.ToError()
}

func positive[T int64 | float64 | time.Duration](v T) error {
	if v <= 0 {
		return fmt.Errorf("must be positive, got %v", v)
	}
	return nil
}

// withDefaults replaces every non-positive field with its default.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ScrollStep <= 0 {
		c.ScrollStep = d.ScrollStep
	}
	if c.FastScrollMultiplier <= 0 {
		c.FastScrollMultiplier = d.FastScrollMultiplier
	}
	if c.ZoomStep <= 0 {
		c.ZoomStep = d.ZoomStep
	}
	if c.MinZoom <= 0 {
		c.MinZoom = d.MinZoom
	}
	if c.PanInterval <= 0 {
		c.PanInterval = d.PanInterval
	}
	if c.FastPanInterval <= 0 {
		c.FastPanInterval = d.FastPanInterval
	}
	if c.ItemSize <= 0 {
		c.ItemSize = d.ItemSize
	}
	if c.Grid.validate() != nil {
		c.Grid = d.Grid
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = d.ScreenshotDir
	}
	return c
}
