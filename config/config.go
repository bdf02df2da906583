package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/milk9111/spritesync/common"
	"github.com/milk9111/spritesync/debug"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Physics PhysicsConfig `yaml:"physics"`
	Bounds  BoundsConfig  `yaml:"bounds"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
	Shapes  ShapesConfig  `yaml:"shapes"`
	Spawns  []Spawn       `yaml:"spawns"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type PhysicsConfig struct {
	GravityX       float64 `yaml:"gravity_x"`
	GravityY       float64 `yaml:"gravity_y"`
	Iterations     uint    `yaml:"iterations"`
	Damping        float64 `yaml:"damping"`
	SleepThreshold float64 `yaml:"sleep_threshold"`
	Step           float64 `yaml:"step"`
}

type BoundsConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Thickness float64 `yaml:"thickness"`
}

type DebugConfig struct {
	Enabled    bool    `yaml:"enabled"`
	FillShapes bool    `yaml:"fill_shapes"`
	Opacity    float64 `yaml:"opacity"`
	LineWidth  float64 `yaml:"line_width"`
	// OverlayOpacity fades the whole debug overlay.
	OverlayOpacity float64       `yaml:"overlay_opacity"`
	Colors         PaletteColors `yaml:"colors"`
}

type PaletteColors struct {
	Static   Color `yaml:"static"`
	Sensor   Color `yaml:"sensor"`
	Sleeping Color `yaml:"sleeping"`
	Dynamic  Color `yaml:"dynamic"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

type ShapesConfig struct {
	// File is a shape file on disk. Empty uses the embedded demo shapes.
	File  string `yaml:"file"`
	Watch bool   `yaml:"watch"`
}

// Spawn places one body built from a named shape at start-up.
type Spawn struct {
	Shape string  `yaml:"shape"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// Color is a color written as "#rrggbb" or "#rrggbbaa".
type Color struct {
	color.NRGBA
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: color must be a string (line %d)", value.Line)
	}
	parsed, err := debug.ParseHex(value.Value)
	if err != nil {
		return fmt.Errorf("config: line %d: %w", value.Line, err)
	}
	c.NRGBA = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return debug.Hex(c.NRGBA), nil
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	p := debug.DefaultPalette()
	return &Config{
		Window: WindowConfig{
			Title:  "spritesync",
			Width:  common.ViewportWidth,
			Height: common.ViewportHeight,
		},
		Physics: PhysicsConfig{
			GravityY:   common.Gravity,
			Iterations: 20,
			Damping:    1,
			Step:       common.StepDT,
		},
		Bounds: BoundsConfig{Enabled: true, Thickness: 50},
		Debug: DebugConfig{
			Enabled:        true,
			FillShapes:     p.FillShapes,
			Opacity:        p.FillOpacity,
			LineWidth:      p.LineWidth,
			OverlayOpacity: p.Opacity,
			Colors: PaletteColors{
				Static:   Color{p.Static},
				Sensor:   Color{p.Sensor},
				Sleeping: Color{p.Sleeping},
				Dynamic:  Color{p.Dynamic},
			},
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Shapes:  ShapesConfig{Watch: true},
		Spawns: []Spawn{
			{Shape: "pad", X: 640, Y: 520},
			{Shape: "crate", X: 600, Y: 200},
			{Shape: "ball", X: 680, Y: 120},
			{Shape: "ell", X: 520, Y: 60, Angle: 0.4},
			{Shape: "lollipop", X: 760, Y: 40},
		},
	}
}

var (
	errWindowSize = errors.New("window size must be positive")
	errStep       = errors.New("physics step must be positive")
	errOpacity    = errors.New("debug opacity must be within [0, 1]")
	errThickness  = errors.New("bounds thickness must be positive")
)

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, errWindowSize)
	}
	if c.Physics.Step <= 0 {
		errs = append(errs, errStep)
	}
	if c.Debug.Opacity < 0 || c.Debug.Opacity > 1 || c.Debug.OverlayOpacity < 0 || c.Debug.OverlayOpacity > 1 {
		errs = append(errs, errOpacity)
	}
	if c.Bounds.Enabled && c.Bounds.Thickness <= 0 {
		errs = append(errs, errThickness)
	}
	return errors.Join(errs...)
}

// Palette is the debug palette described by the config.
func (c *Config) Palette() debug.Palette {
	return debug.Palette{
		Static:      c.Debug.Colors.Static.NRGBA,
		Sensor:      c.Debug.Colors.Sensor.NRGBA,
		Sleeping:    c.Debug.Colors.Sleeping.NRGBA,
		Dynamic:     c.Debug.Colors.Dynamic.NRGBA,
		FillShapes:  c.Debug.FillShapes,
		FillOpacity: c.Debug.Opacity,
		LineWidth:   c.Debug.LineWidth,
		Opacity:     c.Debug.OverlayOpacity,
	}
}
