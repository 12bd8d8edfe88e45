// Package config loads the camo YAML configuration and watches it for edits.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/grid"
	"github.com/lixenwraith/camo/palette"
	"github.com/lixenwraith/camo/systems"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Variants from the preview page
const (
	VariantFull   = "full"
	VariantDim    = "dim"
	VariantStatic = "static"
)

// Config is the complete camo configuration
type Config struct {
	Variant         string  `yaml:"variant"`          // full, dim, static
	Opacity         float64 `yaml:"opacity"`          // 0 keeps the variant's opacity
	Static          bool    `yaml:"static"`           // never animate
	ReducedMotion   bool    `yaml:"reduced_motion"`   // force the reduced-motion path
	Seed            uint64  `yaml:"seed"`             // 0 derives a seed from the session id
	Sound           bool    `yaml:"sound"`            // glitch crackle
	HUD             bool    `yaml:"hud"`              // status line
	Color           string  `yaml:"color"`            // auto, truecolor, 256
	DocumentScreens float64 `yaml:"document_screens"` // simulated page length for scroll progress

	Grid    GridConfig    `yaml:"grid"`
	Glitch  GlitchConfig  `yaml:"glitch"`
	Palette PaletteConfig `yaml:"palette"`
}

// GridConfig overrides the terminal grid planner
type GridConfig struct {
	PitchX      float64 `yaml:"pitch_x"`
	PitchY      float64 `yaml:"pitch_y"`
	Overscan    float64 `yaml:"overscan"`
	NarrowBelow int     `yaml:"narrow_below"`
}

// GlitchConfig holds the scheduler timing
type GlitchConfig struct {
	MeanInterval          time.Duration `yaml:"mean_interval"`
	FlashStep             time.Duration `yaml:"flash_step"`
	RestoreDuration       time.Duration `yaml:"restore_duration"`
	MicroBurstMin         time.Duration `yaml:"micro_burst_min"`
	MicroBurstMax         time.Duration `yaml:"micro_burst_max"`
	MicroBurstProbability float64       `yaml:"micro_burst_probability"`
	MinCells              int           `yaml:"min_cells"`
}

// PaletteConfig holds hex-encoded tokens
type PaletteConfig struct {
	Tokens    []palette.TokenSpec `yaml:"tokens"`
	Highlight string              `yaml:"highlight"`
	Base      string              `yaml:"base"`
}

// Default returns the compiled-in configuration
func Default() *Config {
	return &Config{
		Variant:         VariantFull,
		Color:           "auto",
		DocumentScreens: 4,
		Grid: GridConfig{
			PitchX:      constants.TerminalPitchX,
			PitchY:      constants.TerminalPitchY,
			Overscan:    constants.Overscan,
			NarrowBelow: constants.TerminalNarrowBelow,
		},
		Glitch: GlitchConfig{
			MeanInterval:          constants.GlitchMeanInterval,
			FlashStep:             constants.GlitchFlashStep,
			RestoreDuration:       constants.GlitchRestoreDuration,
			MicroBurstMin:         constants.MicroBurstMinDelay,
			MicroBurstMax:         constants.MicroBurstMaxDelay,
			MicroBurstProbability: constants.MicroBurstProbability,
			MinCells:              constants.GlitchMinCells,
		},
		Palette: PaletteConfig{
			Tokens:    palette.DefaultSpecs(),
			Highlight: palette.Sage.Hex(),
			Base:      palette.Deep.Hex(),
		},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field; all problems are reported together
func Validate(cfg *Config) error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch cfg.Variant {
	case VariantFull, VariantDim, VariantStatic:
	default:
		bad("variant %q (want full, dim or static)", cfg.Variant)
	}
	if cfg.Opacity < 0 || cfg.Opacity > 1 || cfg.Opacity != cfg.Opacity {
		bad("opacity %v outside [0,1]", cfg.Opacity)
	}
	switch cfg.Color {
	case "auto", "truecolor", "256":
	default:
		bad("color %q (want auto, truecolor or 256)", cfg.Color)
	}
	if cfg.DocumentScreens < 1 {
		bad("document_screens %v below 1", cfg.DocumentScreens)
	}

	if !(cfg.Grid.PitchX > 0) || !(cfg.Grid.PitchY > 0) {
		bad("grid pitch %vx%v must be positive", cfg.Grid.PitchX, cfg.Grid.PitchY)
	}
	if cfg.Grid.Overscan < 1 {
		bad("grid overscan %v below 1", cfg.Grid.Overscan)
	}
	if cfg.Grid.NarrowBelow < 0 {
		bad("grid narrow_below %d negative", cfg.Grid.NarrowBelow)
	}

	g := cfg.Glitch
	if g.MeanInterval <= 0 || g.FlashStep <= 0 || g.RestoreDuration <= 0 {
		bad("glitch timing must be positive")
	}
	if g.MicroBurstMin < 0 || g.MicroBurstMax < g.MicroBurstMin {
		bad("glitch micro burst window %v-%v", g.MicroBurstMin, g.MicroBurstMax)
	}
	if g.MicroBurstProbability < 0 || g.MicroBurstProbability > 1 {
		bad("glitch micro_burst_probability %v outside [0,1]", g.MicroBurstProbability)
	}
	if g.MinCells < 1 {
		bad("glitch min_cells %d below 1", g.MinCells)
	}

	if _, err := cfg.BuildPalette(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}

// TargetOpacity resolves the variant and the explicit override
func (c *Config) TargetOpacity() float64 {
	if c.Opacity > 0 {
		return c.Opacity
	}
	switch c.Variant {
	case VariantDim:
		return constants.DimTargetOpacity
	case VariantStatic:
		return constants.ReducedMotionOpacity
	}
	return constants.DefaultTargetOpacity
}

// StaticOnly is true for the static variant or the static flag
func (c *Config) StaticOnly() bool {
	return c.Static || c.Variant == VariantStatic
}

// Planner returns the terminal grid planner
func (c *Config) Planner() grid.Planner {
	return grid.Planner{
		PitchX:      c.Grid.PitchX,
		PitchY:      c.Grid.PitchY,
		Overscan:    c.Grid.Overscan,
		NarrowBelow: c.Grid.NarrowBelow,
	}
}

// BuildPalette parses the palette section
func (c *Config) BuildPalette() (*palette.Palette, error) {
	return palette.FromSpecs(c.Palette.Tokens, c.Palette.Highlight, c.Palette.Base)
}

// GlitchSettings converts to the scheduler configuration
func (c *Config) GlitchSettings(p *palette.Palette) systems.GlitchConfig {
	cfg := systems.DefaultGlitchConfig()
	cfg.MeanInterval = c.Glitch.MeanInterval
	cfg.FlashStep = c.Glitch.FlashStep
	cfg.RestoreDuration = c.Glitch.RestoreDuration
	cfg.MicroBurstMin = c.Glitch.MicroBurstMin
	cfg.MicroBurstMax = c.Glitch.MicroBurstMax
	cfg.MicroBurstProbability = c.Glitch.MicroBurstProbability
	cfg.MinCells = c.Glitch.MinCells
	if p != nil {
		cfg.Highlight = p.Highlight()
	}
	return cfg
}
