package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flags are the command-line overrides shared by both hosts
type Flags struct {
	Path            string
	Variant         string
	Opacity         float64
	Static          bool
	ReducedMotion   bool
	Seed            uint64
	Sound           bool
	Watch           bool
	HUD             bool
	Debug           bool
	Color           string
	DocumentScreens float64
}

// Register binds every flag to fs
func (f *Flags) Register(fs *pflag.FlagSet) {
	d := Default()
	fs.StringVarP(&f.Path, "config", "c", "", "YAML configuration file")
	fs.StringVar(&f.Variant, "variant", d.Variant, "Preset: full, dim or static")
	fs.Float64Var(&f.Opacity, "opacity", 0, "Target container opacity in (0,1], 0 keeps the variant's")
	fs.BoolVar(&f.Static, "static", false, "Render once and never animate")
	fs.BoolVar(&f.ReducedMotion, "reduced-motion", false, "Force the reduced-motion path")
	fs.Uint64Var(&f.Seed, "seed", 0, "Pattern seed, 0 derives one from the session id")
	fs.BoolVar(&f.Sound, "sound", false, "Play a crackle on each glitch")
	fs.BoolVar(&f.Watch, "watch", false, "Reload the palette when the config file changes")
	fs.BoolVar(&f.HUD, "hud", false, "Show the status line")
	fs.BoolVar(&f.Debug, "debug", false, "Write debug logs")
	fs.StringVar(&f.Color, "color", d.Color, "Color mode: auto, truecolor, 256")
	fs.Float64Var(&f.DocumentScreens, "document-screens", d.DocumentScreens, "Simulated page length in screens")
}

// Resolve loads the config file when given and applies the flags the user set
func (f *Flags) Resolve(fs *pflag.FlagSet) (*Config, error) {
	cfg := Default()
	if f.Path != "" {
		loaded, err := Load(f.Path)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", f.Path, err)
		}
		cfg = loaded
	}

	changed := fs.Changed
	if changed("variant") {
		cfg.Variant = f.Variant
	}
	if changed("opacity") {
		cfg.Opacity = f.Opacity
	}
	if changed("static") {
		cfg.Static = f.Static
	}
	if changed("reduced-motion") {
		cfg.ReducedMotion = f.ReducedMotion
	}
	if changed("seed") {
		cfg.Seed = f.Seed
	}
	if changed("sound") {
		cfg.Sound = f.Sound
	}
	if changed("hud") {
		cfg.HUD = f.HUD
	}
	if changed("color") {
		cfg.Color = f.Color
	}
	if changed("document-screens") {
		cfg.DocumentScreens = f.DocumentScreens
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
