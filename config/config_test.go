package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/grid"
	"github.com/lixenwraith/camo/palette"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, 0.72, cfg.TargetOpacity())
	assert.False(t, cfg.StaticOnly())
	assert.Equal(t, grid.TerminalPlanner(), cfg.Planner())

	p, err := cfg.BuildPalette()
	require.NoError(t, err)
	assert.Equal(t, palette.Default().Tokens(), p.Tokens())
	assert.Equal(t, palette.Deep, p.Base())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
variant: dim
seed: 1234
glitch:
  mean_interval: 20s
  micro_burst_probability: 0.5
grid:
  pitch_x: 6
palette:
  highlight: "#ffffff"
`))
	require.NoError(t, err)

	assert.Equal(t, constants.DimTargetOpacity, cfg.TargetOpacity())
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.Equal(t, 20*time.Second, cfg.Glitch.MeanInterval)
	assert.Equal(t, constants.GlitchFlashStep, cfg.Glitch.FlashStep, "unset fields keep defaults")
	assert.Equal(t, 6.0, cfg.Grid.PitchX)
	assert.Equal(t, float64(constants.TerminalPitchY), cfg.Grid.PitchY)
	assert.Len(t, cfg.Palette.Tokens, 6)

	p, err := cfg.BuildPalette()
	require.NoError(t, err)
	gc := cfg.GlitchSettings(p)
	assert.Equal(t, "#ffffff", gc.Highlight.Hex())
	assert.Equal(t, 0.5, gc.MicroBurstProbability)
	assert.Equal(t, 20*time.Second, gc.MeanInterval)
}

func TestVariants(t *testing.T) {
	cfg := Default()
	cfg.Variant = VariantStatic
	assert.True(t, cfg.StaticOnly())
	assert.Equal(t, 0.55, cfg.TargetOpacity())

	cfg.Opacity = 0.4
	assert.Equal(t, 0.4, cfg.TargetOpacity(), "explicit opacity wins")

	cfg = Default()
	cfg.Static = true
	assert.True(t, cfg.StaticOnly())
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"variant":     func(c *Config) { c.Variant = "loud" },
		"opacity":     func(c *Config) { c.Opacity = 1.5 },
		"color":       func(c *Config) { c.Color = "cga" },
		"screens":     func(c *Config) { c.DocumentScreens = 0 },
		"pitch":       func(c *Config) { c.Grid.PitchY = 0 },
		"overscan":    func(c *Config) { c.Grid.Overscan = 0.9 },
		"timing":      func(c *Config) { c.Glitch.FlashStep = 0 },
		"burst":       func(c *Config) { c.Glitch.MicroBurstMax = time.Millisecond },
		"probability": func(c *Config) { c.Glitch.MicroBurstProbability = 2 },
		"min cells":   func(c *Config) { c.Glitch.MinCells = 0 },
		"weight":      func(c *Config) { c.Palette.Tokens[0].Weight = -1 },
		"hex":         func(c *Config) { c.Palette.Tokens[2].Color = "forest" },
		"empty":       func(c *Config) { c.Palette.Tokens = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), ErrInvalidConfig)
		})
	}

	cfg := Default()
	cfg.Palette.Tokens[2].Color = "forest"
	assert.ErrorIs(t, Validate(cfg), palette.ErrInvalidColor)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: [unclosed"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("opacity: 3"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
