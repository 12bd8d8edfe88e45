package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from any screen backend
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
)

// ParseHex parses "#rrggbb" or "#rgb" into RGB
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		// colorful only accepts the long form
		if len(s) == 4 && s[0] == '#' {
			long := fmt.Sprintf("#%c%c%c%c%c%c", s[1], s[1], s[2], s[2], s[3], s[3])
			if c, err = colorful.Hex(long); err == nil {
				return FromColorful(c), nil
			}
		}
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// MustParseHex is ParseHex for compile-time palette literals
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColorful clamps a colorful.Color into 8-bit channels
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Colorful converts to colorful.Color for blending in other color spaces
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Hex returns the "#rrggbb" form
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv + 0.5),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv + 0.5),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv + 0.5),
	}
}

// Lerp interpolates from c to dst in RGB space, t clamped to [0, 1]
// Endpoints are returned exactly so a completed fade lands on dst bit-for-bit
func (c RGB) Lerp(dst RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return dst
	}
	return FromColorful(c.Colorful().BlendRgb(dst.Colorful(), t))
}

// Scale multiplies each channel by factor (for fading effects)
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}
