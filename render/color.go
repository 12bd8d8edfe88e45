package render

import (
	"strings"

	"github.com/lixenwraith/camo/core"
)

// ColorMode selects how RGB reaches the terminal
type ColorMode uint8

const (
	ColorMode256 ColorMode = iota
	ColorModeTrueColor
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode resolves the --color flag; "auto" detects from the environment
func ParseColorMode(s string, getenv func(string) string) ColorMode {
	switch strings.ToLower(s) {
	case "256":
		return ColorMode256
	case "truecolor", "24bit":
		return ColorModeTrueColor
	}
	return DetectColorMode(getenv)
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode(getenv func(string) string) ColorMode {
	colorterm := getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if getenv("KITTY_WINDOW_ID") != "" ||
		getenv("KONSOLE_VERSION") != "" ||
		getenv("ITERM_SESSION_ID") != "" ||
		getenv("ALACRITTY_WINDOW_ID") != "" ||
		getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// xterm color cube channel levels
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

func cubeIndex(v uint8) int {
	best, bestDist := 0, 256
	for i, level := range cubeValues {
		if d := abs(int(v) - level); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 finds the nearest xterm 256-palette index
// Near-gray colors are checked against the grayscale ramp 232-255 as well as the cube
func RGBTo256(c core.RGB) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)
	cr, cg, cb := cubeIndex(c.R), cubeIndex(c.G), cubeIndex(c.B)
	cubeDist := abs(r-cubeValues[cr]) + abs(g-cubeValues[cg]) + abs(b-cubeValues[cb])
	cube := uint8(16 + 36*cr + 6*cg + cb)

	gray := (r + g + b) / 3
	if max(abs(r-gray), abs(g-gray), abs(b-gray)) >= 10 {
		return cube
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}

	step := min((gray-8+5)/10, 23)
	if step < 0 {
		step = 0
	}
	level := 8 + 10*step
	grayDist := abs(r-level) + abs(g-level) + abs(b-level)
	if grayDist < cubeDist {
		return uint8(232 + step)
	}
	return cube
}
