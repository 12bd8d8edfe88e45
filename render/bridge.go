package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/camo/core"
)

// TcellToRGB converts tcell.Color to RGB, ColorDefault reads as black
func TcellToRGB(c tcell.Color) core.RGB {
	if c == tcell.ColorDefault {
		return core.RGBBlack
	}
	r, g, b := c.RGB()
	return core.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// RGBToTcell converts RGB to a tcell color in the given mode
func RGBToTcell(rgb core.RGB, mode ColorMode) tcell.Color {
	if mode == ColorMode256 {
		return tcell.PaletteColor(int(RGBTo256(rgb)))
	}
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}
