package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/camo/core"
	"github.com/lixenwraith/camo/engine"
)

// TerminalRenderer paints the layer as background-colored spaces
type TerminalRenderer struct {
	screen tcell.Screen
	comp   Compositor
	mode   ColorMode
	hudFg  core.RGB
}

// NewTerminalRenderer creates a renderer for screen; hudFg colors the HUD text
func NewTerminalRenderer(screen tcell.Screen, comp Compositor, mode ColorMode, hudFg core.RGB) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		comp:   comp,
		mode:   mode,
		hudFg:  hudFg,
	}
}

// Mode returns the active color mode
func (r *TerminalRenderer) Mode() ColorMode {
	return r.mode
}

// Draw renders one frame; a non-empty hud is overlaid on the top row
func (r *TerminalRenderer) Draw(layer *engine.Layer, hud string) {
	w, h := r.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := r.comp.At(layer, x, y, w, h)
			style := tcell.StyleDefault.Background(RGBToTcell(c, r.mode))
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	if hud != "" && h > 0 {
		r.drawHUD(hud, w)
	}
	r.screen.Show()
}

func (r *TerminalRenderer) drawHUD(text string, width int) {
	style := tcell.StyleDefault.
		Background(RGBToTcell(r.comp.Base, r.mode)).
		Foreground(RGBToTcell(r.hudFg, r.mode))
	x := 0
	for _, ch := range text {
		if x >= width {
			break
		}
		r.screen.SetContent(x, 0, ch, nil, style)
		x++
	}
}
