package render

import (
	"github.com/lixenwraith/camo/engine"
)

// Fill writes the composited w x h viewport into pix as RGBA, row-major
// pix must hold at least w*h*4 bytes; shorter buffers are left untouched
func (c Compositor) Fill(pix []byte, l *engine.Layer, w, h int) {
	if w <= 0 || h <= 0 || len(pix) < w*h*4 {
		return
	}
	for y := 0; y < h; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			rgb := c.At(l, x, y, w, h)
			base := row + x*4
			pix[base] = rgb.R
			pix[base+1] = rgb.G
			pix[base+2] = rgb.B
			pix[base+3] = 255
		}
	}
}
