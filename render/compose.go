package render

import (
	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/core"
	"github.com/lixenwraith/camo/engine"
)

// Compositor resolves the final color of a viewport position
// The layer's grid covers a canvas Overscan times the viewport, centered on it,
// shifted vertically by the container offset
type Compositor struct {
	Base     core.RGB
	Overscan float64
	Gap      float64 // fraction of each cell pitch left showing Base
}

func NewCompositor(base core.RGB) Compositor {
	return Compositor{Base: base, Overscan: constants.Overscan}
}

// Locate maps viewport point (px, py) of a w x h viewport to a cell index
// Returns -1 for points off the canvas or inside the gap between cells
func (c Compositor) Locate(l *engine.Layer, px, py float64, w, h int) int {
	g := l.Grid()
	if g == nil || w <= 0 || h <= 0 {
		return -1
	}

	overscan := max(c.Overscan, 1)
	inset := (overscan - 1) / 2
	cw := float64(w) * overscan
	ch := float64(h) * overscan

	cx := (px + inset*float64(w)) / cw
	cy := (py+inset*float64(h))/ch - l.Container().OffsetY
	if cx < 0 || cx >= 1 || cy < 0 || cy >= 1 {
		return -1
	}

	fc := cx * float64(g.Cols)
	fr := cy * float64(g.Rows)
	col, row := int(fc), int(fr)
	if c.Gap > 0 && (fc-float64(col) >= 1-c.Gap || fr-float64(row) >= 1-c.Gap) {
		return -1
	}
	return g.Index(col, row)
}

// At samples the center of viewport unit (x, y)
func (c Compositor) At(l *engine.Layer, x, y, w, h int) core.RGB {
	return c.Point(l, float64(x)+0.5, float64(y)+0.5, w, h)
}

// Point blends the cell under (px, py) over Base by container and cell opacity
func (c Compositor) Point(l *engine.Layer, px, py float64, w, h int) core.RGB {
	i := c.Locate(l, px, py, w, h)
	if i < 0 {
		return c.Base
	}
	alpha := l.Container().Opacity * l.CellOpacity(i)
	return c.Base.Blend(l.CellColor(i), alpha)
}
