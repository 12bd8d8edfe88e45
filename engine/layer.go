package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/camo/core"
	"github.com/lixenwraith/camo/grid"
)

// ErrPropertyClaimed is returned when a layer property already has a writer
var ErrPropertyClaimed = errors.New("layer property already claimed")

// Container holds the whole-layer animated properties
type Container struct {
	Opacity float64
	OffsetY float64 // fraction of canvas height, negative moves up
}

// Layer is the rendered node tree: one container over a mounted grid of cells
// Each animated property has exactly one writer, handed out once by the Claim
// methods. Layer is owned by the host loop goroutine and is not synchronized.
type Layer struct {
	container Container
	mounted   *grid.Grid
	opacity   []float64
	color     []core.RGB

	containerClaimed bool
	opacityClaimed   bool
	colorClaimed     bool
}

// NewLayer creates an empty layer with a transparent container
func NewLayer() *Layer {
	return &Layer{}
}

// Mount replaces the cell set wholesale: colors reset to the cells' base
// colors and opacity to 1. The previous per-cell state is discarded.
func (l *Layer) Mount(g *grid.Grid) {
	l.mounted = g
	if g == nil {
		l.opacity = nil
		l.color = nil
		return
	}
	l.opacity = make([]float64, len(g.Cells))
	l.color = make([]core.RGB, len(g.Cells))
	for i, c := range g.Cells {
		l.opacity[i] = 1
		l.color[i] = c.Color
	}
}

// Grid returns the mounted grid
func (l *Layer) Grid() *grid.Grid {
	return l.mounted
}

// Len returns the mounted cell count
func (l *Layer) Len() int {
	return len(l.color)
}

// Container returns the container state
func (l *Layer) Container() Container {
	return l.container
}

// CellOpacity returns the cell's animated opacity, 0 when out of range
func (l *Layer) CellOpacity(i int) float64 {
	if i < 0 || i >= len(l.opacity) {
		return 0
	}
	return l.opacity[i]
}

// CellColor returns the cell's rendered color
func (l *Layer) CellColor(i int) core.RGB {
	if i < 0 || i >= len(l.color) {
		return core.RGBBlack
	}
	return l.color[i]
}

// ClaimContainer hands out the container opacity and offset writer
func (l *Layer) ClaimContainer() (*ContainerWriter, error) {
	if l.containerClaimed {
		return nil, fmt.Errorf("container: %w", ErrPropertyClaimed)
	}
	l.containerClaimed = true
	return &ContainerWriter{l: l}, nil
}

// ClaimCellOpacity hands out the per-cell opacity writer
func (l *Layer) ClaimCellOpacity() (*CellOpacityWriter, error) {
	if l.opacityClaimed {
		return nil, fmt.Errorf("cell opacity: %w", ErrPropertyClaimed)
	}
	l.opacityClaimed = true
	return &CellOpacityWriter{l: l}, nil
}

// ClaimCellColor hands out the rendered cell color writer
func (l *Layer) ClaimCellColor() (*CellColorWriter, error) {
	if l.colorClaimed {
		return nil, fmt.Errorf("cell color: %w", ErrPropertyClaimed)
	}
	l.colorClaimed = true
	return &CellColorWriter{l: l}, nil
}

// ContainerWriter writes container opacity and offset
type ContainerWriter struct {
	l *Layer
}

func (w *ContainerWriter) SetOpacity(v float64) {
	w.l.container.Opacity = clamp01(v)
}

func (w *ContainerWriter) SetOffset(y float64) {
	w.l.container.OffsetY = y
}

// CellOpacityWriter writes per-cell opacity of the mounted grid
type CellOpacityWriter struct {
	l *Layer
}

// Len returns the mounted cell count
func (w *CellOpacityWriter) Len() int {
	return len(w.l.opacity)
}

// Set ignores out-of-range indices
func (w *CellOpacityWriter) Set(i int, v float64) {
	if i < 0 || i >= len(w.l.opacity) {
		return
	}
	w.l.opacity[i] = clamp01(v)
}

// CellColorWriter writes rendered cell colors
type CellColorWriter struct {
	l *Layer
}

// Set writes c to cell i if g is still the mounted grid
// Writes computed against a replaced grid are dropped and reported false
func (w *CellColorWriter) Set(g *grid.Grid, i int, c core.RGB) bool {
	if g == nil || g != w.l.mounted || i < 0 || i >= len(w.l.color) {
		return false
	}
	w.l.color[i] = c
	return true
}

// Get reads the rendered color of cell i on g, false if g is not mounted
func (w *CellColorWriter) Get(g *grid.Grid, i int) (core.RGB, bool) {
	if g == nil || g != w.l.mounted || i < 0 || i >= len(w.l.color) {
		return core.RGB{}, false
	}
	return w.l.color[i], true
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	case v != v: // NaN
		return 0
	}
	return v
}
