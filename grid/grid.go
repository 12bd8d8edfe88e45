package grid

import (
	"time"

	"github.com/lixenwraith/camo/core"
)

// Cell is one camo tile; immutable once built
type Cell struct {
	ID            int
	Token         int // palette index
	Color         core.RGB
	PulseDuration time.Duration
	PulseDelay    time.Duration
}

// Size is a grid dimension in cells
type Size struct {
	Cols, Rows int
}

// Count returns Cols*Rows
func (s Size) Count() int {
	return s.Cols * s.Rows
}

// Grid is a row-major cell list; len(Cells) == Cols*Rows
type Grid struct {
	Cols, Rows int
	Cells      []Cell
}

// Len returns the cell count
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Cells)
}

// Size returns the dimensions
func (g *Grid) Size() Size {
	return Size{Cols: g.Cols, Rows: g.Rows}
}

// Index maps (col, row) to a cell index, -1 when outside the grid
func (g *Grid) Index(col, row int) int {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return -1
	}
	return row*g.Cols + col
}

// Coord maps a cell index back to (col, row)
func (g *Grid) Coord(i int) (col, row int) {
	return i % g.Cols, i / g.Cols
}

// Histogram counts cells per palette token
func (g *Grid) Histogram(tokens int) []int {
	out := make([]int, tokens)
	for _, c := range g.Cells {
		if c.Token >= 0 && c.Token < tokens {
			out[c.Token]++
		}
	}
	return out
}
