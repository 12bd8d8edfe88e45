package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/camo/grid"
)

// GridRef is the live grid reference every deferred callback reads at fire time
// Captured *grid.Grid values go stale on rebuild; a GridRef never does
type GridRef struct {
	p atomic.Pointer[grid.Grid]
}

// NewGridRef creates a reference holding g (may be nil)
func NewGridRef(g *grid.Grid) *GridRef {
	r := &GridRef{}
	r.p.Store(g)
	return r
}

// Load returns the current grid
func (r *GridRef) Load() *grid.Grid {
	return r.p.Load()
}

// Swap installs g and returns the previous grid
func (r *GridRef) Swap(g *grid.Grid) *grid.Grid {
	return r.p.Swap(g)
}
