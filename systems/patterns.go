package systems

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/camo/constants"
)

// Pattern is the spatial shape of one glitch event
type Pattern int

const (
	PatternScatter Pattern = iota
	PatternHStreak
	PatternVColumn
	PatternBlock
	PatternCascade

	PatternCount
)

func (p Pattern) String() string {
	switch p {
	case PatternScatter:
		return "scatter"
	case PatternHStreak:
		return "hstreak"
	case PatternVColumn:
		return "vcolumn"
	case PatternBlock:
		return "block"
	case PatternCascade:
		return "cascade"
	}
	return "unknown"
}

// GlitchEvent is one selection of cells to flash
// Indices are row-major into the grid the event was selected against
type GlitchEvent struct {
	Pattern Pattern
	Indices []int
	Stagger time.Duration // start offset between consecutive cells
	Cycles  int           // highlight/restore repeats per cell
}

// FlashDuration is the time from the first cell's highlight to the last cell's final restore step
func (e GlitchEvent) FlashDuration(step time.Duration) time.Duration {
	if len(e.Indices) == 0 {
		return 0
	}
	return time.Duration(len(e.Indices)-1)*e.Stagger + time.Duration(2*e.Cycles)*step
}

// SelectPattern picks one of the five patterns uniformly and places it on a cols x rows grid
// Extents clamp to the grid and start offsets clamp so every index is in [0, cols*rows)
func SelectPattern(r *rand.Rand, cols, rows int) GlitchEvent {
	cols = max(1, cols)
	rows = max(1, rows)

	p := Pattern(r.IntN(int(PatternCount)))
	ev := GlitchEvent{
		Pattern: p,
		Stagger: constants.GlitchStagger,
		Cycles:  constants.GlitchCycles,
	}

	switch p {
	case PatternScatter:
		ev.Indices = scatter(r, cols*rows, between(r, constants.ScatterMin, constants.ScatterMax))
	case PatternHStreak:
		ev.Indices = rowRun(r, cols, rows, between(r, constants.HStreakMin, constants.HStreakMax))
	case PatternVColumn:
		ev.Indices = columnRun(r, cols, rows, between(r, constants.VColumnMin, constants.VColumnMax))
	case PatternBlock:
		ev.Indices = block(r, cols, rows, between(r, 2, 3), 2)
	case PatternCascade:
		ev.Indices = rowRun(r, cols, rows, between(r, constants.CascadeMin, constants.CascadeMax))
		ev.Stagger = constants.GlitchCascadeStagger
		ev.Cycles = constants.GlitchCascadeCycles
	}
	return ev
}

// between draws an int in [lo, hi]
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// scatter draws n distinct indices from [0, total)
func scatter(r *rand.Rand, total, n int) []int {
	n = min(n, total)
	seen := make(map[int]bool, n)
	out := make([]int, 0, n)
	for len(out) < n {
		i := r.IntN(total)
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out
}

func rowRun(r *rand.Rand, cols, rows, length int) []int {
	length = min(length, cols)
	row := r.IntN(rows)
	start := r.IntN(cols - length + 1)
	out := make([]int, length)
	for k := range out {
		out[k] = row*cols + start + k
	}
	return out
}

func columnRun(r *rand.Rand, cols, rows, length int) []int {
	length = min(length, rows)
	col := r.IntN(cols)
	start := r.IntN(rows - length + 1)
	out := make([]int, length)
	for k := range out {
		out[k] = (start+k)*cols + col
	}
	return out
}

func block(r *rand.Rand, cols, rows, w, h int) []int {
	w = min(w, cols)
	h = min(h, rows)
	col := r.IntN(cols - w + 1)
	row := r.IntN(rows - h + 1)
	out := make([]int, 0, w*h)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			out = append(out, (row+dy)*cols+col+dx)
		}
	}
	return out
}
