package grid

import (
	"math"

	"github.com/lixenwraith/camo/constants"
)

// Planner sizes the grid from the viewport and a fixed cell pitch
// Units are whatever the host measures the viewport in (characters or pixels)
type Planner struct {
	PitchX, PitchY float64
	Overscan       float64 // virtual canvas scale past the viewport
	NarrowBelow    int     // viewport width under which density halves
}

// TerminalPlanner sizes cells in character cells
func TerminalPlanner() Planner {
	return Planner{
		PitchX:      constants.TerminalPitchX,
		PitchY:      constants.TerminalPitchY,
		Overscan:    constants.Overscan,
		NarrowBelow: constants.TerminalNarrowBelow,
	}
}

// WindowPlanner sizes cells in pixels
func WindowPlanner() Planner {
	return Planner{
		PitchX:      constants.WindowPitch,
		PitchY:      constants.WindowPitch,
		Overscan:    constants.Overscan,
		NarrowBelow: constants.WindowNarrowBelow,
	}
}

// IsNarrow reports the small-viewport policy for a width
func (p Planner) IsNarrow(width int) bool {
	return width < p.NarrowBelow
}

// Plan computes cols/rows covering the oversized canvas
// Narrow viewports get half the density in both axes; the result is never below 1x1
func (p Planner) Plan(width, height int, narrow bool) Size {
	cols := span(width, p.Overscan, p.PitchX)
	rows := span(height, p.Overscan, p.PitchY)
	if narrow {
		cols = max(1, cols/2)
		rows = max(1, rows/2)
	}
	return Size{Cols: cols, Rows: rows}
}

func span(extent int, overscan, pitch float64) int {
	if extent <= 0 || !(pitch > 0) {
		return 1
	}
	if overscan < 1 {
		overscan = 1
	}
	n := int(math.Ceil(float64(extent) * overscan / pitch))
	return max(1, n)
}
