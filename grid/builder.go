package grid

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/camo/constants"
	"github.com/lixenwraith/camo/noise"
	"github.com/lixenwraith/camo/palette"
)

// Builder turns a random source and a palette into fresh grids
// Every Build consumes the source, so consecutive builds differ
type Builder struct {
	Rand    *rand.Rand
	Palette *palette.Palette
	FreqX   float64
	FreqY   float64
}

// NewBuilder uses the default noise frequencies
func NewBuilder(r *rand.Rand, p *palette.Palette) *Builder {
	return &Builder{
		Rand:    r,
		Palette: p,
		FreqX:   constants.NoiseFreqX,
		FreqY:   constants.NoiseFreqY,
	}
}

// Build creates a new grid; previous grids are never touched
func (b *Builder) Build(cols, rows int) *Grid {
	cols = max(1, cols)
	rows = max(1, rows)
	n := cols * rows

	field := noise.NewField(noise.NewPermutationTable(b.Rand), b.FreqX, b.FreqY)

	values := make([]float64, n)
	for i := range values {
		values[i] = field.FBM(i%cols, i/cols)
	}
	quantiles := Equalize(values)

	g := &Grid{
		Cols:  cols,
		Rows:  rows,
		Cells: make([]Cell, n),
	}
	for i := range g.Cells {
		tok := b.Palette.IndexOf(quantiles[i])
		g.Cells[i] = Cell{
			ID:            i,
			Token:         tok,
			Color:         b.Palette.Token(tok).Color,
			PulseDuration: constants.PulseMinDuration + jitter(b.Rand, constants.PulseDurationSpread),
			PulseDelay:    jitter(b.Rand, constants.PulseMaxDelay),
		}
	}
	return g
}

// jitter returns U*d, U in [0,1)
func jitter(r *rand.Rand, d time.Duration) time.Duration {
	return time.Duration(r.Float64() * float64(d))
}
