package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/camo/core"
	"github.com/lixenwraith/camo/grid"
)

func testGrid(cols, rows int) *grid.Grid {
	g := &grid.Grid{Cols: cols, Rows: rows, Cells: make([]grid.Cell, cols*rows)}
	for i := range g.Cells {
		g.Cells[i] = grid.Cell{ID: i, Color: core.RGB{R: uint8(i), G: 10, B: 20}}
	}
	return g
}

func TestClaimsAreExclusive(t *testing.T) {
	l := NewLayer()

	_, err := l.ClaimContainer()
	require.NoError(t, err)
	_, err = l.ClaimContainer()
	assert.ErrorIs(t, err, ErrPropertyClaimed)

	_, err = l.ClaimCellOpacity()
	require.NoError(t, err)
	_, err = l.ClaimCellOpacity()
	assert.ErrorIs(t, err, ErrPropertyClaimed)

	_, err = l.ClaimCellColor()
	require.NoError(t, err)
	_, err = l.ClaimCellColor()
	assert.ErrorIs(t, err, ErrPropertyClaimed)
}

func TestMountResetsCellState(t *testing.T) {
	l := NewLayer()
	g := testGrid(4, 3)
	l.Mount(g)

	require.Equal(t, 12, l.Len())
	assert.Same(t, g, l.Grid())
	for i := range g.Cells {
		assert.Equal(t, 1.0, l.CellOpacity(i))
		assert.Equal(t, g.Cells[i].Color, l.CellColor(i))
	}

	op, _ := l.ClaimCellOpacity()
	op.Set(2, 0.3)
	colors, _ := l.ClaimCellColor()
	colors.Set(g, 2, core.RGB{R: 255})

	next := testGrid(2, 2)
	l.Mount(next)
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, 1.0, l.CellOpacity(2))
	assert.Equal(t, next.Cells[2].Color, l.CellColor(2))
}

func TestColorWritesAgainstStaleGridAreDropped(t *testing.T) {
	l := NewLayer()
	old := testGrid(4, 4)
	l.Mount(old)
	colors, err := l.ClaimCellColor()
	require.NoError(t, err)

	assert.True(t, colors.Set(old, 5, core.RGB{R: 1}))

	fresh := testGrid(4, 4)
	l.Mount(fresh)
	assert.False(t, colors.Set(old, 5, core.RGB{R: 200}))
	assert.Equal(t, fresh.Cells[5].Color, l.CellColor(5))

	_, ok := colors.Get(old, 5)
	assert.False(t, ok)
	c, ok := colors.Get(fresh, 5)
	assert.True(t, ok)
	assert.Equal(t, fresh.Cells[5].Color, c)
}

func TestWritersIgnoreOutOfRange(t *testing.T) {
	l := NewLayer()
	g := testGrid(2, 2)
	l.Mount(g)

	op, _ := l.ClaimCellOpacity()
	op.Set(-1, 0.5)
	op.Set(4, 0.5)
	assert.Equal(t, 4, op.Len())

	colors, _ := l.ClaimCellColor()
	assert.False(t, colors.Set(g, 99, core.RGB{}))

	assert.Zero(t, l.CellOpacity(99))
	assert.Equal(t, core.RGBBlack, l.CellColor(-1))
}

func TestContainerWriterClamps(t *testing.T) {
	l := NewLayer()
	w, _ := l.ClaimContainer()

	w.SetOpacity(1.4)
	assert.Equal(t, 1.0, l.Container().Opacity)
	w.SetOpacity(-0.1)
	assert.Equal(t, 0.0, l.Container().Opacity)
	w.SetOpacity(math.NaN())
	assert.Equal(t, 0.0, l.Container().Opacity)
	w.SetOpacity(0.72)
	w.SetOffset(-0.1)
	assert.Equal(t, Container{Opacity: 0.72, OffsetY: -0.1}, l.Container())
}

func TestGridRefSwap(t *testing.T) {
	a := testGrid(1, 1)
	b := testGrid(2, 2)
	ref := NewGridRef(a)

	assert.Same(t, a, ref.Load())
	assert.Same(t, a, ref.Swap(b))
	assert.Same(t, b, ref.Load())
}

func TestAccessibilityGate(t *testing.T) {
	full := NewAccessibilityGate(false, false)
	assert.True(t, full.Animated())
	assert.Equal(t, 0.72, full.StaticOpacity(0.72))

	reduced := NewAccessibilityGate(true, false)
	assert.False(t, reduced.Animated())
	assert.True(t, reduced.ReducedMotion())
	assert.Equal(t, 0.55, reduced.StaticOpacity(0.72))

	static := NewAccessibilityGate(false, true)
	assert.False(t, static.Animated())
	assert.Equal(t, 0.3, static.StaticOpacity(0.3))
}

func TestReducedMotionFromEnv(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	assert.False(t, ReducedMotionFromEnv(env(nil)), "missing signal means full animation")
	assert.True(t, ReducedMotionFromEnv(env(map[string]string{"CAMO_REDUCED_MOTION": "1"})))
	assert.True(t, ReducedMotionFromEnv(env(map[string]string{"NO_MOTION": "True"})))
	assert.False(t, ReducedMotionFromEnv(env(map[string]string{"CAMO_REDUCED_MOTION": "0"})))
	assert.False(t, ReducedMotionFromEnv(env(map[string]string{"NO_MOTION": "maybe"})))
}
