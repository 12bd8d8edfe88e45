package noise

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestPermutationTableIsBijection(t *testing.T) {
	table := NewPermutationTable(seeded(1))

	seen := make(map[uint8]bool, TableSize)
	for i := 0; i < TableSize; i++ {
		seen[table.At(i)] = true
		assert.Equal(t, table.At(i), table.At(i+TableSize), "doubled half must mirror index %d", i)
	}
	assert.Len(t, seen, TableSize)
}

func TestPermutationTableShuffles(t *testing.T) {
	a := NewPermutationTable(seeded(1))
	b := NewPermutationTable(seeded(2))

	identity := true
	differs := false
	for i := 0; i < TableSize; i++ {
		if a.At(i) != uint8(i) {
			identity = false
		}
		if a.At(i) != b.At(i) {
			differs = true
		}
	}
	assert.False(t, identity, "table should not be the identity permutation")
	assert.True(t, differs, "different seeds should produce different tables")
}

func TestOctaveWeights(t *testing.T) {
	sum := 0.0
	for _, w := range OctaveWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.InDelta(t, 0.500, OctaveWeights[0], 0.001)
	assert.InDelta(t, 0.309, OctaveWeights[1], 0.001)
	assert.InDelta(t, 0.191, OctaveWeights[2], 0.001)
	assert.InDelta(t, 2.618, Lacunarity, 0.001)
}

func TestFBMDeterministicAndIdempotent(t *testing.T) {
	field := NewField(NewPermutationTable(seeded(42)), 0.071, 0.113)
	again := NewField(NewPermutationTable(seeded(42)), 0.071, 0.113)

	for row := 0; row < 40; row++ {
		for col := 0; col < 60; col++ {
			v := field.FBM(col, row)
			require.Equal(t, v, field.FBM(col, row), "repeat call at (%d,%d)", col, row)
			require.Equal(t, v, again.FBM(col, row), "same seed at (%d,%d)", col, row)
		}
	}
}

func TestFBMRange(t *testing.T) {
	field := NewField(NewPermutationTable(seeded(7)), 0.071, 0.113)
	for row := -20; row < 200; row++ {
		for col := -20; col < 200; col++ {
			v := field.FBM(col, row)
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
		}
	}
}

// Value noise with quintic fades has no jumps: small steps give small changes
func TestSampleContinuousAcrossLattice(t *testing.T) {
	table := NewPermutationTable(seeded(3))
	const eps = 1e-6
	for i := 0; i < 50; i++ {
		x := float64(i) + 0.5
		for j := 0; j < 50; j++ {
			y := float64(j)
			below := table.Sample(x, y-eps)
			above := table.Sample(x, y+eps)
			assert.Less(t, math.Abs(above-below), 1e-4, "jump across y lattice line at (%v,%v)", x, y)

			left := table.Sample(float64(j)-eps, x)
			right := table.Sample(float64(j)+eps, x)
			assert.Less(t, math.Abs(right-left), 1e-4, "jump across x lattice line at (%v,%v)", float64(j), x)
		}
	}
}

func TestSampleHitsLatticeValues(t *testing.T) {
	table := NewPermutationTable(seeded(5))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			want := float64(table.hash(x, y)) / 255.0
			assert.InDelta(t, want, table.Sample(float64(x), float64(y)), 1e-12)
		}
	}
}

func TestFBMVaries(t *testing.T) {
	field := NewField(NewPermutationTable(seeded(11)), 0.071, 0.113)
	lo, hi := 1.0, 0.0
	for row := 0; row < 60; row++ {
		for col := 0; col < 90; col++ {
			v := field.FBM(col, row)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	assert.Greater(t, hi-lo, 0.3, "field should not be flat")
}
