package noise

import "math"

// Phi is the golden ratio
var Phi = (1 + math.Sqrt(5)) / 2

// Lacunarity is the frequency multiplier between octaves (phi squared)
var Lacunarity = Phi * Phi

// Octaves is the fixed octave count of the fractal sum
const Octaves = 3

// OctaveWeights are 1, 1/phi, 1/phi^2 normalized to sum to 1 (~0.500/0.309/0.191)
var OctaveWeights = func() [Octaves]float64 {
	var w [Octaves]float64
	sum := 0.0
	amp := 1.0
	for i := range w {
		w[i] = amp
		sum += amp
		amp /= Phi
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}()

// octaveShift decorrelates octaves that would otherwise share the lattice origin
const octaveShift = 17.31

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Sample returns 2D value noise in [0,1] at (x, y)
// Four hashed lattice corners are blended with quintic fades, so the field is
// continuous across lattice lines
func (t *PermutationTable) Sample(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)

	xi := int(fx) & (TableSize - 1)
	yi := int(fy) & (TableSize - 1)

	u := fade(x - fx)
	v := fade(y - fy)

	c00 := float64(t.hash(xi, yi))
	c10 := float64(t.hash(xi+1, yi))
	c01 := float64(t.hash(xi, yi+1))
	c11 := float64(t.hash(xi+1, yi+1))

	return lerp(lerp(c00, c10, u), lerp(c01, c11, u), v) / 255.0
}

// Field is an anisotropic fractal noise field over integer grid coordinates
type Field struct {
	Table *PermutationTable

	// FreqX is kept below FreqY so blobs stretch horizontally
	FreqX float64
	FreqY float64
}

// NewField binds a table to base frequencies
func NewField(table *PermutationTable, freqX, freqY float64) Field {
	return Field{Table: table, FreqX: freqX, FreqY: freqY}
}

// FBM sums three octaves at f, f*phi^2, f*phi^4 with normalized weights
// Result is in [0,1], deterministic for a fixed table and coordinates
func (f Field) FBM(col, row int) float64 {
	return f.At(float64(col), float64(row))
}

// At is FBM over continuous coordinates
func (f Field) At(x, y float64) float64 {
	sum := 0.0
	scale := 1.0
	for o := 0; o < Octaves; o++ {
		shift := float64(o) * octaveShift
		sum += OctaveWeights[o] * f.Table.Sample(x*f.FreqX*scale+shift, y*f.FreqY*scale+shift)
		scale *= Lacunarity
	}
	// Guard float accumulation just past the ends
	return math.Min(1, math.Max(0, sum))
}
