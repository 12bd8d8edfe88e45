package systems

import "math"

// Power2InOut is the quadratic ease-in-out curve, t in [0,1]
func Power2InOut(t float64) float64 {
	t = clampUnit(t)
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// SineInOut eases with half a cosine period, t in [0,1]
func SineInOut(t float64) float64 {
	t = clampUnit(t)
	return (1 - math.Cos(math.Pi*t)) / 2
}

func clampUnit(t float64) float64 {
	if t < 0 || t != t {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
