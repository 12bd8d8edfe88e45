package grid

import "sort"

// Equalize replaces values with their rank quantiles (r+0.5)/n
// fBm is bell-shaped, so thresholds tuned for a uniform input would starve the
// outer tokens; ranking makes the palette shares hold for any grid size.
// Ties keep index order, so the mapping is deterministic.
func Equalize(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	for rank, idx := range order {
		out[idx] = (float64(rank) + 0.5) / float64(n)
	}
	return out
}
