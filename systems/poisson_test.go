package systems

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpDelayBounds(t *testing.T) {
	mean := 15 * time.Second
	assert.Equal(t, time.Duration(0), ExpDelay(0, mean))
	assert.Equal(t, time.Duration(0), ExpDelay(-1, mean))
	assert.Equal(t, time.Duration(0), ExpDelay(math.NaN(), mean))
	assert.Greater(t, ExpDelay(0.999999, mean), 100*time.Second)
	assert.Greater(t, ExpDelay(1, mean), time.Duration(0), "u=1 must not produce +Inf or a negative delay")

	// Median of the exponential is mean*ln2
	assert.InDelta(t, float64(mean)*math.Ln2, float64(ExpDelay(0.5, mean)), float64(time.Microsecond))
}

func TestExpDelayMonotonic(t *testing.T) {
	prev := time.Duration(-1)
	for u := 0.0; u < 1; u += 0.01 {
		d := ExpDelay(u, 15*time.Second)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestExpDelayDistribution(t *testing.T) {
	const n = 10000
	mean := 15 * time.Second
	r := seeded(99)

	samples := make([]float64, n)
	sum := 0.0
	for i := range samples {
		d := ExpDelay(r.Float64(), mean).Seconds()
		samples[i] = d
		sum += d
	}

	avg := sum / n
	assert.InDelta(t, 15.0, avg, 15.0*0.05, "sample mean")

	// Kolmogorov-Smirnov against the exponential CDF
	sort.Float64s(samples)
	ks := 0.0
	for i, x := range samples {
		cdf := 1 - math.Exp(-x/15.0)
		lo := cdf - float64(i)/n
		hi := float64(i+1)/n - cdf
		ks = math.Max(ks, math.Max(lo, hi))
	}
	critical := 1.95 / math.Sqrt(n) // alpha = 0.001
	assert.Less(t, ks, critical, "KS statistic")
}
