package systems

import (
	"math"
	"time"
)

// ExpDelay maps a uniform draw u in [0,1) to an exponential inter-arrival delay
// delay = -ln(1-u) * mean, the gap between events of a Poisson process with rate 1/mean
func ExpDelay(u float64, mean time.Duration) time.Duration {
	if u < 0 || u != u {
		u = 0
	}
	if u >= 1 {
		u = math.Nextafter(1, 0)
	}
	return time.Duration(-math.Log1p(-u) * float64(mean))
}
