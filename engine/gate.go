package engine

import (
	"strings"

	"github.com/lixenwraith/camo/constants"
)

// AccessibilityGate decides once, at construction, whether the layer animates
type AccessibilityGate struct {
	reducedMotion bool
	staticOnly    bool
}

// NewAccessibilityGate evaluates the reduced-motion signal and the static variant
func NewAccessibilityGate(reducedMotion, staticOnly bool) AccessibilityGate {
	return AccessibilityGate{reducedMotion: reducedMotion, staticOnly: staticOnly}
}

// Animated is false when either reduced motion or the static variant is active
func (g AccessibilityGate) Animated() bool {
	return !g.reducedMotion && !g.staticOnly
}

func (g AccessibilityGate) ReducedMotion() bool {
	return g.reducedMotion
}

// StaticOpacity is the fixed container opacity when not animated
func (g AccessibilityGate) StaticOpacity(target float64) float64 {
	if g.reducedMotion {
		return constants.ReducedMotionOpacity
	}
	return target
}

// ReducedMotionFromEnv reads CAMO_REDUCED_MOTION and NO_MOTION
// An absent or unrecognized value means full animation
func ReducedMotionFromEnv(getenv func(string) string) bool {
	if truthy(getenv("CAMO_REDUCED_MOTION")) {
		return true
	}
	return truthy(getenv("NO_MOTION"))
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "reduce":
		return true
	}
	return false
}
