package animation

import "math"

// Curve maps linear progress t in [0, 1] to eased progress.
// Every curve returns 0 at t=0 and 1 at t=1.
type Curve func(t float64) float64

// Linear returns linear progress (no easing).
func Linear(t float64) float64 {
	return clampUnit(t)
}

// EaseOutCubic starts fast and decelerates. Scroll settles use it so the
// handoff from a fling does not jerk.
func EaseOutCubic(t float64) float64 {
	t = clampUnit(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// EaseInOutCubic starts and ends slowly.
func EaseInOutCubic(t float64) float64 {
	t = clampUnit(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Decelerate is a quadratic ease-out.
func Decelerate(t float64) float64 {
	t = clampUnit(t)
	return 1 - (1-t)*(1-t)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
