package scroll

import (
	"math"
	"time"
)

// Physics determines how user input and flings move a [Position].
type Physics interface {
	// ApplyPhysicsToUserOffset adjusts a drag delta before it is applied.
	ApplyPhysicsToUserOffset(position *Position, delta float64) float64
	// ProjectFling returns how far a fling starting at velocity (pixels per
	// second) travels and how long it takes to come to rest.
	ProjectFling(velocity float64) (distance float64, duration time.Duration)
}

// ClampingPhysics stops at the extents and decelerates flings with a
// velocity-dependent friction (Android-like).
type ClampingPhysics struct{}

// ApplyPhysicsToUserOffset returns the raw delta.
func (ClampingPhysics) ApplyPhysicsToUserOffset(_ *Position, delta float64) float64 {
	return delta
}

// ProjectFling integrates the default friction model.
func (ClampingPhysics) ProjectFling(velocity float64) (float64, time.Duration) {
	return FrictionPhysics{Base: 2200, Proportional: 0.385}.ProjectFling(velocity)
}

// FrictionPhysics decelerates at Base + Proportional*|v| pixels/s².
// Sensitivity scales drag deltas; zero means 1.
type FrictionPhysics struct {
	Base         float64
	Proportional float64
	Sensitivity  float64
}

// ApplyPhysicsToUserOffset scales delta by Sensitivity.
func (f FrictionPhysics) ApplyPhysicsToUserOffset(_ *Position, delta float64) float64 {
	if f.Sensitivity == 0 {
		return delta
	}
	return delta * f.Sensitivity
}

// ProjectFling steps the friction model at 120Hz until the velocity drops
// below the rest threshold.
func (f FrictionPhysics) ProjectFling(velocity float64) (float64, time.Duration) {
	const (
		dt       = 1.0 / 120
		maxSteps = 120 * 10
	)
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		return 0, 0
	}
	var distance float64
	steps := 0
	for math.Abs(velocity) >= restVelocity && steps < maxSteps {
		decel := f.Base + f.Proportional*math.Abs(velocity)
		if velocity > 0 {
			velocity = math.Max(0, velocity-decel*dt)
		} else {
			velocity = math.Min(0, velocity+decel*dt)
		}
		distance += velocity * dt
		steps++
	}
	return distance, time.Duration(float64(steps) * dt * float64(time.Second))
}

// restVelocity is the speed below which a fling is considered at rest.
const restVelocity = 5

// NormalizeVelocity drops non-finite values, damps by 10% and caps the
// magnitude relative to the viewport.
func NormalizeVelocity(velocity, viewportExtent float64) float64 {
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		return 0
	}
	velocity *= 0.9
	if viewportExtent <= 0 {
		viewportExtent = 600
	}
	maxAbs := clamp(viewportExtent*5.4, 1080, 4500)
	return clamp(velocity, -maxAbs, maxAbs)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
