package scroll

import "time"

// velocityHorizon bounds the samples used for an estimate.
const velocityHorizon = 100 * time.Millisecond

type velocitySample struct {
	at       time.Time
	position float64
}

// VelocityTracker estimates pointer velocity from drag deltas.
type VelocityTracker struct {
	samples  []velocitySample
	position float64
}

// Reset clears all samples.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
	v.position = 0
}

// AddDelta records a pointer movement of delta pixels at time at.
func (v *VelocityTracker) AddDelta(at time.Time, delta float64) {
	v.position += delta
	v.samples = append(v.samples, velocitySample{at: at, position: v.position})
	// Keep the slice bounded; the estimate only looks at the horizon.
	if len(v.samples) > 32 {
		v.samples = append(v.samples[:0], v.samples[len(v.samples)-32:]...)
	}
}

// Velocity returns pixels per second over the samples within the horizon
// ending at the newest sample. Fewer than two samples yield zero.
func (v *VelocityTracker) Velocity() float64 {
	if len(v.samples) < 2 {
		return 0
	}
	newest := v.samples[len(v.samples)-1]
	oldest := newest
	for i := len(v.samples) - 2; i >= 0; i-- {
		if newest.at.Sub(v.samples[i].at) > velocityHorizon {
			break
		}
		oldest = v.samples[i]
	}
	dt := newest.at.Sub(oldest.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (newest.position - oldest.position) / dt
}
