// Package scroll provides a fixed-extent scroll position with drag, fling
// and snap-to-item behavior, driven by an [animation.Scheduler].
//
// A [Position] is expressed as a leading item index plus a pixel fraction
// into that item, not as one absolute pixel offset. Item indices may be very
// large (an infinite wheel starts around math.MaxInt/2) and a float64 pixel
// offset would lose precision there.
//
// Every programmatic move (AnimateTo, Fling, JumpTo) first cancels and joins
// the in-flight job, so a fling and an animation never compete for the same
// position.
package scroll

import (
	"math"
	"time"

	"github.com/go-drift/kit/pkg/animation"
)

const (
	// DefaultAnimateDuration is used by AnimateTo when duration is zero.
	DefaultAnimateDuration = 250 * time.Millisecond

	minSettleDuration = 80 * time.Millisecond
	maxSettleDuration = 1200 * time.Millisecond
)

// Position stores a fixed-extent scroll position and its extents.
type Position struct {
	scheduler      *animation.Scheduler
	physics        Physics
	itemExtent     float64
	viewportExtent float64

	index    int
	fraction float64
	minIndex int
	maxIndex int

	dragging bool
	job      *animation.Job

	listeners       listenerList[func()]
	settleListeners listenerList[func(raw int)]
}

// NewPosition creates a position at index 0 with unbounded extents.
// A nil physics means [ClampingPhysics].
func NewPosition(s *animation.Scheduler, itemExtent float64, physics Physics) *Position {
	if physics == nil {
		physics = ClampingPhysics{}
	}
	return &Position{
		scheduler:  s,
		physics:    physics,
		itemExtent: itemExtent,
		maxIndex:   math.MaxInt,
	}
}

// ItemExtent returns the main-axis size of one item.
func (p *Position) ItemExtent() float64 { return p.itemExtent }

// SetItemExtent updates the item size. The fraction is rescaled so the
// position keeps pointing at the same part of the current item.
func (p *Position) SetItemExtent(extent float64) {
	if extent == p.itemExtent {
		return
	}
	if p.itemExtent > 0 && extent > 0 {
		p.fraction = p.fraction / p.itemExtent * extent
	} else {
		p.fraction = 0
	}
	p.itemExtent = extent
	p.notify()
}

// ViewportExtent returns the main-axis size of the visible area.
func (p *Position) ViewportExtent() float64 { return p.viewportExtent }

// SetViewportExtent records the visible size; it only affects fling caps
// and layout, never the index.
func (p *Position) SetViewportExtent(extent float64) {
	if extent == p.viewportExtent {
		return
	}
	p.viewportExtent = extent
	p.notify()
}

// SetExtents updates the allowed index range and clamps the position.
func (p *Position) SetExtents(minIndex, maxIndex int) {
	if maxIndex < minIndex {
		maxIndex = minIndex
	}
	p.minIndex = minIndex
	p.maxIndex = maxIndex
	if p.clamp() {
		p.notify()
	}
}

// Extents returns the allowed index range.
func (p *Position) Extents() (minIndex, maxIndex int) {
	return p.minIndex, p.maxIndex
}

// Index returns the leading item index.
func (p *Position) Index() int { return p.index }

// Fraction returns the pixels scrolled past the leading item.
func (p *Position) Fraction() float64 { return p.fraction }

// RawIndex returns the item nearest to the selection line.
func (p *Position) RawIndex() int {
	if p.itemExtent > 0 && p.fraction >= p.itemExtent/2 && p.index < p.maxIndex {
		return p.index + 1
	}
	return p.index
}

// ItemOffset returns the pixel distance from the selection line to the
// center of item raw; negative values lie before it.
func (p *Position) ItemOffset(raw int) float64 {
	return float64(raw-p.index)*p.itemExtent - p.fraction
}

// IsDragging reports whether a drag is in progress.
func (p *Position) IsDragging() bool { return p.dragging }

// IsScrollInProgress reports whether a drag, fling or animation is running.
func (p *Position) IsScrollInProgress() bool {
	return p.dragging || p.job.Active()
}

// JumpTo moves to raw instantly without animation or a settle event.
func (p *Position) JumpTo(raw int) {
	p.cancelActivity()
	p.index = raw
	p.fraction = 0
	p.clamp()
	p.notify()
}

// BeginDrag stops any running fling or animation.
func (p *Position) BeginDrag() {
	p.cancelActivity()
	p.dragging = true
}

// ApplyUserOffset moves the position by delta pixels through the physics.
// Positive deltas move toward larger indices.
func (p *Position) ApplyUserOffset(delta float64) {
	p.cancelActivity()
	if p.physics != nil {
		delta = p.physics.ApplyPhysicsToUserOffset(p, delta)
	}
	if p.moveBy(delta) {
		p.notify()
	}
}

// EndDrag finishes a drag and flings with velocity (pixels per second in
// scroll direction). The returned job completes at the settle point.
func (p *Position) EndDrag(velocity float64) *animation.Job {
	p.dragging = false
	return p.Fling(velocity)
}

// CancelDrag finishes a drag without momentum and snaps to the nearest item.
func (p *Position) CancelDrag() *animation.Job {
	p.dragging = false
	return p.Fling(0)
}

// ProjectedIndex returns the item a fling with velocity would settle on.
func (p *Position) ProjectedIndex(velocity float64) int {
	target, _ := p.project(velocity)
	return target
}

func (p *Position) project(velocity float64) (int, time.Duration) {
	velocity = NormalizeVelocity(velocity, p.viewportExtent)
	if math.Abs(velocity) < restVelocity || p.itemExtent <= 0 {
		return p.RawIndex(), p.snapDuration(p.RawIndex())
	}
	distance, duration := p.physics.ProjectFling(velocity)
	total := p.fraction + distance
	steps := math.Round(total / p.itemExtent)
	target := p.clampIndex(p.index + int(steps))
	return target, duration
}

// Fling projects the fling's resting point, snaps it to the nearest item
// and animates there with a decelerating curve.
func (p *Position) Fling(velocity float64) *animation.Job {
	target, duration := p.project(velocity)
	duration = time.Duration(clamp(float64(duration), float64(minSettleDuration), float64(maxSettleDuration)))
	return p.AnimateTo(target, duration, animation.EaseOutCubic)
}

// AnimateTo animates to raw over duration. Any running fling or animation
// is cancelled and joined first. Settle listeners run when the returned job
// completes; a cancelled job never settles.
func (p *Position) AnimateTo(raw int, duration time.Duration, curve animation.Curve) *animation.Job {
	p.cancelActivity()
	raw = p.clampIndex(raw)
	if raw == p.index && p.fraction == 0 {
		job := animation.NewJob()
		job.Complete()
		p.settle()
		return job
	}
	if duration <= 0 {
		duration = DefaultAnimateDuration
	}
	if curve == nil {
		curve = animation.EaseInOutCubic
	}

	startIndex, startFraction := p.index, p.fraction
	distance := p.ItemOffset(raw)

	ctrl := animation.NewController(p.scheduler, duration)
	ctrl.Curve = curve
	ctrl.AddListener(func() {
		p.index, p.fraction = startIndex, startFraction
		p.moveBy(ctrl.Value)
		p.notify()
	})
	job := ctrl.AnimateTo(distance)
	p.job = job

	// Completion is observed from a second ticker stepped after the
	// controller's, which lands the position exactly on raw.
	var watch *animation.Ticker
	watch = p.scheduler.NewTicker(func(time.Duration) {
		if !job.Completed() {
			return
		}
		watch.Stop()
		if p.job != job {
			return
		}
		p.job = nil
		p.index, p.fraction = raw, 0
		p.clamp()
		p.notify()
		p.settle()
	})
	job.OnCancel(watch.Stop)
	watch.Start()
	return job
}

// AddListener registers a callback for every position change.
// Returns an unsubscribe function.
func (p *Position) AddListener(fn func()) func() {
	return p.listeners.add(fn)
}

// AddSettleListener registers a callback for the end of each fling or
// animation that lands on an item.
// Returns an unsubscribe function.
func (p *Position) AddSettleListener(fn func(raw int)) func() {
	return p.settleListeners.add(fn)
}

// Dispose cancels running work and drops listeners.
func (p *Position) Dispose() {
	p.cancelActivity()
	p.listeners = listenerList[func()]{}
	p.settleListeners = listenerList[func(raw int)]{}
}

func (p *Position) cancelActivity() {
	job := p.job
	p.job = nil
	animation.CancelAndJoin(job)
}

func (p *Position) snapDuration(target int) time.Duration {
	if p.itemExtent <= 0 {
		return minSettleDuration
	}
	frac := math.Abs(p.ItemOffset(target)) / p.itemExtent
	return minSettleDuration + time.Duration(frac*float64(2*minSettleDuration))
}

// moveBy shifts the position by delta pixels and reports whether it moved.
func (p *Position) moveBy(delta float64) bool {
	if p.itemExtent <= 0 || delta == 0 || math.IsNaN(delta) {
		return false
	}
	beforeIndex, beforeFraction := p.index, p.fraction
	total := p.fraction + delta
	steps := math.Floor(total / p.itemExtent)
	p.index += int(steps)
	p.fraction = total - steps*p.itemExtent
	if p.fraction >= p.itemExtent {
		p.index++
		p.fraction = 0
	}
	p.clamp()
	return p.index != beforeIndex || p.fraction != beforeFraction
}

func (p *Position) clampIndex(raw int) int {
	if raw < p.minIndex {
		return p.minIndex
	}
	if raw > p.maxIndex {
		return p.maxIndex
	}
	return raw
}

// clamp pins the position inside the extents and reports a change.
func (p *Position) clamp() bool {
	switch {
	case p.index < p.minIndex:
		p.index, p.fraction = p.minIndex, 0
		return true
	case p.index > p.maxIndex, p.index == p.maxIndex && p.fraction > 0:
		p.index, p.fraction = p.maxIndex, 0
		return true
	}
	return false
}

func (p *Position) notify() {
	for _, fn := range p.listeners.snapshot() {
		fn()
	}
}

func (p *Position) settle() {
	raw := p.RawIndex()
	for _, fn := range p.settleListeners.snapshot() {
		fn(raw)
	}
}
