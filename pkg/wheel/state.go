package wheel

import (
	"time"

	"github.com/go-drift/kit/pkg/animation"
	kiterrors "github.com/go-drift/kit/pkg/errors"
	"github.com/go-drift/kit/pkg/scroll"
)

// State is the scroll and settle state of one picker.
//
// It wraps a fixed-extent [scroll.Position]; the raw index, item extent
// and viewport extent are read from it on demand. The last-notified raw
// index is written only by the change dispatcher, by ResetToLogical and by
// restoration.
//
// State does not own the item list. Operations that need the item count
// take it as a parameter.
type State struct {
	initial         int
	infinite        bool
	lastNotifiedRaw int
	duration        time.Duration

	scheduler *animation.Scheduler
	position  *scroll.Position
	tracker   scroll.VelocityTracker
}

// NewState creates a state over n items whose selection starts at
// initialIndex. A restore snapshot with a matching Infinite flag overrides
// the starting raw index; a mismatched one is ignored. The restored index
// is clamped into the wheel's bounds before it is recorded as notified.
func NewState(s *animation.Scheduler, initialIndex, n int, opts Options) *State {
	opts = opts.withDefaults()
	st := &State{
		initial:   initialIndex,
		infinite:  opts.Infinite,
		duration:  opts.AnimationDuration,
		scheduler: s,
		position:  scroll.NewPosition(s, opts.ItemExtent, opts.Physics),
	}
	st.position.SetViewportExtent(opts.ViewportExtent)
	if opts.Infinite {
		st.position.SetExtents(0, maxInfiniteRaw)
	} else {
		st.SetItemCount(n)
	}

	raw := RawForLogical(initialIndex, opts.Infinite)
	if r := opts.Restore; r != nil && r.Infinite == opts.Infinite {
		raw = r.RawIndex
	}
	st.position.JumpTo(raw)
	st.lastNotifiedRaw = st.position.RawIndex()
	return st
}

// InitialIndex returns the logical index the state was created or last
// reset with.
func (s *State) InitialIndex() int { return s.initial }

// IsInfinite reports whether the wheel wraps.
func (s *State) IsInfinite() bool { return s.infinite }

// LastNotifiedRawIndex returns the raw index of the last accepted change.
func (s *State) LastNotifiedRawIndex() int { return s.lastNotifiedRaw }

// RawIndex returns the raw index of the item on the selection line.
func (s *State) RawIndex() int { return s.position.RawIndex() }

// ItemExtent returns the measured size of one item.
func (s *State) ItemExtent() float64 { return s.position.ItemExtent() }

// ViewportExtent returns the measured size of the viewport.
func (s *State) ViewportExtent() float64 { return s.position.ViewportExtent() }

// IsDragging reports whether a user drag is in progress.
func (s *State) IsDragging() bool { return s.position.IsDragging() }

// IsScrollInProgress reports whether a drag, fling or animation is running.
func (s *State) IsScrollInProgress() bool { return s.position.IsScrollInProgress() }

// Position exposes the underlying scroll position.
func (s *State) Position() *scroll.Position { return s.position }

// Snapshot returns the persisted form of the state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Infinite: s.infinite, RawIndex: s.position.RawIndex()}
}

// CurrentLogicalIndex maps the live raw index onto [0, n-1].
func (s *State) CurrentLogicalIndex(n int) (int, error) {
	return ToLogical(s.position.RawIndex(), s.infinite, n)
}

// LastNotifiedLogicalIndex maps the last-notified raw index onto [0, n-1].
func (s *State) LastNotifiedLogicalIndex(n int) (int, error) {
	return ToLogical(s.lastNotifiedRaw, s.infinite, n)
}

// SetItemCount bounds a non-infinite wheel to [0, n-1].
func (s *State) SetItemCount(n int) {
	if s.infinite {
		return
	}
	s.position.SetExtents(0, max(n-1, 0))
}

// SetLayout records measured item and viewport extents.
func (s *State) SetLayout(itemExtent, viewportExtent float64) {
	if itemExtent > 0 {
		s.position.SetItemExtent(itemExtent)
	}
	if viewportExtent > 0 {
		s.position.SetViewportExtent(viewportExtent)
	}
}

// rawTarget resolves the raw index to scroll to for a logical index.
func (s *State) rawTarget(index, n int) int {
	if s.infinite {
		return ToRawForTarget(s.position.RawIndex(), index, n)
	}
	return clampInt(index, 0, max(n-1, 0))
}

// ScrollToLogical jumps to index without animation.
func (s *State) ScrollToLogical(index, n int) {
	if !s.checkCount("wheel.State.ScrollToLogical", n) {
		return
	}
	s.position.JumpTo(s.rawTarget(index, n))
}

// AnimateToLogical scrolls smoothly to index, taking the shortest path
// under infinite wrap. Any running fling or animation is cancelled and
// joined first. The returned job completes at the settle point.
func (s *State) AnimateToLogical(index, n int) *animation.Job {
	if !s.checkCount("wheel.State.AnimateToLogical", n) {
		return nil
	}
	return s.animateToRaw(s.rawTarget(index, n))
}

func (s *State) animateToRaw(raw int) *animation.Job {
	return s.position.AnimateTo(raw, s.duration, animation.EaseInOutCubic)
}

// ResetToLogical marks index as already notified and animates to it, so
// the jump itself produces no change callback. Use it when the picker is
// reused for a different value.
func (s *State) ResetToLogical(index, n int) *animation.Job {
	if !s.checkCount("wheel.State.ResetToLogical", n) {
		return nil
	}
	raw := s.rawTarget(index, n)
	s.initial = index
	s.lastNotifiedRaw = raw
	return s.animateToRaw(raw)
}

// OnDragStart stops any fling, clears velocity tracking and marks the
// state as dragging.
func (s *State) OnDragStart() {
	s.tracker.Reset()
	s.position.BeginDrag()
}

// OnDrag applies a pointer delta. Positive deltas move the content toward
// the end of the screen, revealing smaller indices.
func (s *State) OnDrag(delta float64) {
	s.tracker.AddDelta(s.scheduler.Now(), delta)
	s.position.ApplyUserOffset(-delta)
}

// OnDragEnd hands the gesture to fling and snap with the given pointer
// velocity in pixels per second.
func (s *State) OnDragEnd(velocity float64) *animation.Job {
	return s.position.EndDrag(-velocity)
}

// Velocity returns the tracked pointer velocity of the current drag.
func (s *State) Velocity() float64 {
	return s.tracker.Velocity()
}

// checkCount guards the wrap arithmetic against an empty item list.
func (s *State) checkCount(op string, n int) bool {
	if n > 0 {
		return true
	}
	if s.infinite {
		kiterrors.Report(&kiterrors.KitError{Op: op, Kind: kiterrors.KindPrecondition, Err: ErrNoItems})
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
