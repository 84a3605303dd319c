// Package animation provides the frame-driven timing primitives used by
// kit components.
//
// # Core Components
//
//   - [Scheduler]: an explicit frame scheduler. The host calls Step once per
//     frame on the UI thread; every active [Ticker] is advanced from there.
//
//   - [Controller]: drives a float64 value toward a target over a duration
//     with an easing [Curve]. Each run is represented by a [Job].
//
//   - [Job]: a cancellable unit of cooperative work. Starting a new scroll
//     animation cancels and joins the previous job before it proceeds.
//
//   - [Debouncer]: a trailing timer that is reset, never queued, by each
//     new trigger.
//
// # Basic Usage
//
//	sched := animation.NewScheduler(nil)
//	ctrl := animation.NewController(sched, 300*time.Millisecond)
//	ctrl.Curve = animation.EaseOutCubic
//	ctrl.AddListener(func() { fmt.Println(ctrl.Value) })
//	job := ctrl.AnimateTo(1)
//
//	// once per frame, from the host loop
//	sched.Step()
//
// Nothing in this package starts goroutines. All callbacks run inside Step.
package animation

import (
	"slices"
	"sync"
	"time"
)

// Scheduler steps tickers once per frame.
//
// A Scheduler is owned by one UI thread. The mutex only protects the ticker
// list so a host may query HasActiveTickers from another goroutine.
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	tickers []*Ticker
}

// NewScheduler returns a scheduler reading time from clock.
// A nil clock means [SystemClock].
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// Now returns the current time from the scheduler's clock.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// NewTicker creates an inactive ticker bound to this scheduler.
func (s *Scheduler) NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{scheduler: s, callback: callback}
}

// Step advances all active tickers in registration order.
// This should be called once per frame from the host loop.
func (s *Scheduler) Step() {
	s.mu.Lock()
	if len(s.tickers) == 0 {
		s.mu.Unlock()
		return
	}
	// Copy so callbacks may start or stop tickers.
	tickers := slices.Clone(s.tickers)
	s.mu.Unlock()

	now := s.Now()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(now.Sub(ticker.start))
		}
	}
}

// HasActiveTickers returns true if any tickers are active.
func (s *Scheduler) HasActiveTickers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickers) > 0
}

func (s *Scheduler) register(t *Ticker) {
	s.mu.Lock()
	s.tickers = append(s.tickers, t)
	s.mu.Unlock()
}

func (s *Scheduler) unregister(t *Ticker) {
	s.mu.Lock()
	if i := slices.Index(s.tickers, t); i >= 0 {
		s.tickers = slices.Delete(s.tickers, i, i+1)
	}
	s.mu.Unlock()
}

// Ticker calls a callback on each frame while active.
//
// The callback receives the elapsed time since Start was called.
type Ticker struct {
	scheduler *Scheduler
	callback  func(elapsed time.Duration)
	isActive  bool
	start     time.Time
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = t.scheduler.Now()
	t.scheduler.register(t)
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.scheduler.unregister(t)
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return t.scheduler.Now().Sub(t.start)
}
