package animation

import "time"

// Debouncer runs the most recently triggered callback once Delay has passed
// without a new trigger. Each Trigger resets the timer and replaces the
// pending callback; callbacks are never queued.
//
// The timer is a [Ticker], so the callback runs inside Scheduler.Step on the
// UI thread.
type Debouncer struct {
	// Delay is the quiet period required before the callback runs.
	Delay time.Duration

	scheduler *Scheduler
	ticker    *Ticker
	deadline  time.Time
	pending   func()
}

// NewDebouncer creates a debouncer stepped by s.
func NewDebouncer(s *Scheduler, delay time.Duration) *Debouncer {
	d := &Debouncer{Delay: delay, scheduler: s}
	d.ticker = s.NewTicker(func(time.Duration) { d.poll() })
	return d
}

// Trigger schedules fn, cancelling any pending callback.
func (d *Debouncer) Trigger(fn func()) {
	d.pending = fn
	d.deadline = d.scheduler.Now().Add(d.Delay)
	d.ticker.Start()
}

// Pending reports whether a callback is waiting to run.
func (d *Debouncer) Pending() bool {
	return d.pending != nil
}

// Flush runs the pending callback immediately.
func (d *Debouncer) Flush() {
	fn := d.pending
	d.pending = nil
	d.ticker.Stop()
	if fn != nil {
		fn()
	}
}

// Cancel drops the pending callback.
func (d *Debouncer) Cancel() {
	d.pending = nil
	d.ticker.Stop()
}

func (d *Debouncer) poll() {
	if d.scheduler.Now().Before(d.deadline) {
		return
	}
	d.Flush()
}
