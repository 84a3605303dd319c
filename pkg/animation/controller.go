package animation

import (
	"fmt"
	"time"
)

// Status represents the current state of a [Controller].
type Status int

const (
	// StatusIdle means no animation is running.
	StatusIdle Status = iota
	// StatusForward means the value is moving toward a larger target.
	StatusForward
	// StatusReverse means the value is moving toward a smaller target.
	StatusReverse
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusForward:
		return "forward"
	case StatusReverse:
		return "reverse"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Controller drives a value toward a target over Duration.
//
// Each AnimateTo call returns a [Job]. A new AnimateTo cancels and joins the
// previous job before it starts, so two runs never compete for Value.
// Always call Dispose when done.
type Controller struct {
	// Value is the current animation value.
	Value float64

	// Duration is the length of each run.
	Duration time.Duration

	// Curve transforms linear progress (optional).
	Curve Curve

	scheduler       *Scheduler
	status          Status
	ticker          *Ticker
	job             *Job
	target          float64
	startValue      float64
	listeners       map[int]func()
	statusListeners map[int]func(Status)
	nextListenerID  int
}

// NewController creates a controller stepped by s.
func NewController(s *Scheduler, duration time.Duration) *Controller {
	return &Controller{
		Duration:        duration,
		Curve:           Linear,
		scheduler:       s,
		listeners:       make(map[int]func()),
		statusListeners: make(map[int]func(Status)),
	}
}

// AnimateTo animates from the current value to target.
func (c *Controller) AnimateTo(target float64) *Job {
	CancelAndJoin(c.job)

	c.target = target
	c.startValue = c.Value
	if target >= c.Value {
		c.setStatus(StatusForward)
	} else {
		c.setStatus(StatusReverse)
	}

	job := NewJob()
	job.OnCancel(func() {
		c.stopTicker()
		c.setStatus(StatusIdle)
	})
	c.job = job

	c.ticker = c.scheduler.NewTicker(c.tick)
	c.ticker.Start()
	return job
}

func (c *Controller) tick(elapsed time.Duration) {
	job := c.job
	progress := 1.0
	if c.Duration > 0 {
		progress = float64(elapsed) / float64(c.Duration)
		if progress > 1 {
			progress = 1
		}
	}

	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	if progress >= 1 {
		eased = 1
	}
	c.Value = c.startValue + (c.target-c.startValue)*eased
	c.notifyListeners()
	if c.job != job {
		// A listener started a new run.
		return
	}

	if progress >= 1 {
		c.stopTicker()
		c.job = nil
		c.setStatus(StatusIdle)
		job.Complete()
	}
}

func (c *Controller) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Stop cancels the running job, leaving Value where it is.
func (c *Controller) Stop() {
	job := c.job
	c.job = nil
	CancelAndJoin(job)
}

// Status returns the current status.
func (c *Controller) Status() Status {
	return c.status
}

// IsAnimating returns true if a run is in progress.
func (c *Controller) IsAnimating() bool {
	return c.status != StatusIdle
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (c *Controller) AddListener(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

// AddStatusListener adds a callback that fires whenever the status changes.
// Returns an unsubscribe function.
func (c *Controller) AddStatusListener(fn func(Status)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.statusListeners[id] = fn
	return func() {
		delete(c.statusListeners, id)
	}
}

func (c *Controller) setStatus(status Status) {
	if c.status == status {
		return
	}
	c.status = status
	for _, listener := range c.statusListeners {
		listener(status)
	}
}

func (c *Controller) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}

// Dispose stops the controller and drops its listeners.
func (c *Controller) Dispose() {
	c.Stop()
	c.listeners = map[int]func(){}
	c.statusListeners = map[int]func(Status){}
}
