package testing

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/kit/pkg/animation"
	kiterrors "github.com/go-drift/kit/pkg/errors"
)

// DefaultFrameInterval is the frame duration used by Pump (60fps).
const DefaultFrameInterval = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: scheduler did not settle")

// Driver steps an [animation.Scheduler] against a [FakeClock].
type Driver struct {
	Clock         *FakeClock
	Scheduler     *animation.Scheduler
	FrameInterval time.Duration

	frames int
}

// NewDriver returns a driver with a fresh fake clock and scheduler.
func NewDriver() *Driver {
	clk := NewFakeClock()
	return &Driver{
		Clock:         clk,
		Scheduler:     animation.NewScheduler(clk),
		FrameInterval: DefaultFrameInterval,
	}
}

// NewDriverWithT returns a driver whose scheduler is drained when the test ends.
func NewDriverWithT(t testing.TB) *Driver {
	d := NewDriver()
	t.Cleanup(func() {
		_ = d.PumpAndSettle(10 * time.Second)
	})
	return d
}

// Pump advances the clock by one frame and steps the scheduler.
func (d *Driver) Pump() {
	d.Clock.Advance(d.FrameInterval)
	d.Scheduler.Step()
	d.frames++
}

// Advance pumps whole frames until at least dur has elapsed.
func (d *Driver) Advance(dur time.Duration) {
	for elapsed := time.Duration(0); elapsed < dur; elapsed += d.FrameInterval {
		d.Pump()
	}
}

// PumpAndSettle pumps frames until no ticker is active or timeout elapses.
// Returns ErrSettleTimeout if the scheduler does not settle within timeout.
func (d *Driver) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for d.Scheduler.HasActiveTickers() {
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		d.Pump()
		elapsed += d.FrameInterval
	}
	return nil
}

// Frames returns the number of frames pumped so far.
func (d *Driver) Frames() int {
	return d.frames
}

// ErrorRecorder is an error handler that keeps every report.
type ErrorRecorder struct {
	mu     sync.Mutex
	errs   []*kiterrors.KitError
	panics []*kiterrors.PanicError
}

// CaptureErrors installs an ErrorRecorder as the global error handler until
// the test ends.
func CaptureErrors(t testing.TB) *ErrorRecorder {
	rec := &ErrorRecorder{}
	prev := kiterrors.SetHandler(rec)
	t.Cleanup(func() { kiterrors.SetHandler(prev) })
	return rec
}

// HandleError records err.
func (r *ErrorRecorder) HandleError(err *kiterrors.KitError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// HandlePanic records err.
func (r *ErrorRecorder) HandlePanic(err *kiterrors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

// Errors returns the recorded errors.
func (r *ErrorRecorder) Errors() []*kiterrors.KitError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*kiterrors.KitError(nil), r.errs...)
}

// Panics returns the recorded panics.
func (r *ErrorRecorder) Panics() []*kiterrors.PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*kiterrors.PanicError(nil), r.panics...)
}

// CountKind returns how many recorded errors have the given kind.
func (r *ErrorRecorder) CountKind(kind kiterrors.ErrorKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, err := range r.errs {
		if err.Kind == kind {
			n++
		}
	}
	return n
}
