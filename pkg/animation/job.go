package animation

import (
	"context"
	"errors"
)

// ErrCancelled is returned by [Job.Wait] for a job that was cancelled.
var ErrCancelled = errors.New("animation: job cancelled")

type jobState int

const (
	jobRunning jobState = iota
	jobCompleted
	jobCancelled
)

// Job is a cancellable unit of cooperative, frame-driven work such as a
// scroll animation or a fling.
//
// Cancellation unwinds synchronously: Cancel runs the registered unwind
// callbacks and closes Done before returning, so a caller that cancels and
// then joins never observes a half-stopped job. A nil *Job behaves as an
// already finished job.
type Job struct {
	state     jobState
	unwinding bool
	done      chan struct{}
	unwinds   []func()
}

// NewJob returns a running job.
func NewJob() *Job {
	return &Job{done: make(chan struct{})}
}

// OnCancel registers fn to run when the job is cancelled.
// It has no effect on a finished job.
func (j *Job) OnCancel(fn func()) {
	if j == nil || j.state != jobRunning || fn == nil {
		return
	}
	j.unwinds = append(j.unwinds, fn)
}

// Cancel requests cancellation and unwinds the job.
// It reports whether the job was still running.
func (j *Job) Cancel() bool {
	if j == nil || j.state != jobRunning {
		return false
	}
	j.state = jobCancelled
	unwinds := j.unwinds
	j.unwinds = nil
	j.unwinding = true
	for i := len(unwinds) - 1; i >= 0; i-- {
		unwinds[i]()
	}
	j.unwinding = false
	close(j.done)
	return true
}

// Complete marks the job finished.
// It reports whether the job was still running.
func (j *Job) Complete() bool {
	if j == nil || j.state != jobRunning {
		return false
	}
	j.state = jobCompleted
	j.unwinds = nil
	close(j.done)
	return true
}

// Done is closed once the job has completed or been cancelled.
func (j *Job) Done() <-chan struct{} {
	if j == nil {
		return closedChan
	}
	return j.done
}

// Wait blocks until the job finishes. It returns ErrCancelled if the job was
// cancelled, or ctx.Err() if ctx ends first.
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if j.Cancelled() {
		return ErrCancelled
	}
	return nil
}

// Active reports whether the job is still running.
func (j *Job) Active() bool {
	return j != nil && j.state == jobRunning
}

// Cancelled reports whether the job was cancelled.
func (j *Job) Cancelled() bool {
	return j != nil && j.state == jobCancelled
}

// Completed reports whether the job ran to completion.
func (j *Job) Completed() bool {
	return j != nil && j.state == jobCompleted
}

// CancelAndJoin cancels j and waits for it to unwind. Called from one of
// j's own unwind callbacks it returns without waiting.
func CancelAndJoin(j *Job) {
	if j == nil {
		return
	}
	j.Cancel()
	if j.unwinding {
		return
	}
	<-j.Done()
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()
