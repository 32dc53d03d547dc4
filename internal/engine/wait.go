package engine

import (
	"context"
	"math/rand"
	"os"
	"time"
)

// WaitResult is the outcome of a cancellable timed wait.
type WaitResult int

const (
	WaitCompleted WaitResult = iota
	WaitCancelled
)

// Waiter performs a randomized wait, uniformly chosen between Min and Max.
// The wait is the deliberate backpressure in front of catalog uploads; no
// other call is issued while it runs.
type Waiter struct {
	Min time.Duration
	Max time.Duration

	// rng and newTimer are injectable for tests.
	rng      func() float64
	newTimer func(time.Duration) *time.Timer
}

// NewWaiter creates a Waiter with the given bounds.
func NewWaiter(min, max time.Duration) *Waiter {
	return &Waiter{
		Min:      min,
		Max:      max,
		rng:      rand.Float64,
		newTimer: time.NewTimer,
	}
}

// Duration picks the randomized wait duration for one call.
func (w *Waiter) Duration() time.Duration {
	if w.Max <= w.Min {
		return w.Min
	}
	return w.Min + time.Duration(w.rng()*float64(w.Max-w.Min))
}

// Wait blocks for a randomized duration. It returns WaitCancelled when an
// interrupt arrives on cancel or the context ends before the timer fires.
func (w *Waiter) Wait(ctx context.Context, cancel <-chan os.Signal) WaitResult {
	timer := w.newTimer(w.Duration())
	defer timer.Stop()

	select {
	case <-timer.C:
		return WaitCompleted
	case <-cancel:
		return WaitCancelled
	case <-ctx.Done():
		return WaitCancelled
	}
}
