package engine

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaiter_Duration(t *testing.T) {
	tests := []struct {
		name string
		min  time.Duration
		max  time.Duration
		rng  float64
		want time.Duration
	}{
		{name: "low end", min: 5 * time.Second, max: 10 * time.Second, rng: 0, want: 5 * time.Second},
		{name: "midpoint", min: 5 * time.Second, max: 10 * time.Second, rng: 0.5, want: 7500 * time.Millisecond},
		{name: "near high end", min: 5 * time.Second, max: 10 * time.Second, rng: 0.99, want: 9950 * time.Millisecond},
		{name: "equal bounds", min: 3 * time.Second, max: 3 * time.Second, rng: 0.7, want: 3 * time.Second},
		{name: "inverted bounds use min", min: 8 * time.Second, max: 2 * time.Second, rng: 0.4, want: 8 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWaiter(tt.min, tt.max)
			w.rng = func() float64 { return tt.rng }
			assert.Equal(t, tt.want, w.Duration())
		})
	}
}

func TestWaiter_DurationStaysInBounds(t *testing.T) {
	w := NewWaiter(5*time.Second, 10*time.Second)
	for range 100 {
		d := w.Duration()
		assert.GreaterOrEqual(t, d, 5*time.Second)
		assert.Less(t, d, 10*time.Second)
	}
}

func TestWaiter_WaitCompletes(t *testing.T) {
	w := NewWaiter(time.Millisecond, time.Millisecond)

	got := w.Wait(context.Background(), nil)
	assert.Equal(t, WaitCompleted, got)
}

func TestWaiter_WaitCancelledBySignal(t *testing.T) {
	w := NewWaiter(time.Hour, time.Hour)
	// Swap in a timer that never fires so the test cannot race the clock.
	w.newTimer = func(time.Duration) *time.Timer { return time.NewTimer(time.Hour) }

	interrupts := make(chan os.Signal, 1)
	interrupts <- os.Interrupt

	got := w.Wait(context.Background(), interrupts)
	assert.Equal(t, WaitCancelled, got)
}

func TestWaiter_WaitCancelledByContext(t *testing.T) {
	w := NewWaiter(time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := w.Wait(ctx, nil)
	assert.Equal(t, WaitCancelled, got)
}
