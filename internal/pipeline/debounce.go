package pipeline

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into a single invocation after a quiet
// window. At most one invocation is pending at any time: each Trigger cancels
// and replaces the previous one, so only the trailing call in a burst fires.
// Thread-safe for concurrent triggers.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	seq      uint64 // invalidates stale timer fires
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Trigger schedules fn to run after the quiet window. A later Trigger
// supersedes fn before it fires. The function to run is passed here, not at
// construction, so callers bind current arguments at trigger time instead of
// relying on closures over mutable state.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.seq++
	currentSeq := d.seq

	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// Only fire if this is still the latest trigger.
		if d.seq != currentSeq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock() // release before calling fn; fn may re-trigger

		fn()
	})
}

// Cancel stops any pending invocation. Safe to call with nothing pending.
// Does not wait for an already-executing invocation to finish.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++ // invalidate a timer that already fired but has not run yet
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
