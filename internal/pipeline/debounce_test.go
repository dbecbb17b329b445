package pipeline

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesTriggers(t *testing.T) {
	var count int32
	d := NewDebouncer(50 * time.Millisecond)
	t.Cleanup(d.Cancel)

	fn := func() { atomic.AddInt32(&count, 1) }
	d.Trigger(fn)
	d.Trigger(fn)
	d.Trigger(fn)

	time.Sleep(20 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 0 {
		t.Errorf("fired too early: got %d, want 0", got)
	}

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 1 {
		t.Errorf("should have fired once: got %d, want 1", got)
	}
}

func TestDebouncer_ResetsWindowOnTrigger(t *testing.T) {
	var count int32
	d := NewDebouncer(50 * time.Millisecond)
	t.Cleanup(d.Cancel)

	fn := func() { atomic.AddInt32(&count, 1) }

	d.Trigger(fn)
	time.Sleep(20 * time.Millisecond)

	d.Trigger(fn)
	time.Sleep(20 * time.Millisecond)

	if got := atomic.LoadInt32(&count); got != 0 {
		t.Errorf("fired before the re-armed window elapsed: got %d, want 0", got)
	}

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 1 {
		t.Errorf("should have fired once after the final window: got %d, want 1", got)
	}
}

func TestDebouncer_LastTriggerWins(t *testing.T) {
	var fired atomic.Value
	d := NewDebouncer(30 * time.Millisecond)
	t.Cleanup(d.Cancel)

	d.Trigger(func() { fired.Store("first") })
	d.Trigger(func() { fired.Store("second") })

	time.Sleep(80 * time.Millisecond)
	if got := fired.Load(); got != "second" {
		t.Errorf("fired = %v, want %q", got, "second")
	}
}

func TestDebouncer_CancelStopsPending(t *testing.T) {
	var count int32
	d := NewDebouncer(30 * time.Millisecond)

	d.Trigger(func() { atomic.AddInt32(&count, 1) })
	d.Cancel()

	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 0 {
		t.Errorf("cancelled trigger still fired: got %d, want 0", got)
	}
}

func TestDebouncer_CancelWithNothingPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	d.Cancel()
	d.Cancel()
}

func TestDebouncer_UsableAfterCancel(t *testing.T) {
	var count int32
	d := NewDebouncer(20 * time.Millisecond)
	t.Cleanup(d.Cancel)

	d.Trigger(func() { atomic.AddInt32(&count, 1) })
	d.Cancel()
	d.Trigger(func() { atomic.AddInt32(&count, 1) })

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 1 {
		t.Errorf("got %d fires, want 1", got)
	}
}
