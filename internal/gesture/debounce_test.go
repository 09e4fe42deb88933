package gesture

import (
	"testing"
	"time"
)

// fakeClock drives a Debouncer deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestDebouncer(cooldown time.Duration) (*Debouncer, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	d := NewDebouncer(cooldown)
	d.now = clock.now
	return d, clock
}

func ev(c Class) *Event {
	return &Event{Class: c, Name: c.String(), Confidence: 0.9}
}

func TestDebouncer_FirstEventPasses(t *testing.T) {
	d, _ := newTestDebouncer(time.Second)

	if !d.Observe(ev(WriteStart)) {
		t.Error("expected first event to pass")
	}
}

func TestDebouncer_HeldPoseEmitsOncePerCooldown(t *testing.T) {
	d, clock := newTestDebouncer(time.Second)

	emitted := 0
	// Same pose every 100ms for 950ms: only the first firing passes
	for i := 0; i < 10; i++ {
		if d.Observe(ev(Erase)) {
			emitted++
		}
		clock.advance(100 * time.Millisecond)
	}
	if emitted != 1 {
		t.Errorf("expected 1 emission within cooldown, got %d", emitted)
	}

	// Holding past the cooldown emits exactly one more
	if !d.Observe(ev(Erase)) {
		t.Error("expected emission after cooldown elapsed")
	}
	if d.Observe(ev(Erase)) {
		t.Error("expected suppression immediately after re-emission")
	}
}

func TestDebouncer_PoseSwitchIsImmediate(t *testing.T) {
	d, clock := newTestDebouncer(time.Second)

	d.Observe(ev(WriteStart))
	clock.advance(50 * time.Millisecond)

	// Different gesture passes without waiting for cooldown
	if !d.Observe(ev(WriteStop)) {
		t.Error("expected immediate emission on pose switch")
	}

	// Switching back is likewise immediate
	clock.advance(50 * time.Millisecond)
	if !d.Observe(ev(WriteStart)) {
		t.Error("expected immediate emission on switch back")
	}
}

func TestDebouncer_HoldEmitsOncePerInterval(t *testing.T) {
	d, clock := newTestDebouncer(time.Second)

	emitted := 0
	// Hold the same pose for 3.5s at 10 observations per second
	for i := 0; i < 35; i++ {
		if d.Observe(ev(Save)) {
			emitted++
		}
		clock.advance(100 * time.Millisecond)
	}

	// t=0, t=1s, t=2s, t=3s
	if emitted != 4 {
		t.Errorf("expected 4 emissions over 3.5s hold, got %d", emitted)
	}
}

func TestDebouncer_NilEvent(t *testing.T) {
	d, _ := newTestDebouncer(time.Second)

	if d.Observe(nil) {
		t.Error("expected nil event to be discarded")
	}
}

func TestDebouncer_Last(t *testing.T) {
	d, _ := newTestDebouncer(time.Second)

	if _, ok := d.Last(); ok {
		t.Error("expected no last gesture before first emission")
	}

	d.Observe(ev(Pan))
	last, ok := d.Last()
	if !ok || last != Pan {
		t.Errorf("Last() = %v, %v, want Pan, true", last, ok)
	}

	d.Reset()
	if _, ok := d.Last(); ok {
		t.Error("expected no last gesture after Reset")
	}
}
