package gesture

import "time"

// Cooldown profiles. The interactive app uses the longer cooldown so a held
// pose does not re-fire while the user is still forming it; the broadcast
// service favors lower latency.
const (
	DefaultCooldown = 1 * time.Second
	ServiceCooldown = 500 * time.Millisecond
)

// Debouncer converts the per-frame stream of classifier outputs, which fire
// on every frame a pose is held, into discrete edge-triggered events.
//
// An event passes the debouncer when either the gesture differs from the
// previously emitted one (pose switches are immediate), or the same gesture
// has been held past the cooldown interval. Everything else is discarded.
type Debouncer struct {
	cooldown time.Duration
	last     Class
	lastAt   time.Time
	primed   bool

	now func() time.Time // overridable for tests
}

// NewDebouncer creates a Debouncer with the given cooldown.
// A cooldown <= 0 falls back to DefaultCooldown.
func NewDebouncer(cooldown time.Duration) *Debouncer {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Debouncer{
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Observe reports whether the event should be dispatched. The debouncer
// records every emitted event as the new reference for both the change
// detection and the cooldown clock.
func (d *Debouncer) Observe(ev *Event) bool {
	if ev == nil {
		return false
	}

	now := d.now()

	if !d.primed || ev.Class != d.last || now.Sub(d.lastAt) >= d.cooldown {
		d.primed = true
		d.last = ev.Class
		d.lastAt = now
		return true
	}

	return false
}

// Last returns the most recently emitted gesture class, and whether any
// event has been emitted yet. The whiteboard uses this to decide whether
// the pan gesture is still sustained.
func (d *Debouncer) Last() (Class, bool) {
	return d.last, d.primed
}

// Reset forgets the last emitted gesture, so the next observation always
// passes.
func (d *Debouncer) Reset() {
	d.primed = false
}
