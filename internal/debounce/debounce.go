// Package debounce coalesces rapid value updates into a single delayed
// trigger.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used for search input.
const DefaultDelay = 500 * time.Millisecond

// Debouncer forwards the latest pushed value once no new value has arrived
// for the configured delay. At most one timer is pending at any time.
type Debouncer struct {
	delay time.Duration
	fire  func(string)

	// firing is read-held while fire runs so Stop can wait it out.
	firing sync.RWMutex

	mu      sync.Mutex
	timer   *time.Timer
	value   string
	gen     uint64 // bumped on every Push/Stop/Flush; stale timers compare against it
	pending bool
	stopped bool
}

// New creates a Debouncer that calls fire with the settled value. A
// non-positive delay falls back to DefaultDelay. fire must not call Stop.
func New(delay time.Duration, fire func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fire: fire}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Push cancels any pending timer and schedules value to fire after the
// delay. Pushes after Stop are ignored.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.value = value
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() { d.expire(gen) })
}

func (d *Debouncer) expire(gen uint64) {
	d.firing.RLock()
	defer d.firing.RUnlock()

	d.mu.Lock()
	// A timer that lost the race with Push/Stop must not fire.
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	value := d.value
	d.timer = nil
	d.pending = false
	d.mu.Unlock()

	d.fire(value)
}

// Flush fires the pending value immediately, if there is one, and reports
// whether it did.
func (d *Debouncer) Flush() bool {
	d.firing.RLock()
	defer d.firing.RUnlock()

	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	value := d.value
	d.pending = false
	d.mu.Unlock()

	d.fire(value)
	return true
}

// Pending reports whether a timer is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any pending timer and waits for a fire already in progress.
// Once Stop returns fire is not called again and later pushes are ignored.
// Stop is idempotent.
func (d *Debouncer) Stop() {
	d.firing.Lock()
	defer d.firing.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	d.stopped = true
}
