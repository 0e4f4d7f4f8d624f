// Package timer provides the cancellable fire-once timer the fetch
// coordinator debounces input on. It is deliberately independent of any
// delivery or rendering lifecycle: owners start, restart and cancel it
// explicitly.
package timer

import (
	"sync"
	"time"
)

// Debouncer delays a callback until its interval has elapsed with no further
// Trigger calls. At most one callback is pending at a time; a new Trigger
// replaces the pending one outright.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	pending  *time.Timer
}

func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger (re)starts the timer. fn runs on its own goroutine once the
// interval elapses uninterrupted.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		// A Trigger or Cancel that raced the firing replaced or cleared
		// the pending timer; this firing is then stale.
		stale := d.pending != t
		if !stale {
			d.pending = nil
		}
		d.mu.Unlock()

		if !stale {
			fn()
		}
	})
	d.pending = t
}

// Cancel drops any pending callback. Returns true when a callback was
// actually pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return false
	}

	d.pending.Stop()
	d.pending = nil
	return true
}

// Pending reports whether a callback is scheduled and not yet fired.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
