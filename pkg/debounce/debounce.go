// Package debounce collapses rapid repeated triggers into one effective
// action: each trigger cancels the pending one and schedules anew, so only
// the last trigger before the delay elapses runs. Last-write-wins, not
// throttling.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules at most one pending function at a time.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a debouncer with the given delay. A non-positive delay runs
// triggers immediately.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger cancels any pending function and schedules fn after the delay.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	if d.delay <= 0 {
		d.timer = nil
		fn()
		return
	}

	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending function, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
