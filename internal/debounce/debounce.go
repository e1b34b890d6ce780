// Package debounce coalesces rapid repeated triggers so only the most
// recent one acts, after a quiet period.
package debounce

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs only the latest of a burst of triggers. The zero delay
// runs every trigger immediately.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// New creates a debouncer with the given quiet period.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn to run after the delay, cancelling any pending
// function scheduled by an earlier Trigger.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		latest := d.gen == gen
		d.mu.Unlock()
		if latest {
			fn()
		}
	})
}

// Wait blocks for the delay and reports whether the caller is still the
// most recent one to call Wait or Trigger. A superseded caller returns
// false as soon as the delay ends; a cancelled context returns its error.
func (d *Debouncer) Wait(ctx context.Context) (bool, error) {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen == gen, nil
}

// Stop cancels any pending Trigger and supersedes current waiters.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
