// Package debounce coalesces rapid calls into a single delayed call.
package debounce

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const DefaultDelay = 500 * time.Millisecond

type Opt func(*Debouncer)

// ClockOpt sets the clock timers are scheduled on.
func ClockOpt(c clock.Clock) Opt {
	return func(d *Debouncer) {
		if c != nil {
			d.clock = c
		}
	}
}

// A Debouncer runs the last scheduled function once no new call arrived
// within the delay.
type Debouncer struct {
	mu      sync.Mutex
	clock   clock.Clock
	delay   time.Duration
	timer   *clock.Timer
	stopped bool
}

// New returns a Debouncer. A non-positive delay falls back to DefaultDelay.
func New(delay time.Duration, opts ...Opt) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{clock: clock.New(), delay: delay}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Debounce cancels the pending call and schedules fn after the delay.
// It is a no-op after Stop.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.delay, fn)
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancel()
}

// Stop drops the pending call and rejects further ones.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancel()
	d.stopped = true
}

func (d *Debouncer) cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
