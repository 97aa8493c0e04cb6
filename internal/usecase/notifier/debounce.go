package notifier

import (
	"sync"
	"time"

	"github.com/raulk/clock"
)

// Debouncer coalesces bursts of signals into a single callback once the
// stream has been quiet for the configured delay.
type Debouncer struct {
	clk   clock.Clock
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *clock.Timer
	gen     uint64
	stopped bool
}

func NewDebouncer(clk clock.Clock, delay time.Duration, fn func()) *Debouncer {
	if clk == nil {
		clk = clock.New()
	}
	return &Debouncer{clk: clk, delay: delay, fn: fn}
}

// Signal restarts the quiet-period timer. The callback fires delay after the
// last signal, however many arrived before it. The generation counter keeps a
// replaced timer that fired concurrently with its Stop from running a stale
// callback.
func (d *Debouncer) Signal() {
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
	d.timer = d.clk.AfterFunc(d.delay, func() {
		d.mu.Lock()
		fire := !d.stopped && gen == d.gen
		if fire {
			d.timer = nil
		}
		d.mu.Unlock()
		if fire {
			d.fn()
		}
	})
}

// Stop cancels any pending callback. The debouncer cannot be reused after.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
