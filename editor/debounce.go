package editor

import (
	"sync"
	"time"
)

// debouncer coalesces rapid edits into a single delayed fire. Each
// Schedule call cancels the previous pending fire and restarts the
// window, so only the quietest-moment state is ever propagated. There
// is never more than one scheduled fire at a time.
type debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	pending bool
	stopped bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window}
}

// Schedule (re)starts the window. fn runs once, on its own goroutine,
// after the window elapses with no further Schedule calls.
func (d *debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = true
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels any pending fire and reports whether one was pending,
// so the owner can flush the final state itself.
func (d *debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	pending := d.pending
	d.pending = false
	return pending
}
