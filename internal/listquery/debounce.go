package listquery

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of input events into at most one emission per
// interval. A search box feeding one request per keystroke goes through one
// of these first.
type Debouncer[T any] struct {
	mu       sync.Mutex
	interval time.Duration
	emit     func(T)
	timer    *time.Timer
	pending  T
	armed    bool
}

// NewDebouncer returns a debouncer that calls emit with the most recent
// input once interval has elapsed without another input.
func NewDebouncer[T any](interval time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{interval: interval, emit: emit}
}

// Input records a value and (re)starts the interval timer.
func (d *Debouncer[T]) Input(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = v
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

// Flush emits the pending value immediately, if any.
func (d *Debouncer[T]) Flush() {
	d.fire()
}

// Cancel drops any pending value without emitting.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.armed = false
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.emit(v)
}
