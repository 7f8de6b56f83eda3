package watcher

import (
	"sync"
	"time"
)

// debouncer delays a callback until no trigger has arrived for the whole
// window. Each trigger restarts the timer.
type debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	timer *time.Timer
}

func newDebouncer(d time.Duration) *debouncer {
	return &debouncer{d: d}
}

// trigger schedules fn to run after the debounce window, replacing any
// pending invocation.
func (b *debouncer) trigger(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	if b.d <= 0 {
		b.timer = nil
		go fn()
		return
	}
	b.timer = time.AfterFunc(b.d, fn)
}

// cancel drops any pending invocation.
func (b *debouncer) cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
