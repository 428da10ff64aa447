// Package countdown provides the per-step deadline timer. A timer is
// a single absolute expiry instant checked against on one-second
// ticks, rather than a chain of re-scheduled callbacks, so cancelling
// it is a single operation and display ticks cannot drift the
// deadline.
package countdown

import (
	"sync"
	"time"
)

// Timer counts down to an absolute expiry. It fires its expire
// callback exactly once; cancelling after the fire (or firing after a
// cancel) is a no-op.
type Timer struct {
	mu       sync.Mutex
	expiry   time.Time
	fired    bool
	stopped  bool
	stopOnce sync.Once
	done     chan struct{}
}

// Start arms a timer for d from now. onTick, if non-nil, is invoked
// once per second with the remaining time while the timer is live.
// onExpire is invoked exactly once when the deadline passes, unless
// the timer is cancelled first.
func Start(d time.Duration, onTick func(remaining time.Duration), onExpire func()) *Timer {
	t := &Timer{
		expiry: time.Now().Add(d),
		done:   make(chan struct{}),
	}
	go t.run(onTick, onExpire)
	return t
}

func (t *Timer) run(onTick func(time.Duration), onExpire func()) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			remaining := t.Remaining()
			if remaining > 0 {
				if onTick != nil {
					onTick(remaining)
				}
				continue
			}
			if t.markFired() && onExpire != nil {
				onExpire()
			}
			return
		}
	}
}

// markFired flips the fired flag, returning false if the timer was
// already fired or cancelled.
func (t *Timer) markFired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.fired = true
	return true
}

// Cancel stops the timer. Safe to call repeatedly and after expiry.
func (t *Timer) Cancel() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
	t.stopOnce.Do(func() { close(t.done) })
}

// Remaining returns the time left before expiry, floored at zero.
func (t *Timer) Remaining() time.Duration {
	d := time.Until(t.expiry)
	if d < 0 {
		return 0
	}
	return d
}

// Fired reports whether the expire callback has run.
func (t *Timer) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}
