package session

import (
	"sync"
	"time"
)

// Countdown decrements a remaining-time counter once per second and fires the
// expired callback exactly once when it reaches zero. Stopping a countdown
// that completed naturally is a no-op.
type Countdown struct {
	mu        sync.Mutex
	remaining time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewCountdown starts a countdown for the given duration. The expired
// callback runs on the countdown's own goroutine.
func NewCountdown(d time.Duration, expired func()) *Countdown {
	c := &Countdown{
		remaining: d,
		stop:      make(chan struct{}),
	}

	go c.run(expired)

	return c
}

func (c *Countdown) run(expired func()) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.remaining -= time.Second
			done := c.remaining <= 0
			if done {
				c.remaining = 0
			}
			c.mu.Unlock()

			if done {
				if expired != nil {
					expired()
				}
				return
			}
		}
	}
}

// Remaining returns the time left on the countdown.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Stop halts the countdown without firing the callback.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}
