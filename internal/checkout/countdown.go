package checkout

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultPaymentWindow is how long payment instructions stay valid
const DefaultPaymentWindow = 30 * time.Minute

// UrgentThreshold is the remaining time below which the countdown turns urgent
const UrgentThreshold = 5 * time.Minute

// Countdown is the payment-window timer. The remaining value drops by one
// second per elapsed second, stops at zero and never goes negative. Expiry
// is advisory only.
type Countdown struct {
	clock  clockwork.Clock
	window time.Duration
	start  time.Time
	onTick func(remaining time.Duration)

	mu      sync.Mutex
	stopped bool
	frozen  time.Duration
	ticker  clockwork.Ticker
	done    chan struct{}
}

// StartCountdown starts a countdown of window and a one-second ticker that
// calls onTick (may be nil) with the remaining time. The ticker stops by
// itself once the remaining time reaches zero.
func StartCountdown(clock clockwork.Clock, window time.Duration, onTick func(remaining time.Duration)) *Countdown {
	c := &Countdown{
		clock:  clock,
		window: window,
		start:  clock.Now(),
		onTick: onTick,
		ticker: clock.NewTicker(time.Second),
		done:   make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *Countdown) run() {
	defer c.ticker.Stop()
	for {
		select {
		case <-c.ticker.Chan():
			if c.Stopped() {
				return
			}
			remaining := c.Remaining()
			if c.onTick != nil {
				c.onTick(remaining)
			}
			if remaining == 0 {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Remaining returns the time left, truncated to whole seconds
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return c.frozen
	}
	return c.remainingAt(c.clock.Now())
}

func (c *Countdown) remainingAt(now time.Time) time.Duration {
	elapsed := now.Sub(c.start).Truncate(time.Second)
	remaining := c.window - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Seconds is Remaining in whole seconds
func (c *Countdown) Seconds() int {
	return int(c.Remaining() / time.Second)
}

// Expired reports whether the window has run out
func (c *Countdown) Expired() bool {
	return c.Remaining() == 0
}

// Urgent reports whether less than UrgentThreshold is left
func (c *Countdown) Urgent() bool {
	return c.Remaining() <= UrgentThreshold
}

// Label renders the remaining time as MM:SS
func (c *Countdown) Label() string {
	secs := c.Seconds()
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Stop freezes the value and releases the ticker. Safe to call twice.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.frozen = c.remainingAt(c.clock.Now())
	c.stopped = true
	close(c.done)
}

// Stopped reports whether Stop has been called
func (c *Countdown) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
