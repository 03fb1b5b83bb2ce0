package jobs

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Expirer drops sessions idle for longer than ttl
type Expirer interface {
	ExpireIdle(ttl time.Duration) int
}

// SessionSweeper periodically removes abandoned checkout sessions
type SessionSweeper struct {
	expirer  Expirer
	ttl      time.Duration
	interval time.Duration
	clock    clockwork.Clock

	once sync.Once
	done chan struct{}
	wg   sync.WaitGroup
}

func NewSessionSweeper(expirer Expirer, ttl, interval time.Duration, clock clockwork.Clock) *SessionSweeper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeper{
		expirer:  expirer,
		ttl:      ttl,
		interval: interval,
		clock:    clock,
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop in the background
func (j *SessionSweeper) Start() {
	slog.Info("Starting session sweeper", "check_interval", j.interval, "idle_ttl", j.ttl)

	ticker := j.clock.NewTicker(j.interval)
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.Chan():
				j.sweep()
			case <-j.done:
				slog.Info("Session sweeper stopped")
				return
			}
		}
	}()
}

// Stop ends the loop and waits for it
func (j *SessionSweeper) Stop() {
	j.once.Do(func() { close(j.done) })
	j.wg.Wait()
}

func (j *SessionSweeper) sweep() {
	if n := j.expirer.ExpireIdle(j.ttl); n > 0 {
		slog.Info("Expired idle sessions", "count", n)
	} else {
		slog.Debug("No idle sessions found")
	}
}
