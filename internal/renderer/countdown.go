package renderer

import (
	"sync"
	"time"
)

// Remaining is the countdown display value. Past targets clamp to zero.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// RemainingUntil computes the countdown value at a given instant.
func RemainingUntil(target, now time.Time) Remaining {
	d := target.Sub(now)
	if d < 0 {
		return Remaining{}
	}
	return Remaining{
		Days:    int(d / (24 * time.Hour)),
		Hours:   int(d/time.Hour) % 24,
		Minutes: int(d/time.Minute) % 60,
		Seconds: int(d/time.Second) % 60,
	}
}

// Countdown drives a once-per-second tick toward the event date. Arming
// always cancels the previous run first, so repeated renders never stack
// concurrent tickers.
type Countdown struct {
	mu   sync.Mutex
	stop chan struct{}
}

// NewCountdown returns an unarmed countdown.
func NewCountdown() *Countdown {
	return &Countdown{}
}

// Arm starts ticking toward target, invoking tick immediately and then every
// second. Any previous arm is cancelled.
func (c *Countdown) Arm(target time.Time, tick func(Remaining)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		close(c.stop)
	}
	stop := make(chan struct{})
	c.stop = stop

	tick(RemainingUntil(target, time.Now()))

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				tick(RemainingUntil(target, now))
			}
		}
	}()
}

// Stop cancels the countdown if armed.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}
