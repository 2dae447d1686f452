package orchestrators

import (
	"context"
	"sync"
	"time"

	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/eventlist"
)

// CountdownInterval is the tick period.
const CountdownInterval = time.Second

// Countdown drives a repeating countdown tick. Starting it again replaces
// the running ticker, so at most one is active per Countdown.
type Countdown struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// Interval and Now are overridable for tests.
	Interval time.Duration
	Now      func() time.Time
}

// Start cancels any running ticker and starts a new one. emit receives one
// frame immediately and then one per interval until ctx ends or Stop is called.
// events is read on every tick so edits show up without a restart.
// PRE: events and emit are non-nil
// POST: exactly one ticker goroutine is running for this Countdown
func (c *Countdown) Start(ctx context.Context, events func() []content.Event, loc *time.Location, emit func(eventlist.Tick)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()

	interval := c.Interval
	if interval <= 0 {
		interval = CountdownInterval
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel, c.done = cancel, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			emit(eventlist.ComputeTick(events(), now().In(loc)))
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop cancels the running ticker, if any, and waits for it to exit.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Countdown) stopLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel, c.done = nil, nil
}
