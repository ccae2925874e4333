package systemclock

import (
	"sync"
	"time"

	"dripsim/internal/ports"
)

var _ ports.Clock = (*Stepped)(nil)

// Stepped is a virtual clock that only moves when Advance is called.
// Due callbacks run synchronously inside Advance, in time order, without
// the clock lock held, so they may schedule or stop other callbacks.
type Stepped struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	events map[*steppedEvent]struct{}
}

type steppedEvent struct {
	clock *Stepped
	at    time.Time
	every time.Duration
	seq   uint64
	fn    func()
}

// NewStepped creates a virtual clock starting at start
func NewStepped(start time.Time) *Stepped {
	return &Stepped{
		now:    start,
		events: make(map[*steppedEvent]struct{}),
	}
}

func (c *Stepped) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Stepped) Every(d time.Duration, fn func()) ports.Ticker {
	if d <= 0 {
		d = time.Nanosecond
	}
	return steppedTicker{c.add(d, d, fn)}
}

func (c *Stepped) AfterFunc(d time.Duration, fn func()) ports.Timer {
	if d < 0 {
		d = 0
	}
	return steppedTimer{c.add(d, 0, fn)}
}

func (c *Stepped) add(d, every time.Duration, fn func()) *steppedEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	ev := &steppedEvent{clock: c, at: c.now.Add(d), every: every, seq: c.seq, fn: fn}
	c.events[ev] = struct{}{}
	return ev
}

// Advance moves the clock forward by d, firing every callback that falls
// due on the way. It returns the number of callbacks fired.
func (c *Stepped) Advance(d time.Duration) int {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	fired := 0
	for {
		c.mu.Lock()
		ev := c.nextDueLocked(target)
		if ev == nil {
			c.now = target
			c.mu.Unlock()
			return fired
		}
		c.now = ev.at
		if ev.every > 0 {
			c.seq++
			ev.at = ev.at.Add(ev.every)
			ev.seq = c.seq
		} else {
			delete(c.events, ev)
		}
		fn := ev.fn
		c.mu.Unlock()

		fn()
		fired++
	}
}

// Pending returns the number of scheduled callbacks
func (c *Stepped) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func (c *Stepped) nextDueLocked(target time.Time) *steppedEvent {
	var next *steppedEvent
	for ev := range c.events {
		if ev.at.After(target) {
			continue
		}
		if next == nil || ev.at.Before(next.at) || (ev.at.Equal(next.at) && ev.seq < next.seq) {
			next = ev
		}
	}
	return next
}

type steppedTicker struct{ ev *steppedEvent }

func (t steppedTicker) Stop() { t.ev.stop() }

type steppedTimer struct{ ev *steppedEvent }

func (t steppedTimer) Stop() bool { return t.ev.stop() }

// stop cancels the callback and reports whether it was still pending
func (ev *steppedEvent) stop() bool {
	c := ev.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.events[ev]; !ok {
		return false
	}
	delete(c.events, ev)
	return true
}
