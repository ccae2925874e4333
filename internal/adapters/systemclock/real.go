package systemclock

import (
	"sync"
	"time"

	"dripsim/internal/ports"
)

// Verify interface compliance at compile time
var _ ports.Clock = Real{}

// Real schedules callbacks on wall-clock time. Callbacks run on their own
// goroutines.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) Every(d time.Duration, fn func()) ports.Ticker {
	t := &realTicker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

func (Real) AfterFunc(d time.Duration, fn func()) ports.Timer {
	return time.AfterFunc(d, fn)
}

type realTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *realTicker) run(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		}
	}
}

// Stop does not wait for a callback that is already running
func (t *realTicker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
