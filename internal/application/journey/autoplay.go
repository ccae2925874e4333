package journey

import (
	"fmt"
	"time"

	"dripsim/internal/application"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// StartAutoplay advances one day per interval until stopped. Calling it
// while running does nothing.
func (e *Engine) StartAutoplay() {
	e.mu.Lock()
	if e.autoplay {
		e.mu.Unlock()
		return
	}
	e.autoplay = true
	e.startTickerLocked()
	e.timeline.Add(e.day, "Auto-Play Started", "Simulation running automatically")
	e.commit()
}

// StopAutoplay cancels the ticker. No tick runs after it returns.
func (e *Engine) StopAutoplay() {
	e.mu.Lock()
	if !e.stopAutoplayLocked() {
		e.mu.Unlock()
		return
	}
	e.timeline.Add(e.day, "Auto-Play Stopped", "Manual control restored")
	e.commit()
}

// SetSpeed changes the playback speed. A running ticker is replaced and
// the next tick comes one full new interval later.
func (e *Engine) SetSpeed(n int) error {
	s, err := application.ValidateSpeed(n)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.speed = s
	if e.autoplay {
		e.ticker.Stop()
		e.startTickerLocked()
	}
	e.commit()
	return nil
}

// SetBehaviorMode selects the policy applied to sends while autoplay runs
func (e *Engine) SetBehaviorMode(mode domain.BehaviorMode) error {
	m, err := application.ValidateMode(string(mode))
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.mode = m
	e.timeline.Add(e.day, "Behavior Mode Changed", fmt.Sprintf("User behavior set to: %s", m))
	e.commit()
	return nil
}

// Interval returns the current autoplay tick interval
func (e *Engine) Interval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed.Interval(e.cfg.BaseInterval)
}

func (e *Engine) startTickerLocked() {
	e.playGen++
	gen := e.playGen
	e.ticker = e.clock.Every(e.speed.Interval(e.cfg.BaseInterval), func() {
		e.autoTick(gen)
	})
}

// stopAutoplayLocked reports whether autoplay was running
func (e *Engine) stopAutoplayLocked() bool {
	if !e.autoplay {
		return false
	}
	e.autoplay = false
	e.playGen++
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	return true
}

func (e *Engine) autoTick(gen uint64) {
	e.mu.Lock()
	if !e.autoplay || gen != e.playGen {
		e.mu.Unlock()
		return
	}
	e.advanceLocked()
	e.commit()
}

// simulateBehaviorLocked draws the recipient's reaction to a fresh send and
// schedules the marks after their delays
func (e *Engine) simulateBehaviorLocked(instanceID string) {
	r := e.mode.Policy().Decide(e.rnd)
	if !r.Open {
		return
	}
	e.afterLocked(r.OpenDelay, instanceID, domain.EngagementOpened)
	if r.Click {
		e.afterLocked(r.OpenDelay+r.ClickDelay, instanceID, domain.EngagementClicked)
	}
}

// behaviorTimer is the handle of one pending mark. timer is set and read
// under e.mu only.
type behaviorTimer struct {
	timer ports.Timer
}

func (e *Engine) afterLocked(d time.Duration, instanceID string, kind domain.EngagementKind) {
	gen := e.runGen
	h := &behaviorTimer{}
	h.timer = e.clock.AfterFunc(d, func() {
		e.behaviorMark(gen, h, instanceID, kind)
	})
	e.pending[h] = struct{}{}
}

func (e *Engine) behaviorMark(gen uint64, h *behaviorTimer, instanceID string, kind domain.EngagementKind) {
	e.mu.Lock()
	delete(e.pending, h)
	if gen != e.runGen {
		e.mu.Unlock()
		return
	}
	msg, ok := e.byInstance[instanceID]
	if !ok {
		e.mu.Unlock()
		return
	}
	eng := e.engagement[instanceID]
	switch kind {
	case domain.EngagementOpened:
		e.openLocked(msg, eng)
	case domain.EngagementClicked:
		e.clickLocked(msg, eng)
	}
	e.commit()
}

// cancelBehaviorLocked drops every pending behavior mark
func (e *Engine) cancelBehaviorLocked() {
	e.runGen++
	for h := range e.pending {
		h.timer.Stop()
	}
	clear(e.pending)
}
