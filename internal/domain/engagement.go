package domain

import (
	"errors"
	"fmt"
)

// EngagementKind names one of the tracked engagement flags
type EngagementKind string

const (
	EngagementOpened  EngagementKind = "opened"
	EngagementClicked EngagementKind = "clicked"
)

// ParseEngagementKind validates an engagement kind string
func ParseEngagementKind(s string) (EngagementKind, error) {
	switch EngagementKind(s) {
	case EngagementOpened, EngagementClicked:
		return EngagementKind(s), nil
	default:
		return "", fmt.Errorf("unknown engagement kind %q (want opened or clicked)", s)
	}
}

// ErrClickedStaysOpened is returned when a toggle would leave a clicked
// message unopened
var ErrClickedStaysOpened = errors.New("a clicked message must stay opened")

// MessageStatus is the display status derived from engagement
type MessageStatus string

const (
	StatusUnread  MessageStatus = "unread"
	StatusOpened  MessageStatus = "opened"
	StatusClicked MessageStatus = "clicked"
)

// Engagement records what the simulated recipient did with one sent message.
// Invariant: Clicked implies Opened and OpenedOnDay <= ClickedOnDay.
// Day fields are meaningful only while their flag is set.
type Engagement struct {
	Opened       bool `json:"opened"`
	OpenedOnDay  int  `json:"opened_on_day,omitempty"`
	Clicked      bool `json:"clicked"`
	ClickedOnDay int  `json:"clicked_on_day,omitempty"`
}

// Engaged reports whether the recipient opened or clicked
func (e Engagement) Engaged() bool {
	return e.Opened || e.Clicked
}

// Status returns the most advanced engagement state
func (e Engagement) Status() MessageStatus {
	switch {
	case e.Clicked:
		return StatusClicked
	case e.Opened:
		return StatusOpened
	default:
		return StatusUnread
	}
}

// Consistent checks the clicked-implies-opened invariant
func (e Engagement) Consistent() bool {
	if !e.Clicked {
		return true
	}
	return e.Opened && e.OpenedOnDay <= e.ClickedOnDay
}

// Open marks the message opened on day. Re-opening keeps the first day.
// It reports whether this call changed the record.
func (e *Engagement) Open(day int) bool {
	if e.Opened {
		return false
	}
	e.Opened = true
	e.OpenedOnDay = day
	return true
}

// Click marks the message clicked on day, opening it first when needed.
// It reports whether the click and the implied open were new.
func (e *Engagement) Click(day int) (clicked, opened bool) {
	opened = e.Open(day)
	if e.Clicked {
		return false, opened
	}
	e.Clicked = true
	e.ClickedOnDay = day
	return true, opened
}

// Toggle flips the named flag for manual editing. Turning clicked on also
// opens the message on the same day; turning a flag off never clears the
// other one, so un-opening a clicked message is refused.
func (e *Engagement) Toggle(kind EngagementKind, day int) (bool, error) {
	switch kind {
	case EngagementOpened:
		if !e.Opened {
			e.Open(day)
			return true, nil
		}
		if e.Clicked {
			return true, ErrClickedStaysOpened
		}
		e.Opened = false
		e.OpenedOnDay = 0
		return false, nil
	case EngagementClicked:
		if !e.Clicked {
			e.Opened, e.OpenedOnDay = true, day
			e.Clicked, e.ClickedOnDay = true, day
			return true, nil
		}
		e.Clicked = false
		e.ClickedOnDay = 0
		return false, nil
	default:
		return false, fmt.Errorf("unknown engagement kind %q", kind)
	}
}
