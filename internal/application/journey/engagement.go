package journey

import (
	"errors"
	"fmt"

	"dripsim/internal/application"
	"dripsim/internal/domain"
)

// MarkOpened records that the recipient opened a message. Only the first
// open is counted; re-marking keeps the original day.
func (e *Engine) MarkOpened(instanceID string) error {
	e.mu.Lock()
	msg, eng, err := e.lookupLocked(instanceID)
	if err != nil || msg == nil {
		e.mu.Unlock()
		return err
	}
	e.openLocked(msg, eng)
	e.commit()
	return nil
}

// MarkClicked records a click, opening the message first if needed.
// Only the first click is counted as a conversion.
func (e *Engine) MarkClicked(instanceID string) error {
	e.mu.Lock()
	msg, eng, err := e.lookupLocked(instanceID)
	if err != nil || msg == nil {
		e.mu.Unlock()
		return err
	}
	e.clickLocked(msg, eng)
	e.commit()
	return nil
}

// ToggleEngagement flips one flag for manual editing. It never touches the
// branch counters.
func (e *Engine) ToggleEngagement(instanceID string, kind domain.EngagementKind) error {
	e.mu.Lock()
	msg, eng, err := e.lookupLocked(instanceID)
	if err != nil || msg == nil {
		e.mu.Unlock()
		return err
	}

	on, err := eng.Toggle(kind, e.day)
	if err != nil {
		e.mu.Unlock()
		if errors.Is(err, domain.ErrClickedStaysOpened) {
			return &application.InvalidTransitionError{InstanceID: instanceID, Reason: err.Error()}
		}
		return &application.ValidationError{Field: "kind", Message: err.Error()}
	}

	state := string(kind)
	if !on {
		state = "not " + state
	}
	e.timeline.Add(e.day, "Engagement Updated",
		fmt.Sprintf("Email %s marked %s on Day %d", msg.EmailID, state, e.day))
	e.commit()
	return nil
}

// lookupLocked finds a message and its engagement record. In relaxed mode
// an unknown id yields nil values and no error.
func (e *Engine) lookupLocked(instanceID string) (*domain.InboxMessage, *domain.Engagement, error) {
	msg, ok := e.byInstance[instanceID]
	if !ok {
		if e.cfg.Relaxed {
			e.logger.Printf("journey: ignoring engagement for unknown message %q", instanceID)
			return nil, nil, nil
		}
		return nil, nil, &application.UnknownMessageError{InstanceID: instanceID}
	}
	return msg, e.engagement[instanceID], nil
}

func (e *Engine) openLocked(msg *domain.InboxMessage, eng *domain.Engagement) {
	if !eng.Open(e.day) {
		return
	}
	e.counters.Inc(domain.BranchMain)
	e.dayStatsLocked(e.day).Opened++
	e.timeline.Add(e.day, "Email Opened",
		fmt.Sprintf("Email %s opened on Day %d", msg.EmailID, e.day))
}

func (e *Engine) clickLocked(msg *domain.InboxMessage, eng *domain.Engagement) {
	clicked, opened := eng.Click(e.day)
	if opened {
		e.dayStatsLocked(e.day).Opened++
	}
	if !clicked {
		return
	}
	e.counters.Inc(domain.BranchConversion)
	e.dayStatsLocked(e.day).Clicked++
	e.timeline.Add(e.day, "Email Clicked",
		fmt.Sprintf("Email %s clicked on Day %d", msg.EmailID, e.day))
}
