package journey

import (
	"fmt"
	"maps"
	"slices"

	"dripsim/internal/domain"
)

// Advance runs one simulated day and returns the new day number.
//
// A tick delivers everything due, applies one transition to each
// unprocessed message in send order, then delivers again so a reminder
// scheduled for the current day goes out in the same tick.
func (e *Engine) Advance() int {
	e.mu.Lock()
	day := e.advanceLocked()
	e.commit()
	return day
}

func (e *Engine) advanceLocked() int {
	e.day++
	e.deliverDueLocked()
	e.evaluateLocked()
	e.deliverDueLocked()
	return e.day
}

// deliverDueLocked sends every queued entry whose target day is not in
// the future, oldest target first
func (e *Engine) deliverDueLocked() {
	for _, day := range slices.Sorted(maps.Keys(e.scheduled)) {
		if day > e.day {
			break
		}
		ids := e.scheduled[day]
		delete(e.scheduled, day)
		for _, id := range ids {
			delete(e.queued, id)
			if e.sent[id] {
				continue
			}
			e.sendLocked(id)
		}
	}
}

func (e *Engine) sendLocked(id domain.EmailID) {
	node, _ := e.program.Node(id)
	msg := &domain.InboxMessage{
		InstanceID: e.newInstanceIDLocked(id),
		EmailID:    id,
		SentOnDay:  e.day,
	}
	e.sent[id] = true
	e.inbox = append(e.inbox, msg)
	e.byInstance[msg.InstanceID] = msg
	e.engagement[msg.InstanceID] = &domain.Engagement{}
	e.dayStatsLocked(e.day).Sent++
	e.timeline.Add(e.day, "Email Sent", fmt.Sprintf("%s sent on Day %d", node.Subject, e.day))

	if e.autoplay {
		e.simulateBehaviorLocked(msg.InstanceID)
	}
}

// newInstanceIDLocked draws ids until one is unused and distinct from the
// email id itself
func (e *Engine) newInstanceIDLocked(id domain.EmailID) string {
	for {
		instanceID := e.newID()
		if _, taken := e.byInstance[instanceID]; taken || instanceID == id.String() || instanceID == "" {
			instanceID = fmt.Sprintf("%s-%s-%d", instanceID, id, len(e.inbox))
			if _, taken := e.byInstance[instanceID]; taken {
				continue
			}
		}
		return instanceID
	}
}

func (e *Engine) evaluateLocked() {
	for _, msg := range e.inbox {
		if msg.Processed {
			continue
		}
		eng := e.engagement[msg.InstanceID]
		switch {
		case eng.Engaged():
			msg.Processed = true
			e.onEngagedLocked(msg)
		case msg.Idle(e.day):
			msg.Processed = true
			e.onIdleLocked(msg)
		}
	}
}

func (e *Engine) onEngagedLocked(msg *domain.InboxMessage) {
	next, ok := e.program.NextMain(msg.EmailID)
	if !ok {
		e.timeline.Add(e.day, "Journey Complete",
			fmt.Sprintf("User completed the journey after Email %s", msg.EmailID))
		return
	}
	e.scheduleLocked(next.ID, e.day+domain.WaitDays)
}

func (e *Engine) onIdleLocked(msg *domain.InboxMessage) {
	if !msg.EmailID.IsReminder() {
		r, ok := e.program.ReminderFor(msg.EmailID)
		if !ok {
			e.timeline.Add(e.day, "Journey Exit",
				fmt.Sprintf("User exited journey after Email %s", msg.EmailID))
			return
		}
		e.counters.Inc(domain.BranchReminder)
		e.scheduleLocked(r.ID, e.day)
		return
	}

	r, ok := e.program.NextReminder(msg.EmailID)
	if !ok {
		e.counters.Inc(domain.BranchColdLeads)
		e.timeline.Add(e.day, "Journey Exit",
			fmt.Sprintf("User exited to nurture/cold leads after Reminder %s", msg.EmailID))
		return
	}
	e.counters.Inc(domain.BranchReminder)
	e.scheduleLocked(r.ID, e.day)
}
