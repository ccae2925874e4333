package journey

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"dripsim/internal/application"
	"dripsim/internal/domain"
)

// Snapshot returns a copy of the current state
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// snapshotLocked copies the state bundle. The inbox is newest first.
func (e *Engine) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Version:  e.version,
		Program:  e.program.Key,
		Day:      e.day,
		Speed:    e.speed,
		Mode:     e.mode,
		Autoplay: e.autoplay,
		Timeline: e.timeline.Entries(),
		Branches: e.counters,
		Inbox:    make([]domain.MessageView, 0, len(e.inbox)),
	}

	for i := len(e.inbox) - 1; i >= 0; i-- {
		view := e.viewLocked(e.inbox[i])
		snap.Inbox = append(snap.Inbox, view)
		snap.InboxStats.Total++
		if view.Engagement.Opened {
			snap.InboxStats.Opened++
		}
		if view.Engagement.Clicked {
			snap.InboxStats.Clicked++
		}
	}

	for _, day := range slices.Sorted(maps.Keys(e.scheduled)) {
		for _, id := range e.scheduled[day] {
			snap.Scheduled = append(snap.Scheduled, domain.ScheduledEntry{EmailID: id, TargetDay: day})
		}
	}

	for _, day := range slices.Sorted(maps.Keys(e.days)) {
		snap.Days = append(snap.Days, *e.days[day])
	}
	return snap
}

func (e *Engine) viewLocked(msg *domain.InboxMessage) domain.MessageView {
	node, _ := e.program.Node(msg.EmailID)
	eng := *e.engagement[msg.InstanceID]
	return domain.MessageView{
		InstanceID: msg.InstanceID,
		EmailID:    msg.EmailID,
		Kind:       node.Kind,
		Subject:    node.Subject,
		SentOnDay:  msg.SentOnDay,
		Processed:  msg.Processed,
		Engagement: eng,
		Status:     eng.Status(),
	}
}

// Preview renders a sent message. The template is fetched outside the
// engine lock.
func (e *Engine) Preview(ctx context.Context, instanceID string) (domain.EmailPreview, error) {
	e.mu.Lock()
	msg, ok := e.byInstance[instanceID]
	if !ok {
		e.mu.Unlock()
		return domain.EmailPreview{}, &application.UnknownMessageError{InstanceID: instanceID}
	}
	view := e.viewLocked(msg)
	node, _ := e.program.Node(msg.EmailID)
	programKey := e.program.Key
	e.mu.Unlock()

	return domain.EmailPreview{
		InstanceID: view.InstanceID,
		EmailID:    view.EmailID,
		Kind:       view.Kind,
		Subject:    view.Subject,
		Badge:      domain.VariationFor(node).Badge(),
		Timing:     fmt.Sprintf("Day %d", view.SentOnDay),
		Status:     view.Status,
		HTML:       e.templates.HTML(ctx, programKey, node),
	}, nil
}

// Flow lists each main email with its first reminder, annotated with what
// has been sent and how it was received
func (e *Engine) Flow() []domain.FlowNode {
	e.mu.Lock()
	defer e.mu.Unlock()

	latest := make(map[domain.EmailID]*domain.InboxMessage, len(e.inbox))
	for _, msg := range e.inbox {
		latest[msg.EmailID] = msg
	}
	step := func(n domain.EmailNode) domain.FlowStep {
		s := domain.FlowStep{EmailID: n.ID, Subject: n.Subject}
		if msg, ok := latest[n.ID]; ok {
			s.Sent = true
			s.Status = e.engagement[msg.InstanceID].Status()
		}
		return s
	}

	var flow []domain.FlowNode
	for _, m := range e.program.Mains() {
		fn := domain.FlowNode{Main: step(m)}
		if r, ok := e.program.ReminderFor(m.ID); ok {
			rs := step(r)
			fn.Reminder = &rs
		}
		flow = append(flow, fn)
	}
	return flow
}
