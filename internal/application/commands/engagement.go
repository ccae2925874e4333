package commands

import (
	"context"
	"fmt"

	"dripsim/internal/application"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// EngagementResult contains the message state after an engagement change
type EngagementResult struct {
	View     domain.MessageView
	Branches domain.BranchCounters
	Message  string
}

// MarkEngagementCommand records an open or a click on a sent message.
// With Toggle set the flag is flipped instead, without counting.
type MarkEngagementCommand struct {
	engine     ports.JourneyEngine
	InstanceID string
	Kind       string
	Toggle     bool
}

// NewMarkEngagementCommand creates a new MarkEngagementCommand
func NewMarkEngagementCommand(engine ports.JourneyEngine, instanceID, kind string, toggle bool) *MarkEngagementCommand {
	return &MarkEngagementCommand{
		engine:     engine,
		InstanceID: instanceID,
		Kind:       kind,
		Toggle:     toggle,
	}
}

// Validate checks the instance id and engagement kind
func (c *MarkEngagementCommand) Validate() error {
	if err := application.ValidateRequired("instanceID", c.InstanceID); err != nil {
		return err
	}
	if _, err := application.ValidateEngagementKind(c.Kind); err != nil {
		return err
	}
	return nil
}

// Execute runs the engagement command
func (c *MarkEngagementCommand) Execute(ctx context.Context) (*EngagementResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	kind, _ := application.ValidateEngagementKind(c.Kind)

	var err error
	switch {
	case c.Toggle:
		err = c.engine.ToggleEngagement(c.InstanceID, kind)
	case kind == domain.EngagementOpened:
		err = c.engine.MarkOpened(c.InstanceID)
	default:
		err = c.engine.MarkClicked(c.InstanceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update engagement: %w", err)
	}

	snap := c.engine.Snapshot()
	view, ok := snap.Message(c.InstanceID)
	if !ok {
		// relaxed engines accept unknown ids
		return &EngagementResult{
			Branches: snap.Branches,
			Message:  fmt.Sprintf("No message %s, nothing changed", c.InstanceID),
		}, nil
	}

	verb := "Marked"
	if c.Toggle {
		verb = "Toggled"
	}
	return &EngagementResult{
		View:     view,
		Branches: snap.Branches,
		Message:  fmt.Sprintf("%s %s on email %s (now %s)", verb, kind, view.EmailID, view.Status),
	}, nil
}
