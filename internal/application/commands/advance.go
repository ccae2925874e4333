package commands

import (
	"context"
	"fmt"

	"dripsim/internal/application"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// MaxAdvanceDays caps a single advance request
const MaxAdvanceDays = 3650

// AdvanceResult contains the outcome of advancing the simulation
type AdvanceResult struct {
	Day     int
	Sent    []domain.MessageView
	Message string
}

// AdvanceCommand runs one or more simulated days
type AdvanceCommand struct {
	engine ports.JourneyEngine
	Days   int
}

// NewAdvanceCommand creates a new AdvanceCommand
func NewAdvanceCommand(engine ports.JourneyEngine, days int) *AdvanceCommand {
	return &AdvanceCommand{
		engine: engine,
		Days:   days,
	}
}

// Validate checks the number of days
func (c *AdvanceCommand) Validate() error {
	if c.Days < 1 || c.Days > MaxAdvanceDays {
		return &application.ValidationError{
			Field:   "days",
			Message: fmt.Sprintf("days must be between 1 and %d, got: %d", MaxAdvanceDays, c.Days),
		}
	}
	return nil
}

// Execute advances the engine, stopping early if ctx is cancelled
func (c *AdvanceCommand) Execute(ctx context.Context) (*AdvanceResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	startDay := c.engine.Snapshot().Day
	day := startDay
	for i := 0; i < c.Days; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("advance interrupted on day %d: %w", day, err)
		}
		day = c.engine.Advance()
	}

	var sent []domain.MessageView
	for _, m := range c.engine.Snapshot().Inbox {
		if m.SentOnDay > startDay {
			sent = append(sent, m)
		}
	}

	return &AdvanceResult{
		Day:     day,
		Sent:    sent,
		Message: fmt.Sprintf("Advanced to day %d (%d sent)", day, len(sent)),
	}, nil
}

// ScheduleResult contains the result of scheduling an email
type ScheduleResult struct {
	EmailID domain.EmailID
	Day     int
	Message string
}

// ScheduleCommand queues an email of the active program for a day
type ScheduleCommand struct {
	engine  ports.JourneyEngine
	EmailID string
	Day     int
}

// NewScheduleCommand creates a new ScheduleCommand
func NewScheduleCommand(engine ports.JourneyEngine, emailID string, day int) *ScheduleCommand {
	return &ScheduleCommand{
		engine:  engine,
		EmailID: emailID,
		Day:     day,
	}
}

// Validate checks the email id and day
func (c *ScheduleCommand) Validate() error {
	if _, err := application.ValidateEmailID("emailID", c.EmailID); err != nil {
		return err
	}
	if c.Day < 0 {
		return &application.ValidationError{
			Field:   "day",
			Message: fmt.Sprintf("day must not be negative, got: %d", c.Day),
		}
	}
	return nil
}

// Execute runs the schedule command
func (c *ScheduleCommand) Execute(ctx context.Context) (*ScheduleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id := domain.EmailID(c.EmailID)
	if err := c.engine.Schedule(id, c.Day); err != nil {
		return nil, fmt.Errorf("failed to schedule email: %w", err)
	}
	return &ScheduleResult{
		EmailID: id,
		Day:     c.Day,
		Message: fmt.Sprintf("Email %s queued for day %d", id, c.Day),
	}, nil
}
