package commands

import (
	"context"
	"fmt"

	"dripsim/internal/application"
	"dripsim/internal/ports"
)

// ProgramResult contains the state after a reset or program switch
type ProgramResult struct {
	ProgramKey string
	Message    string
}

// SwitchProgramCommand moves the engine to another catalog program
type SwitchProgramCommand struct {
	engine     ports.JourneyEngine
	ProgramKey string
}

// NewSwitchProgramCommand creates a new SwitchProgramCommand
func NewSwitchProgramCommand(engine ports.JourneyEngine, programKey string) *SwitchProgramCommand {
	return &SwitchProgramCommand{
		engine:     engine,
		ProgramKey: programKey,
	}
}

// Validate checks the program key against the catalog
func (c *SwitchProgramCommand) Validate() error {
	if err := application.ValidateRequired("programKey", c.ProgramKey); err != nil {
		return err
	}
	if _, ok := c.engine.Catalog().Program(c.ProgramKey); !ok {
		return &application.UnknownProgramError{Key: c.ProgramKey}
	}
	return nil
}

// Execute runs the switch command
func (c *SwitchProgramCommand) Execute(ctx context.Context) (*ProgramResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.engine.SwitchProgram(ctx, c.ProgramKey); err != nil {
		return nil, fmt.Errorf("failed to switch program: %w", err)
	}
	p, _ := c.engine.Catalog().Program(c.ProgramKey)
	return &ProgramResult{
		ProgramKey: c.ProgramKey,
		Message:    fmt.Sprintf("Switched to %s (%s), journey restarted", p.Name, p.Key),
	}, nil
}

// ResetCommand restarts the journey of the active program
type ResetCommand struct {
	engine ports.JourneyEngine
}

// NewResetCommand creates a new ResetCommand
func NewResetCommand(engine ports.JourneyEngine) *ResetCommand {
	return &ResetCommand{engine: engine}
}

// Execute runs the reset command
func (c *ResetCommand) Execute(ctx context.Context) (*ProgramResult, error) {
	c.engine.Reset()
	key := c.engine.Snapshot().Program
	return &ProgramResult{
		ProgramKey: key,
		Message:    fmt.Sprintf("Journey for %s reset to day 0", key),
	}, nil
}
