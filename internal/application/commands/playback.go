package commands

import (
	"context"
	"fmt"

	"dripsim/internal/application"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// PlaybackResult contains the playback settings after a change
type PlaybackResult struct {
	Speed    domain.Speed
	Mode     domain.BehaviorMode
	Autoplay bool
	Message  string
}

func playbackResult(engine ports.JourneyEngine, msg string) *PlaybackResult {
	snap := engine.Snapshot()
	return &PlaybackResult{
		Speed:    snap.Speed,
		Mode:     snap.Mode,
		Autoplay: snap.Autoplay,
		Message:  msg,
	}
}

// SetSpeedCommand changes the autoplay speed
type SetSpeedCommand struct {
	engine ports.JourneyEngine
	Speed  int
}

// NewSetSpeedCommand creates a new SetSpeedCommand
func NewSetSpeedCommand(engine ports.JourneyEngine, speed int) *SetSpeedCommand {
	return &SetSpeedCommand{
		engine: engine,
		Speed:  speed,
	}
}

// Validate checks the speed range
func (c *SetSpeedCommand) Validate() error {
	_, err := application.ValidateSpeed(c.Speed)
	return err
}

// Execute runs the speed command
func (c *SetSpeedCommand) Execute(ctx context.Context) (*PlaybackResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.engine.SetSpeed(c.Speed); err != nil {
		return nil, fmt.Errorf("failed to set speed: %w", err)
	}
	s := domain.Speed(c.Speed)
	return playbackResult(c.engine, fmt.Sprintf("Speed set to %d (%s)", c.Speed, s.Label())), nil
}

// SetModeCommand selects the simulated recipient behavior
type SetModeCommand struct {
	engine ports.JourneyEngine
	Mode   string
}

// NewSetModeCommand creates a new SetModeCommand
func NewSetModeCommand(engine ports.JourneyEngine, mode string) *SetModeCommand {
	return &SetModeCommand{
		engine: engine,
		Mode:   mode,
	}
}

// Validate checks the mode name
func (c *SetModeCommand) Validate() error {
	if err := application.ValidateRequired("mode", c.Mode); err != nil {
		return err
	}
	_, err := application.ValidateMode(c.Mode)
	return err
}

// Execute runs the mode command
func (c *SetModeCommand) Execute(ctx context.Context) (*PlaybackResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	mode, _ := application.ValidateMode(c.Mode)
	if err := c.engine.SetBehaviorMode(mode); err != nil {
		return nil, fmt.Errorf("failed to set behavior mode: %w", err)
	}
	return playbackResult(c.engine, fmt.Sprintf("Behavior mode set to %s", mode)), nil
}

// AutoplayCommand starts or stops automatic day advancement
type AutoplayCommand struct {
	engine  ports.JourneyEngine
	Enabled bool
}

// NewAutoplayCommand creates a new AutoplayCommand
func NewAutoplayCommand(engine ports.JourneyEngine, enabled bool) *AutoplayCommand {
	return &AutoplayCommand{
		engine:  engine,
		Enabled: enabled,
	}
}

// Execute runs the autoplay command
func (c *AutoplayCommand) Execute(ctx context.Context) (*PlaybackResult, error) {
	if c.Enabled {
		c.engine.StartAutoplay()
		return playbackResult(c.engine, "Auto-play started"), nil
	}
	c.engine.StopAutoplay()
	return playbackResult(c.engine, "Auto-play stopped"), nil
}
