package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dripsim/internal/application/commands"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// RegisterWriteTools adds all journey-changing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, engine ports.JourneyEngine) {
	s.AddTool(advanceTool(), advanceHandler(engine))
	s.AddTool(resetTool(), resetHandler(engine))
	s.AddTool(switchProgramTool(), switchProgramHandler(engine))
	s.AddTool(markTool("mark_opened", "Mark a delivered email as opened."), markHandler(engine, domain.EngagementOpened, false))
	s.AddTool(markTool("mark_clicked", "Mark a delivered email as clicked. Clicking also opens it."), markHandler(engine, domain.EngagementClicked, false))
	s.AddTool(toggleTool(), toggleHandler(engine))
	s.AddTool(setSpeedTool(), setSpeedHandler(engine))
	s.AddTool(setModeTool(), setModeHandler(engine))
	s.AddTool(scheduleTool(), scheduleHandler(engine))
	s.AddTool(autoplayTool(), autoplayHandler(engine))
}

// --- advance ---

func advanceTool() mcp.Tool {
	return mcp.NewTool("advance",
		mcp.WithDescription("Advance the simulated calendar, delivering due emails and applying the branching rules once per day."),
		mcp.WithNumber("days",
			mcp.Description(fmt.Sprintf("Number of days to advance (default 1, max %d)", commands.MaxAdvanceDays)),
		),
	)
}

func advanceHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewAdvanceCommand(engine, req.GetInt("days", 1)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- reset ---

func resetTool() mcp.Tool {
	return mcp.NewTool("reset",
		mcp.WithDescription("Restart the journey of the active program at day 0 with the first email scheduled for day 1."),
	)
}

func resetHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewResetCommand(engine).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- switch_program ---

func switchProgramTool() mcp.Tool {
	return mcp.NewTool("switch_program",
		mcp.WithDescription("Switch to another catalog program. The journey restarts."),
		mcp.WithString("program",
			mcp.Description("Program key from the catalog tool"),
			mcp.Required(),
		),
	)
}

func switchProgramHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewSwitchProgramCommand(engine, req.GetString("program", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- mark_opened / mark_clicked / toggle_engagement ---

func markTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("instance_id",
			mcp.Description("Instance ID from the inbox tool"),
			mcp.Required(),
		),
	)
}

func markHandler(engine ports.JourneyEngine, kind domain.EngagementKind, toggle bool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMarkEngagementCommand(engine, req.GetString("instance_id", ""), string(kind), toggle)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func toggleTool() mcp.Tool {
	return mcp.NewTool("toggle_engagement",
		mcp.WithDescription("Flip the opened or clicked flag of a delivered email. A clicked email cannot be un-opened."),
		mcp.WithString("instance_id",
			mcp.Description("Instance ID from the inbox tool"),
			mcp.Required(),
		),
		mcp.WithString("kind",
			mcp.Description("Which flag to flip"),
			mcp.Required(),
			mcp.Enum(string(domain.EngagementOpened), string(domain.EngagementClicked)),
		),
	)
}

func toggleHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMarkEngagementCommand(engine, req.GetString("instance_id", ""), req.GetString("kind", ""), true)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_speed / set_mode ---

func setSpeedTool() mcp.Tool {
	return mcp.NewTool("set_speed",
		mcp.WithDescription("Set the auto-play speed. Speed changes real time per day only, never the day arithmetic."),
		mcp.WithNumber("speed",
			mcp.Description(fmt.Sprintf("Speed from %d (slowest) to %d (fastest)", domain.MinSpeed, domain.MaxSpeed)),
			mcp.Required(),
		),
	)
}

func setSpeedHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewSetSpeedCommand(engine, req.GetInt("speed", 0)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func setModeTool() mcp.Tool {
	return mcp.NewTool("set_mode",
		mcp.WithDescription("Choose how the simulated recipient reacts to emails during auto-play."),
		mcp.WithString("mode",
			mcp.Description("Behavior mode"),
			mcp.Required(),
			mcp.Enum(string(domain.ModeNeverOpen), string(domain.ModeAlwaysOpen), string(domain.ModeRandomMix)),
		),
	)
}

func setModeHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewSetModeCommand(engine, req.GetString("mode", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- schedule ---

func scheduleTool() mcp.Tool {
	return mcp.NewTool("schedule",
		mcp.WithDescription("Queue an email of the active program for a day. Emails already sent or queued are left alone."),
		mcp.WithString("email_id",
			mcp.Description("Email ID such as 3 or 3a"),
			mcp.Required(),
		),
		mcp.WithNumber("day",
			mcp.Description("Target day"),
			mcp.Required(),
		),
	)
}

func scheduleHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewScheduleCommand(engine, req.GetString("email_id", ""), req.GetInt("day", 0))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- autoplay ---

func autoplayTool() mcp.Tool {
	return mcp.NewTool("autoplay",
		mcp.WithDescription("Start or stop automatic day advancement at the current speed."),
		mcp.WithBoolean("enabled",
			mcp.Description("true to start, false to stop"),
			mcp.Required(),
		),
	)
}

func autoplayHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewAutoplayCommand(engine, req.GetBool("enabled", false)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
