// Package mcp exposes the journey engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dripsim/internal/application"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// RegisterReadTools adds all read-only journey tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, engine ports.JourneyEngine) {
	s.AddTool(statusTool(), statusHandler(engine))
	s.AddTool(inboxTool(), inboxHandler(engine))
	s.AddTool(timelineTool(), timelineHandler(engine))
	s.AddTool(previewTool(), previewHandler(engine))
	s.AddTool(flowTool(), flowHandler(engine))
	s.AddTool(catalogTool(), catalogHandler(engine))
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Show the simulated day, active program, playback settings, branch counters and pending sends."),
	)
}

func statusHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap := engine.Snapshot()
		var sb strings.Builder
		fmt.Fprintf(&sb, "program: %s\nday: %d\nspeed: %d (%s)\nmode: %s\nautoplay: %t\n",
			snap.Program, snap.Day, snap.Speed, snap.Speed.Label(), snap.Mode, snap.Autoplay)
		fmt.Fprintf(&sb, "inbox: %d total, %d opened, %d clicked\n",
			snap.InboxStats.Total, snap.InboxStats.Opened, snap.InboxStats.Clicked)
		sb.WriteString("branches:")
		for _, b := range domain.Branches {
			fmt.Fprintf(&sb, " %s=%d", b, snap.Branches.Get(b))
		}
		sb.WriteString("\n")
		if len(snap.Scheduled) == 0 {
			sb.WriteString("scheduled: none\n")
		}
		for _, s := range snap.Scheduled {
			fmt.Fprintf(&sb, "scheduled: email %s on day %d\n", s.EmailID, s.TargetDay)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- inbox ---

func inboxTool() mcp.Tool {
	return mcp.NewTool("inbox",
		mcp.WithDescription("List delivered emails, newest first, with their instance IDs and engagement status."),
		mcp.WithString("status",
			mcp.Description("Only list emails with this status"),
			mcp.Enum(string(domain.StatusUnread), string(domain.StatusOpened), string(domain.StatusClicked)),
		),
	)
}

func inboxHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status := domain.MessageStatus(req.GetString("status", ""))
		var rows []domain.MessageView
		for _, m := range engine.Snapshot().Inbox {
			if status == "" || m.Status == status {
				rows = append(rows, m)
			}
		}
		return formatEntities(rows, formatMessage)
	}
}

// --- timeline ---

func timelineTool() mcp.Tool {
	return mcp.NewTool("timeline",
		mcp.WithDescription("Show the journey log, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries (default 20)"),
		),
	)
}

func timelineHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", 20)
		entries := engine.Snapshot().Timeline
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
		return formatEntities(entries, func(e domain.TimelineEntry) string {
			return fmt.Sprintf("day %d  %s  %s", e.Day, e.Title, e.Description)
		})
	}
}

// --- preview ---

func previewTool() mcp.Tool {
	return mcp.NewTool("preview",
		mcp.WithDescription("Render a delivered email: subject, timing, status and HTML body."),
		mcp.WithString("instance_id",
			mcp.Description("Instance ID from the inbox tool"),
			mcp.Required(),
		),
	)
}

func previewHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("instance_id", "")
		if err := application.ValidateRequired("instanceID", id); err != nil {
			return toolError(err)
		}
		p, err := engine.Preview(ctx, id)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "email: %s (%s)\nsubject: %s\n", p.EmailID, p.Kind, p.Subject)
		if p.Badge != "" {
			fmt.Fprintf(&sb, "badge: %s\n", p.Badge)
		}
		fmt.Fprintf(&sb, "timing: %s\nstatus: %s\n\n%s", p.Timing, p.Status, p.HTML)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- flow ---

func flowTool() mcp.Tool {
	return mcp.NewTool("flow",
		mcp.WithDescription("Show the journey flow: each main email with its first reminder and their send state."),
	)
}

func flowHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return formatEntities(engine.Flow(), func(n domain.FlowNode) string {
			line := formatStep(n.Main)
			if n.Reminder != nil {
				line += "\n  └ " + formatStep(*n.Reminder)
			}
			return line
		})
	}
}

// --- catalog ---

func catalogTool() mcp.Tool {
	return mcp.NewTool("catalog",
		mcp.WithDescription("List the programs available to switch_program."),
	)
}

func catalogHandler(engine ports.JourneyEngine) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		catalog := engine.Catalog()
		active := engine.Snapshot().Program
		return formatEntities(catalog.Keys(), func(key string) string {
			p, _ := catalog.Program(key)
			marker := " "
			if key == active {
				marker = "*"
			}
			return fmt.Sprintf("%s %s  %s  (%d emails)", marker, p.Key, p.Name, len(p.Emails()))
		})
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatMessage(m domain.MessageView) string {
	return fmt.Sprintf("%s  email %s  day %d  %s  %s", m.InstanceID, m.EmailID, m.SentOnDay, m.Status, m.Subject)
}

func formatStep(s domain.FlowStep) string {
	state := "pending"
	if s.Sent {
		state = string(s.Status)
	}
	return fmt.Sprintf("%s  %s  [%s]", s.EmailID, s.Subject, state)
}
