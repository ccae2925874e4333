package styles

import (
	"github.com/charmbracelet/lipgloss"

	"dripsim/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Info      = lipgloss.Color("#60A5FA") // Blue
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Branch colors
	BranchMain       = lipgloss.Color("#6366F1") // Indigo
	BranchReminder   = lipgloss.Color("#F97316") // Orange
	BranchConversion = lipgloss.Color("#10B981") // Green
	BranchColdLeads  = lipgloss.Color("#6B7280") // Gray

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	PanelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Info)

	// Inbox rows
	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowUnread = lipgloss.NewStyle().
			Bold(true)

	RowRead = lipgloss.NewStyle()

	Reminder = lipgloss.NewStyle().
			Foreground(Warning)

	StatusUnread  = lipgloss.NewStyle().Foreground(Muted)
	StatusOpened  = lipgloss.NewStyle().Foreground(Info)
	StatusClicked = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	Badge = lipgloss.NewStyle().
		Background(Warning).
		Foreground(Black).
		Padding(0, 1)

	// Timeline
	TimelineDay   = lipgloss.NewStyle().Foreground(Muted).Width(8)
	TimelineTitle = lipgloss.NewStyle().Bold(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	Playing = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Paused = lipgloss.NewStyle().
		Foreground(Warning)

	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Spinner = lipgloss.NewStyle().Foreground(Primary)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// BranchColor returns the bar color of a branch
func BranchColor(b domain.Branch) lipgloss.Color {
	switch b {
	case domain.BranchMain:
		return BranchMain
	case domain.BranchReminder:
		return BranchReminder
	case domain.BranchConversion:
		return BranchConversion
	case domain.BranchColdLeads:
		return BranchColdLeads
	default:
		return Primary
	}
}

// Status returns the style of a message status label
func Status(s domain.MessageStatus) lipgloss.Style {
	switch s {
	case domain.StatusClicked:
		return StatusClicked
	case domain.StatusOpened:
		return StatusOpened
	default:
		return StatusUnread
	}
}
