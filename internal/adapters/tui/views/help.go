package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dripsim/internal/adapters/tui/styles"
	"dripsim/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToDashboardMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Drip Campaign Simulator Help"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("One simulated recipient walking through an email journey"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Playback"))
	b.WriteString("\n")
	b.WriteString(helpBinding(DashboardKeys.Play, "Start or stop auto-play"))
	b.WriteString(helpBinding(DashboardKeys.Advance, "Advance one day"))
	b.WriteString(helpBinding(DashboardKeys.Faster, "Faster (speed 1-11)"))
	b.WriteString(helpBinding(DashboardKeys.Slower, "Slower"))
	b.WriteString(helpBinding(DashboardKeys.Mode, "Cycle behavior: never open, always open, random"))
	b.WriteString(helpBinding(DashboardKeys.Reset, "Restart the journey at day 0"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Inbox"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpBinding(DashboardKeys.Open, "Mark opened"))
	b.WriteString(helpBinding(DashboardKeys.Click, "Mark clicked (also opens)"))
	b.WriteString(helpBinding(DashboardKeys.ToggleOpen, "Toggle opened"))
	b.WriteString(helpBinding(DashboardKeys.ToggleClick, "Toggle clicked"))
	b.WriteString(helpBinding(DashboardKeys.Preview, "Preview email"))
	b.WriteString(helpBinding(DashboardKeys.Browser, "Open in browser"))
	b.WriteString(helpBinding(DashboardKeys.Editor, "Edit template"))
	b.WriteString(helpBinding(PreviewKeys.Copy, "Copy HTML (preview)"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpBinding(DashboardKeys.Flow, "Journey flow"))
	b.WriteString(helpBinding(DashboardKeys.Programs, "Switch program"))
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Journey rules"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Engaging with an email schedules the next main email for the next day."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  After " + strconv.Itoa(domain.WaitDays) + " idle days a reminder goes out, or the journey moves on."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpBinding(b key.Binding, desc string) string {
	return helpLine(b.Help().Key, desc)
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
