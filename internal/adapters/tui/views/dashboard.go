package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dripsim/internal/adapters/tui/styles"
	"dripsim/internal/application/commands"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	barWidth      = 20
	sideWidth     = 44
)

// DashboardModel shows the inbox, the branch bars and the journey log
type DashboardModel struct {
	ViewState
	engine    ports.JourneyEngine
	snap      domain.Snapshot
	selected  string
	paginator *Paginator
	spinner   spinner.Model
	bars      map[domain.Branch]progress.Model
}

// NewDashboardModel creates a dashboard over engine
func NewDashboardModel(engine ports.JourneyEngine) *DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	bars := make(map[domain.Branch]progress.Model, len(domain.Branches))
	for _, b := range domain.Branches {
		bars[b] = progress.New(
			progress.WithSolidFill(string(styles.BranchColor(b))),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		)
	}

	m := &DashboardModel{
		engine:    engine,
		paginator: NewPaginator(10),
		spinner:   s,
		bars:      bars,
	}
	m.SetSnapshot(engine.Snapshot())
	return m
}

// Init starts the spinner when autoplay is already running
func (m *DashboardModel) Init() tea.Cmd {
	if m.snap.Autoplay {
		return m.spinner.Tick
	}
	return nil
}

// Snapshot returns the state currently shown
func (m *DashboardModel) Snapshot() domain.Snapshot {
	return m.snap
}

// Selected returns the instance id under the cursor, or ""
func (m *DashboardModel) Selected() string {
	return m.selected
}

// SetSnapshot replaces the shown state, keeping the cursor on the same
// message when it is still in the inbox
func (m *DashboardModel) SetSnapshot(snap domain.Snapshot) {
	if snap.Version < m.snap.Version {
		return
	}
	m.snap = snap
	m.paginator.SetTotal(len(snap.Inbox))
	for i, msg := range snap.Inbox {
		if msg.InstanceID == m.selected {
			m.paginator.SetCursor(i)
			return
		}
	}
	m.paginator.SetCursor(0)
	m.syncSelected()
}

func (m *DashboardModel) syncSelected() {
	m.selected = ""
	if c := m.paginator.Cursor(); c < len(m.snap.Inbox) {
		m.selected = m.snap.Inbox[c].InstanceID
	}
}

// SetSize updates the view dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// header, panel borders, message and help lines
	m.paginator.SetPageSize(max(height-12, 3))
}

// Update handles messages for the dashboard
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.snap.Autoplay {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case SnapshotMsg:
		wasPlaying := m.snap.Autoplay
		m.SetSnapshot(msg.Snapshot)
		if !wasPlaying && m.snap.Autoplay {
			return m, m.spinner.Tick
		}
		return m, nil

	case ResultMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
		} else {
			m.SetMessage(msg.Message, false)
		}
		return m.Update(SnapshotMsg{Snapshot: m.engine.Snapshot()})

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()
	ctx := context.Background()

	switch {
	case key.Matches(msg, DashboardKeys.Quit):
		return tea.Quit

	case key.Matches(msg, DashboardKeys.Up):
		m.paginator.CursorUp()
		m.syncSelected()

	case key.Matches(msg, DashboardKeys.Down):
		m.paginator.CursorDown()
		m.syncSelected()

	case key.Matches(msg, DashboardKeys.NextPage):
		m.paginator.NextPage()
		m.syncSelected()

	case key.Matches(msg, DashboardKeys.PrevPage):
		m.paginator.PrevPage()
		m.syncSelected()

	case key.Matches(msg, DashboardKeys.Play):
		enable := !m.snap.Autoplay
		return func() tea.Msg {
			res, err := commands.NewAutoplayCommand(m.engine, enable).Execute(ctx)
			if err != nil {
				return result("", err)
			}
			return result(res.Message, nil)
		}

	case key.Matches(msg, DashboardKeys.Advance):
		return func() tea.Msg {
			res, err := commands.NewAdvanceCommand(m.engine, 1).Execute(ctx)
			if err != nil {
				return result("", err)
			}
			return result(res.Message, nil)
		}

	case key.Matches(msg, DashboardKeys.Reset):
		return func() tea.Msg {
			res, err := commands.NewResetCommand(m.engine).Execute(ctx)
			if err != nil {
				return result("", err)
			}
			return result(res.Message, nil)
		}

	case key.Matches(msg, DashboardKeys.Faster), key.Matches(msg, DashboardKeys.Slower):
		speed := m.snap.Speed + 1
		if key.Matches(msg, DashboardKeys.Slower) {
			speed = m.snap.Speed - 1
		}
		if speed.Clamp() != speed {
			m.SetMessage(fmt.Sprintf("Speed is already %d", m.snap.Speed), false)
			return nil
		}
		return func() tea.Msg {
			res, err := commands.NewSetSpeedCommand(m.engine, int(speed)).Execute(ctx)
			if err != nil {
				return result("", err)
			}
			return result(res.Message, nil)
		}

	case key.Matches(msg, DashboardKeys.Mode):
		next := m.snap.Mode.Next()
		return func() tea.Msg {
			res, err := commands.NewSetModeCommand(m.engine, string(next)).Execute(ctx)
			if err != nil {
				return result("", err)
			}
			return result(res.Message, nil)
		}

	case key.Matches(msg, DashboardKeys.Open):
		return m.engagementCmd(domain.EngagementOpened, false)
	case key.Matches(msg, DashboardKeys.Click):
		return m.engagementCmd(domain.EngagementClicked, false)
	case key.Matches(msg, DashboardKeys.ToggleOpen):
		return m.engagementCmd(domain.EngagementOpened, true)
	case key.Matches(msg, DashboardKeys.ToggleClick):
		return m.engagementCmd(domain.EngagementClicked, true)

	case key.Matches(msg, DashboardKeys.Preview):
		if id := m.selected; id != "" {
			return func() tea.Msg { return SwitchToPreviewMsg{InstanceID: id} }
		}
	case key.Matches(msg, DashboardKeys.Browser):
		if id := m.selected; id != "" {
			return func() tea.Msg { return OpenBrowserMsg{InstanceID: id} }
		}
	case key.Matches(msg, DashboardKeys.Editor):
		if id := m.selected; id != "" {
			return func() tea.Msg { return OpenEditorMsg{InstanceID: id} }
		}

	case key.Matches(msg, DashboardKeys.Flow):
		return func() tea.Msg { return SwitchToFlowMsg{} }
	case key.Matches(msg, DashboardKeys.Programs):
		return func() tea.Msg { return SwitchToProgramsMsg{} }
	case key.Matches(msg, DashboardKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}
	return nil
}

// engagementCmd marks or toggles the selected message
func (m *DashboardModel) engagementCmd(kind domain.EngagementKind, toggle bool) tea.Cmd {
	id := m.selected
	if id == "" {
		m.SetMessage("No email selected", true)
		return nil
	}
	return engagementCmd(m.engine, id, kind, toggle)
}

func engagementCmd(engine ports.JourneyEngine, id string, kind domain.EngagementKind, toggle bool) tea.Cmd {
	return func() tea.Msg {
		res, err := commands.NewMarkEngagementCommand(engine, id, string(kind), toggle).Execute(context.Background())
		if err != nil {
			return result("", err)
		}
		return result(res.Message, nil)
	}
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	width, height := m.Width, m.Height
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}
	inboxWidth := max(width-sideWidth-8, 30)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	side := lipgloss.JoinVertical(lipgloss.Left,
		m.renderBranches(),
		m.renderTimeline(max(height-18, 3)),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderInbox(inboxWidth), " ", side))
	b.WriteString("\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}
	b.WriteString(RenderHelpLine(
		DashboardKeys.Play, DashboardKeys.Advance, DashboardKeys.Open, DashboardKeys.Click,
		DashboardKeys.Preview, DashboardKeys.Mode, DashboardKeys.Help, DashboardKeys.Quit,
	))
	return styles.App.Render(b.String())
}

func (m *DashboardModel) renderHeader() string {
	name := m.snap.Program
	if p, ok := m.engine.Catalog().Program(m.snap.Program); ok {
		name = p.Name
	}

	play := styles.Paused.Render("⏸ paused")
	if m.snap.Autoplay {
		play = m.spinner.View() + styles.Playing.Render("playing")
	}
	status := strings.Join([]string{
		styles.StatusKey.Render(fmt.Sprintf("Day %d", m.snap.Day)),
		styles.StatusText.Render(fmt.Sprintf("speed %d (%s, %.1f days/s)", m.snap.Speed, m.snap.Speed.Label(), m.snap.Speed.DaysPerSecond())),
		styles.StatusText.Render("behavior " + string(m.snap.Mode)),
		play,
	}, "  ")

	return styles.Title.Render("Drip Campaign Simulator") + " " + styles.Subtitle.Render(name) + "\n" + status
}

func (m *DashboardModel) renderInbox(width int) string {
	var b strings.Builder
	stats := m.snap.InboxStats
	b.WriteString(styles.PanelTitle.Render(fmt.Sprintf("Inbox  %d total • %d opened • %d clicked", stats.Total, stats.Opened, stats.Clicked)))
	b.WriteString("\n")

	if len(m.snap.Inbox) == 0 {
		b.WriteString(styles.MutedText.Render("No emails yet. Press n to advance a day or space to play."))
		return styles.Panel.Width(width).Render(b.String())
	}

	start, end := m.paginator.VisibleRange()
	subjectWidth := max(width-26, 10)
	for i := start; i < end; i++ {
		msg := m.snap.Inbox[i]
		line := fmt.Sprintf("%-4s %-*s Day %-4d ", msg.EmailID, subjectWidth, Truncate(msg.Subject, subjectWidth), msg.SentOnDay)
		switch {
		case i == m.paginator.Cursor():
			line = styles.RowSelected.Render(line)
		case msg.Status == domain.StatusUnread:
			line = styles.RowUnread.Render(line)
		case msg.Kind == domain.KindReminder:
			line = styles.Reminder.Render(line)
		default:
			line = styles.RowRead.Render(line)
		}
		b.WriteString(line)
		b.WriteString(RenderStatus(msg.Status))
		b.WriteString("\n")
	}
	if pages := m.paginator.TotalPages(); pages > 1 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), pages)))
	}
	return styles.Panel.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *DashboardModel) renderBranches() string {
	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("Branches"))
	for _, br := range domain.Branches {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-11s %s %3d", br.Label(), m.bars[br].ViewAs(m.snap.Branches.Share(br)), m.snap.Branches.Get(br)))
	}
	return styles.Panel.Width(sideWidth).Render(b.String())
}

func (m *DashboardModel) renderTimeline(rows int) string {
	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("Journey log"))
	entries := m.snap.Timeline
	if len(entries) > rows {
		entries = entries[:rows]
	}
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(styles.TimelineDay.Render(fmt.Sprintf("Day %d", e.Day)))
		b.WriteString(styles.TimelineTitle.Render(e.Title))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("        " + Truncate(e.Description, sideWidth-10)))
	}
	return styles.Panel.Width(sideWidth).Render(b.String())
}
