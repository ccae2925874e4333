package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dripsim/internal/adapters/tui/styles"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// FlowModel draws the journey as mains with their first reminder
type FlowModel struct {
	ViewState
	engine ports.JourneyEngine
}

// NewFlowModel creates a flow view
func NewFlowModel(engine ports.JourneyEngine) *FlowModel {
	return &FlowModel{engine: engine}
}

// Init initializes the view
func (m *FlowModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the flow view
func (m *FlowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, ListKeys.Back) {
			return m, func() tea.Msg { return SwitchToDashboardMsg{} }
		}
	}
	return m, nil
}

// View renders the flow
func (m *FlowModel) View() string {
	snap := m.engine.Snapshot()
	v := NewViewBuilder()
	v.Title("Journey flow")
	if p, ok := m.engine.Catalog().Program(snap.Program); ok {
		v.Subtitle(fmt.Sprintf("%s • day %d", p.Name, snap.Day))
	}

	nodes := m.engine.Flow()
	for i, n := range nodes {
		v.Line(renderFlowStep("●", n.Main))
		if n.Reminder != nil {
			v.Line(renderFlowStep("  └─", *n.Reminder))
		}
		if i < len(nodes)-1 {
			v.Muted("  │")
		}
	}
	v.Help(ListKeys.Back)
	return v.String()
}

func renderFlowStep(prefix string, s domain.FlowStep) string {
	state := styles.MutedText.Render("pending")
	if s.Sent {
		state = RenderStatus(s.Status)
	}
	kind := domain.KindMain
	if s.EmailID.IsReminder() {
		kind = domain.KindReminder
	}
	return fmt.Sprintf("%s %-4s %s  %s", styles.MutedText.Render(prefix), s.EmailID, RenderSubject(kind, s.Subject), state)
}
