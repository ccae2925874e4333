package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dripsim/internal/adapters/tui/styles"
	"dripsim/internal/application/commands"
	"dripsim/internal/ports"
)

// ProgramsModel lets the user pick another catalog program
type ProgramsModel struct {
	ViewState
	engine    ports.JourneyEngine
	keys      []string
	paginator *Paginator
}

// NewProgramsModel creates the program picker
func NewProgramsModel(engine ports.JourneyEngine) *ProgramsModel {
	return &ProgramsModel{
		engine:    engine,
		paginator: NewPaginator(10),
	}
}

// Reload reads the catalog and puts the cursor on the active program
func (m *ProgramsModel) Reload() {
	m.keys = m.engine.Catalog().Keys()
	m.paginator.SetTotal(len(m.keys))
	active := m.engine.Snapshot().Program
	for i, k := range m.keys {
		if k == active {
			m.paginator.SetCursor(i)
		}
	}
}

// Init initializes the view
func (m *ProgramsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the program picker
func (m *ProgramsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.paginator.SetPageSize(max(msg.Height-8, 3))

	case ResultMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ListKeys.Up):
			m.paginator.CursorUp()
		case key.Matches(msg, ListKeys.Down):
			m.paginator.CursorDown()
		case key.Matches(msg, ListKeys.Back):
			return m, func() tea.Msg { return SwitchToDashboardMsg{} }
		case key.Matches(msg, ListKeys.Select):
			if len(m.keys) == 0 {
				return m, nil
			}
			programKey := m.keys[m.paginator.Cursor()]
			engine := m.engine
			return m, func() tea.Msg {
				res, err := commands.NewSwitchProgramCommand(engine, programKey).Execute(context.Background())
				if err != nil {
					return result("", err)
				}
				return result(res.Message, nil)
			}
		}
	}
	return m, nil
}

// View renders the program list
func (m *ProgramsModel) View() string {
	v := NewViewBuilder()
	v.Title("Programs")
	v.Subtitle("Switching restarts the journey at day 0")

	active := m.engine.Snapshot().Program
	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		p, ok := m.engine.Catalog().Program(m.keys[i])
		if !ok {
			continue
		}
		marker := "  "
		if p.Key == active {
			marker = "● "
		}
		line := fmt.Sprintf("%s%-12s %s (%d emails)", marker, p.Key, p.Name, len(p.Emails()))
		if i == m.paginator.Cursor() {
			line = styles.RowSelected.Render(line)
		}
		v.Line(line)
		if p.Description != "" {
			v.Muted("    " + Truncate(p.Description, max(m.Width-12, 40)))
		}
	}
	v.Message(m.Message, m.MessageErr)
	v.Help(ListKeys.Up, ListKeys.Down, ListKeys.Select, ListKeys.Back)
	return v.String()
}
