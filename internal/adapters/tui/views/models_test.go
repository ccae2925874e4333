package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	_ tea.Model = (*DashboardModel)(nil)
	_ tea.Model = (*PreviewModel)(nil)
	_ tea.Model = (*FlowModel)(nil)
	_ tea.Model = (*ProgramsModel)(nil)
	_ tea.Model = (*HelpModel)(nil)
)

func TestViewsInitWithoutCommand(t *testing.T) {
	models := map[string]tea.Model{
		"preview":  NewPreviewModel(nil, nil),
		"flow":     NewFlowModel(nil),
		"programs": NewProgramsModel(nil),
		"help":     NewHelpModel(),
	}
	for name, m := range models {
		t.Run(name, func(t *testing.T) {
			if cmd := m.Init(); cmd != nil {
				t.Errorf("%s Init should not start a command", name)
			}
		})
	}
}
