// Package tui is the interactive terminal front end of the simulator.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"dripsim/internal/adapters/tui/views"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewPreview
	ViewFlow
	ViewPrograms
	ViewHelp
)

// Deps are the optional collaborators of the app
type Deps struct {
	Editor  ports.EditorOpener
	Browser ports.BrowserOpener
	// TemplatePath resolves the editable template of a sent message
	TemplatePath func(instanceID string) (string, error)
	// Clipboard writes text to the system clipboard
	Clipboard func(string) error
}

// stateChangedMsg reports that the engine state moved
type stateChangedMsg struct{}

type editorFinishedMsg struct{ err error }

// App is the main TUI application model
type App struct {
	engine      ports.JourneyEngine
	deps        Deps
	changes     chan struct{}
	unsubscribe func()

	state     ViewState
	dashboard *views.DashboardModel
	preview   *views.PreviewModel
	flow      *views.FlowModel
	programs  *views.ProgramsModel
	help      *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application and subscribes it to engine changes
func NewApp(engine ports.JourneyEngine, deps Deps) *App {
	a := &App{
		engine:    engine,
		deps:      deps,
		changes:   make(chan struct{}, 1),
		state:     ViewDashboard,
		dashboard: views.NewDashboardModel(engine),
		preview:   views.NewPreviewModel(engine, deps.Clipboard),
		flow:      views.NewFlowModel(engine),
		programs:  views.NewProgramsModel(engine),
		help:      views.NewHelpModel(),
	}
	a.unsubscribe = engine.Subscribe(func(domain.Snapshot) { a.notify() })
	return a
}

// Close stops autoplay and detaches from the engine
func (a *App) Close() {
	a.engine.StopAutoplay()
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitForChange(), a.dashboard.Init())
}

// waitForChange blocks until the engine notifies. Notifications coalesce:
// the channel holds at most one pending signal.
func (a *App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-a.changes
		return stateChangedMsg{}
	}
}

func (a *App) notify() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.preview.SetSize(msg.Width, msg.Height)
		a.flow.SetSize(msg.Width, msg.Height)
		a.programs.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case stateChangedMsg:
		snap := views.SnapshotMsg{Snapshot: a.engine.Snapshot()}
		_, cmd := a.dashboard.Update(snap)
		a.preview.Update(snap)
		return a, tea.Batch(cmd, a.waitForChange())

	// View switching messages
	case views.SwitchToDashboardMsg:
		a.state = ViewDashboard
		return a, nil

	case views.SwitchToPreviewMsg:
		a.state = ViewPreview
		return a, a.preview.Load(msg.InstanceID)

	case views.SwitchToFlowMsg:
		a.state = ViewFlow
		return a, nil

	case views.SwitchToProgramsMsg:
		a.state = ViewPrograms
		a.programs.Reload()
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.ResultMsg:
		switch a.state {
		case ViewPreview:
			_, cmd := a.preview.Update(msg)
			return a, cmd
		case ViewPrograms:
			if msg.Err != nil {
				_, cmd := a.programs.Update(msg)
				return a, cmd
			}
			a.state = ViewDashboard
		}
		_, cmd := a.dashboard.Update(msg)
		return a, cmd

	case views.OpenBrowserMsg:
		return a, a.openBrowser(msg.InstanceID)

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.InstanceID)

	case editorFinishedMsg:
		if msg.err != nil {
			return a, resultCmd("", fmt.Errorf("editor: %w", msg.err))
		}
		return a, resultCmd("Template saved; previews reload on change", nil)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewDashboard:
		_, cmd = a.dashboard.Update(msg)
	case ViewPreview:
		_, cmd = a.preview.Update(msg)
	case ViewFlow:
		_, cmd = a.flow.Update(msg)
	case ViewPrograms:
		_, cmd = a.programs.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func resultCmd(message string, err error) tea.Cmd {
	return func() tea.Msg {
		return views.ResultMsg{Message: message, Err: err}
	}
}

func (a *App) openBrowser(instanceID string) tea.Cmd {
	if a.deps.Browser == nil {
		return resultCmd("", fmt.Errorf("no browser opener configured"))
	}
	engine, browser := a.engine, a.deps.Browser
	return func() tea.Msg {
		p, err := engine.Preview(context.Background(), instanceID)
		if err != nil {
			return views.ResultMsg{Err: err}
		}
		path, err := browser.OpenPreview(p)
		if err != nil {
			return views.ResultMsg{Err: fmt.Errorf("failed to open browser: %w", err)}
		}
		return views.ResultMsg{Message: "Opened " + path}
	}
}

func (a *App) openEditor(instanceID string) tea.Cmd {
	if a.deps.Editor == nil || a.deps.TemplatePath == nil {
		return resultCmd("", fmt.Errorf("template editing needs a local templates directory"))
	}

	path, err := a.deps.TemplatePath(instanceID)
	if err != nil {
		return resultCmd("", err)
	}
	cmd, err := a.deps.Editor.Command(path)
	if err != nil {
		return resultCmd("", err)
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPreview:
		return a.preview.View()
	case ViewFlow:
		return a.flow.View()
	case ViewPrograms:
		return a.programs.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.dashboard.View()
	}
}
