package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"dripsim/internal/adapters/tui/styles"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// previewLoadedMsg carries a rendered preview
type previewLoadedMsg struct {
	preview domain.EmailPreview
	err     error
}

// PreviewModel shows one sent email
type PreviewModel struct {
	ViewState
	engine     ports.JourneyEngine
	copyText   func(string) error
	instanceID string
	preview    domain.EmailPreview
	loaded     bool
	showSource bool
	viewport   viewport.Model
}

// NewPreviewModel creates a preview view. copyText writes to the clipboard.
func NewPreviewModel(engine ports.JourneyEngine, copyText func(string) error) *PreviewModel {
	return &PreviewModel{
		engine:   engine,
		copyText: copyText,
		viewport: viewport.New(defaultWidth, defaultHeight-8),
	}
}

// Init initializes the view
func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

// InstanceID returns the message being shown
func (m *PreviewModel) InstanceID() string {
	return m.instanceID
}

// Load starts rendering instanceID
func (m *PreviewModel) Load(instanceID string) tea.Cmd {
	m.instanceID = instanceID
	m.loaded = false
	m.ClearMessage()
	engine := m.engine
	return func() tea.Msg {
		p, err := engine.Preview(context.Background(), instanceID)
		return previewLoadedMsg{preview: p, err: err}
	}
}

// SetSize updates the view dimensions
func (m *PreviewModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.viewport.Width = max(width-4, 20)
	m.viewport.Height = max(height-10, 5)
	m.refreshContent()
}

// Refresh picks up status changes of the shown message
func (m *PreviewModel) Refresh(snap domain.Snapshot) {
	if msg, ok := snap.Message(m.instanceID); ok {
		m.preview.Status = msg.Status
	}
}

// Update handles messages for the preview view
func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case previewLoadedMsg:
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		if msg.preview.InstanceID != m.instanceID {
			return m, nil
		}
		m.preview = msg.preview
		m.loaded = true
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case SnapshotMsg:
		m.Refresh(msg.Snapshot)
		return m, nil

	case ResultMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
		} else {
			m.SetMessage(msg.Message, false)
		}
		m.Refresh(m.engine.Snapshot())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PreviewKeys.Back):
			return m, func() tea.Msg { return SwitchToDashboardMsg{} }

		case key.Matches(msg, PreviewKeys.Source):
			m.showSource = !m.showSource
			m.refreshContent()
			return m, nil

		case key.Matches(msg, PreviewKeys.Copy):
			if !m.loaded {
				return m, nil
			}
			html := m.preview.HTML
			copyText := m.copyText
			return m, func() tea.Msg {
				if copyText == nil {
					return result("", fmt.Errorf("clipboard is not available"))
				}
				if err := copyText(html); err != nil {
					return result("", fmt.Errorf("failed to copy: %w", err))
				}
				return result(fmt.Sprintf("Copied %d bytes of HTML", len(html)), nil)
			}

		case key.Matches(msg, PreviewKeys.Browser):
			id := m.instanceID
			return m, func() tea.Msg { return OpenBrowserMsg{InstanceID: id} }

		case key.Matches(msg, PreviewKeys.Editor):
			id := m.instanceID
			return m, func() tea.Msg { return OpenEditorMsg{InstanceID: id} }

		case key.Matches(msg, PreviewKeys.Open):
			return m, engagementCmd(m.engine, m.instanceID, domain.EngagementOpened, false)

		case key.Matches(msg, PreviewKeys.Click):
			return m, engagementCmd(m.engine, m.instanceID, domain.EngagementClicked, false)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *PreviewModel) refreshContent() {
	if !m.loaded {
		return
	}
	if m.showSource {
		m.viewport.SetContent(m.preview.HTML)
		return
	}
	m.viewport.SetContent(HTMLToText(m.preview.HTML))
}

// View renders the preview
func (m *PreviewModel) View() string {
	v := NewViewBuilder()
	if !m.loaded {
		v.Title("Email preview")
		if m.Message != "" {
			v.Message(m.Message, m.MessageErr)
		} else {
			v.Muted("Loading...")
		}
		v.Help(PreviewKeys.Back)
		return v.String()
	}

	p := m.preview
	title := fmt.Sprintf("Email %s  %s", p.EmailID, RenderSubject(p.Kind, p.Subject))
	if p.Badge != "" {
		title += " " + styles.Badge.Render(p.Badge)
	}
	v.Title(title)
	v.Line(strings.Join([]string{
		styles.StatusText.Render(string(p.Kind)),
		styles.StatusText.Render(p.Timing),
		RenderStatus(p.Status),
	}, styles.HelpSeparator.String()))
	v.BlankLine()
	v.Line(m.viewport.View())
	v.Muted(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100))
	v.Message(m.Message, m.MessageErr)
	v.Help(PreviewKeys.Back, PreviewKeys.Copy, PreviewKeys.Source, PreviewKeys.Browser, PreviewKeys.Editor, PreviewKeys.Open, PreviewKeys.Click)
	return v.String()
}
