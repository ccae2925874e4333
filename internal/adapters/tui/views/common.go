package views

import "dripsim/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToDashboardMsg struct{}

type SwitchToPreviewMsg struct {
	InstanceID string
}

type SwitchToFlowMsg struct{}

type SwitchToProgramsMsg struct{}

type SwitchToHelpMsg struct{}

// OpenBrowserMsg asks the app to show a message in the system browser
type OpenBrowserMsg struct {
	InstanceID string
}

// OpenEditorMsg asks the app to edit the template behind a message
type OpenEditorMsg struct {
	InstanceID string
}

// ResultMsg carries the outcome of an engine command
type ResultMsg struct {
	Message string
	Err     error
}

// SnapshotMsg delivers a fresh engine snapshot to the views
type SnapshotMsg struct {
	Snapshot domain.Snapshot
}

func result(msg string, err error) ResultMsg {
	return ResultMsg{Message: msg, Err: err}
}
