package ports

import (
	"os/exec"

	"dripsim/internal/domain"
)

// EditorOpener defines the interface for opening files in an external editor
type EditorOpener interface {
	// OpenFile opens the specified file in the user's preferred editor
	// It uses $EDITOR environment variable, falling back to common editors
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening a file in the editor
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}

// BrowserOpener opens a rendered email in the system web browser
type BrowserOpener interface {
	// OpenFile opens an absolute file path through a file:// URI
	OpenFile(path string) error

	// OpenPreview writes the preview HTML to disk, opens it and returns the path
	OpenPreview(p domain.EmailPreview) (string, error)
}
