// Package editor opens email template sources in the user's text editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"

	"dripsim/internal/ports"
)

var _ ports.EditorOpener = (*Opener)(nil)

// Opener implements ports.EditorOpener
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv, lookPath: exec.LookPath}
}

// OpenFile opens a file in the user's preferred editor and waits for it
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor,
// for use with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot edit %s: %w", path, err)
	}
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// findEditor prefers $DRIPSIM_EDITOR, then $EDITOR, then $VISUAL
func (o *Opener) findEditor() string {
	for _, key := range []string{"DRIPSIM_EDITOR", "EDITOR", "VISUAL"} {
		if editor := o.getenv(key); editor != "" {
			return editor
		}
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano", "code"} {
		if path, err := o.lookPath(editor); err == nil {
			return path
		}
	}
	return ""
}
