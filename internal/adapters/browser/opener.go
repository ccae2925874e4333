// Package browser shows rendered email previews in the system web browser.
package browser

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// Opener implements ports.BrowserOpener
type Opener struct {
	dir string
	run func(name string, args ...string) error
}

var _ ports.BrowserOpener = (*Opener)(nil)

// NewOpener creates an opener that writes previews under dir.
// An empty dir uses a dripsim folder in the system temp directory.
func NewOpener(dir string) *Opener {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "dripsim")
	}
	return &Opener{
		dir: dir,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// OpenFile opens an absolute file path in the default browser
func (o *Opener) OpenFile(path string) error {
	uri, err := BuildURI(path)
	if err != nil {
		return err
	}
	return o.openURI(uri)
}

// OpenPreview writes p to disk and opens it
func (o *Opener) OpenPreview(p domain.EmailPreview) (string, error) {
	path, err := o.WritePreview(p)
	if err != nil {
		return "", err
	}
	return path, o.OpenFile(path)
}

// WritePreview stores the preview HTML and returns its path
func (o *Opener) WritePreview(p domain.EmailPreview) (string, error) {
	if err := os.MkdirAll(o.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create preview dir: %w", err)
	}
	path := filepath.Join(o.dir, PreviewFileName(p))
	if err := os.WriteFile(path, []byte(p.HTML), 0644); err != nil {
		return "", fmt.Errorf("failed to write preview: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve preview path: %w", err)
	}
	return abs, nil
}

// PreviewFileName is email-<id>-<instance>.html with unsafe characters removed
func PreviewFileName(p domain.EmailPreview) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return -1
		}
	}, p.InstanceID)
	return fmt.Sprintf("email-%s-%s.html", p.EmailID, clean)
}

// BuildURI constructs the file:// URI for an absolute path
func BuildURI(path string) (string, error) {
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("path must be absolute: %s", path)
	}
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		// windows drive letter
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String(), nil
}

func (o *Opener) openURI(uri string) error {
	switch runtime.GOOS {
	case "darwin":
		return o.run("open", uri)
	case "linux", "freebsd", "openbsd":
		return o.run("xdg-open", uri)
	case "windows":
		return o.run("rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
