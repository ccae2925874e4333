package browser

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"dripsim/internal/domain"
)

func TestBuildURI(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	tests := []struct {
		name    string
		path    string
		wantURI string
		wantErr bool
	}{
		{
			name:    "simple file path",
			path:    "/tmp/dripsim/email-1-abc.html",
			wantURI: "file:///tmp/dripsim/email-1-abc.html",
		},
		{
			name:    "path with spaces",
			path:    "/Users/test/My Previews/email-2a-x.html",
			wantURI: "file:///Users/test/My%20Previews/email-2a-x.html",
		},
		{
			name:    "relative path",
			path:    "previews/email-1.html",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURI(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("BuildURI() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.wantURI {
				t.Errorf("BuildURI() = %q, want %q", got, tt.wantURI)
			}
		})
	}
}

func TestPreviewFileName(t *testing.T) {
	p := domain.EmailPreview{InstanceID: "../0f3c-9a/b", EmailID: "3a"}
	if got := PreviewFileName(p); got != "email-3a-0f3c-9ab.html" {
		t.Errorf("PreviewFileName() = %q", got)
	}
}

func TestOpener_OpenPreview(t *testing.T) {
	dir := t.TempDir()
	o := NewOpener(dir)
	var gotName string
	var gotArgs []string
	o.run = func(name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	p := domain.EmailPreview{InstanceID: "msg-1", EmailID: "1", HTML: "<html><body>hi</body></html>"}
	path, err := o.OpenPreview(p)
	if err != nil {
		if strings.Contains(err.Error(), "unsupported operating system") {
			t.Skip(err)
		}
		t.Fatalf("OpenPreview failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("preview not written: %v", err)
	}
	if string(data) != p.HTML {
		t.Errorf("unexpected preview body %q", data)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("preview written to %s, want under %s", path, dir)
	}
	if gotName == "" || len(gotArgs) == 0 || !strings.HasPrefix(gotArgs[len(gotArgs)-1], "file://") {
		t.Errorf("unexpected launch %s %v", gotName, gotArgs)
	}
}
