package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dripsim/internal/domain"
)

func domainID(s string) domain.EmailID {
	return domain.EmailID(s)
}

func TestProgramOf(t *testing.T) {
	root := filepath.FromSlash("/tmp/templates")
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/templates/pm/emails/template_1.html", "pm"},
		{"/tmp/templates/pm/index.json", "pm"},
		{"/tmp/templates/ds", "ds"},
		{"/tmp/templates/readme.md", ""},
		{"/tmp/templates", ""},
		{"/elsewhere/pm/x.html", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := programOf(root, filepath.FromSlash(tt.path)); got != tt.want {
				t.Errorf("programOf(%s) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestWatchTemplates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pm", "emails", "template_1.html"), "v1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan string, 16)
	if err := WatchTemplates(ctx, root, func(key string) { changed <- key }); err != nil {
		t.Fatalf("WatchTemplates failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "pm", "emails", "template_1.html"), []byte("v2"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case key := <-changed:
		if key != "pm" {
			t.Errorf("changed key = %q, want pm", key)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatchTemplates_MissingRoot(t *testing.T) {
	err := WatchTemplates(context.Background(), filepath.Join(t.TempDir(), "nope"), func(string) {})
	if err == nil {
		t.Error("expected error for a missing root")
	}
}
