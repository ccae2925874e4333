package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindEditor(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		available []string
		want      string
	}{
		{
			name: "dripsim editor wins",
			env:  map[string]string{"DRIPSIM_EDITOR": "hx", "EDITOR": "vim"},
			want: "hx",
		},
		{
			name: "editor before visual",
			env:  map[string]string{"EDITOR": "vim", "VISUAL": "code"},
			want: "vim",
		},
		{
			name: "visual only",
			env:  map[string]string{"VISUAL": "code"},
			want: "code",
		},
		{
			name:      "fallback search",
			available: []string{"nano", "code"},
			want:      "/usr/bin/nano",
		},
		{
			name: "nothing found",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Opener{
				getenv: func(k string) string { return tt.env[k] },
				lookPath: func(name string) (string, error) {
					for _, a := range tt.available {
						if a == name {
							return "/usr/bin/" + name, nil
						}
					}
					return "", errors.New("not found")
				},
			}
			if got := o.findEditor(); got != tt.want {
				t.Errorf("findEditor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template_1.html")
	if err := os.WriteFile(path, []byte("<p>x</p>"), 0644); err != nil {
		t.Fatal(err)
	}
	o := &Opener{
		getenv:   func(k string) string { return map[string]string{"EDITOR": "true"}[k] },
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
	}

	cmd, err := o.Command(path)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if len(cmd.Args) != 2 || cmd.Args[1] != path {
		t.Errorf("unexpected args %v", cmd.Args)
	}

	if _, err := o.Command(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("expected an error for a missing file")
	}

	o.getenv = func(string) string { return "" }
	if _, err := o.Command(path); err == nil {
		t.Error("expected an error when no editor is available")
	}
}
