package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDuration = 100 * time.Millisecond

// WatchTemplates calls onChange with the program key whose templates
// changed under root, debounced per program. An empty key means the root
// itself changed. The watcher stops when ctx is done.
func WatchTemplates(ctx context.Context, root string, onChange func(programKey string)) error {
	root = expandHome(root)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}

	dirs, err := collectDirs(root)
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("watch: %s: %w", dir, err)
		}
	}

	go func() {
		defer watcher.Close()
		pending := make(map[string]bool)
		timer := time.NewTimer(debounceDuration)
		timer.Stop()

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) {
					// new program or emails dir
					if isDir(event.Name) {
						_ = watcher.Add(event.Name)
					}
				}
				pending[programOf(root, event.Name)] = true
				timer.Reset(debounceDuration)

			case <-timer.C:
				for key := range pending {
					onChange(key)
				}
				clear(pending)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watch: %v", err)
			}
		}
	}()
	return nil
}

func collectDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// programOf maps a changed path to the program directory it belongs to
func programOf(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) == 1 && filepath.Ext(parts[0]) != "" {
		return ""
	}
	return parts[0]
}
