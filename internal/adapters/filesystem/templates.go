package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

var _ ports.TemplateSource = (*TemplateSource)(nil)

// templateIndex mirrors the index.json written next to processed templates
type templateIndex struct {
	Program string                        `json:"program"`
	Emails  map[string]templateIndexEntry `json:"emails"`
}

type templateIndexEntry struct {
	HTMLFile     string   `json:"html_file"`
	MetadataFile string   `json:"metadata_file"`
	Images       []string `json:"images"`
	IsReminder   bool     `json:"is_reminder"`
}

// TemplateSource reads email bodies from <root>/<program>/.
// A program directory may carry an index.json mapping ids to files;
// otherwise emails/template_<id>.html is used. A reminder without its own
// file is derived from its main email's body.
type TemplateSource struct {
	root string
}

// NewTemplateSource creates a source rooted at dir
func NewTemplateSource(dir string) *TemplateSource {
	return &TemplateSource{root: expandHome(dir)}
}

// Root returns the directory templates are read from
func (s *TemplateSource) Root() string {
	return s.root
}

// FetchTemplate returns the HTML body of id
func (s *TemplateSource) FetchTemplate(ctx context.Context, programKey string, id domain.EmailID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Join(s.root, programKey)
	index, err := readIndex(dir)
	if err != nil {
		return "", err
	}

	html, err := readTemplate(dir, templatePath(index, id))
	if err == nil {
		return html, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || !id.IsReminder() {
		return "", err
	}

	mainHTML, mainErr := readTemplate(dir, templatePath(index, id.Main()))
	if mainErr != nil {
		return "", fmt.Errorf("no template for %s or its main email: %w", id, err)
	}
	v := domain.VariationFor(domain.EmailNode{ID: id, Kind: domain.KindReminder})
	return v.RewriteHTML(mainHTML), nil
}

func readIndex(dir string) (*templateIndex, error) {
	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template index: %w", err)
	}
	var index templateIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse template index: %w", err)
	}
	return &index, nil
}

func templatePath(index *templateIndex, id domain.EmailID) string {
	if index != nil {
		if entry, ok := index.Emails[id.String()]; ok && entry.HTMLFile != "" {
			return entry.HTMLFile
		}
	}
	return defaultHTMLFile(id)
}

func readTemplate(dir, rel string) (string, error) {
	path := filepath.Join(dir, filepath.FromSlash(rel))
	// keep lookups inside the program directory
	if !strings.HasPrefix(path, filepath.Clean(dir)+string(filepath.Separator)) {
		return "", fmt.Errorf("template path %q escapes the template dir", rel)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TemplatePath returns the file the body of id is read from
func (s *TemplateSource) TemplatePath(programKey string, id domain.EmailID) (string, error) {
	dir := filepath.Join(s.root, programKey)
	index, err := readIndex(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.FromSlash(templatePath(index, id)))
	if !strings.HasPrefix(path, filepath.Clean(dir)+string(filepath.Separator)) {
		return "", fmt.Errorf("template path for %s escapes the template dir", id)
	}
	return path, nil
}
