package filesystem

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

//go:embed defaults/*.yaml
var defaultCatalogs embed.FS

var _ ports.CatalogSource = (*CatalogLoader)(nil)

type catalogFile struct {
	Programs []programFile `yaml:"programs" toml:"programs" json:"programs"`
}

type programFile struct {
	Key         string      `yaml:"key" toml:"key" json:"key"`
	Name        string      `yaml:"name" toml:"name" json:"name"`
	Description string      `yaml:"description" toml:"description" json:"description"`
	Emails      []emailFile `yaml:"emails" toml:"emails" json:"emails"`
}

type emailFile struct {
	ID          string `yaml:"id" toml:"id" json:"id"`
	Kind        string `yaml:"kind" toml:"kind" json:"kind"`
	Subject     string `yaml:"subject" toml:"subject" json:"subject"`
	Description string `yaml:"description" toml:"description" json:"description"`
	HTMLFile    string `yaml:"html_file" toml:"html_file" json:"html_file"`
}

// CatalogLoader reads programs from a catalog file or a directory of them.
// An empty path loads the built-in catalog.
type CatalogLoader struct {
	path string
}

// NewCatalogLoader creates a loader for path
func NewCatalogLoader(path string) *CatalogLoader {
	return &CatalogLoader{path: expandHome(path)}
}

// expandHome expands a leading ~ to the home directory
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// LoadCatalog parses every catalog file and validates the programs
func (l *CatalogLoader) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	if l.path == "" {
		return DefaultCatalog()
	}

	files, err := catalogFiles(l.path)
	if err != nil {
		return nil, err
	}

	var programs []*domain.Program
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		ps, err := ParseCatalog(filepath.Ext(file), data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		programs = append(programs, ps...)
	}
	return domain.NewCatalog(programs...)
}

// DefaultCatalog returns the built-in programs
func DefaultCatalog() (*domain.Catalog, error) {
	entries, err := defaultCatalogs.ReadDir("defaults")
	if err != nil {
		return nil, err
	}
	var programs []*domain.Program
	for _, entry := range entries {
		data, err := defaultCatalogs.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return nil, err
		}
		ps, err := ParseCatalog(filepath.Ext(entry.Name()), data)
		if err != nil {
			return nil, fmt.Errorf("built-in %s: %w", entry.Name(), err)
		}
		programs = append(programs, ps...)
	}
	return domain.NewCatalog(programs...)
}

func catalogFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !supportedExt(filepath.Ext(entry.Name())) {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalog files in %s", path)
	}
	return files, nil
}

func supportedExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".toml", ".json":
		return true
	default:
		return false
	}
}

// ParseCatalog decodes catalog data in the format named by ext
// (".yaml", ".yml", ".toml" or ".json")
func ParseCatalog(ext string, data []byte) ([]*domain.Program, error) {
	var file catalogFile
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Programs) == 0 {
		return nil, fmt.Errorf("catalog defines no programs")
	}

	programs := make([]*domain.Program, 0, len(file.Programs))
	for _, pf := range file.Programs {
		p, err := pf.toDomain()
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, nil
}

func (pf programFile) toDomain() (*domain.Program, error) {
	nodes := make([]domain.EmailNode, 0, len(pf.Emails))
	for _, ef := range pf.Emails {
		id, err := domain.ParseEmailID(ef.ID)
		if err != nil {
			return nil, fmt.Errorf("program %s: %w", pf.Key, err)
		}
		kind := domain.Kind(ef.Kind)
		if ef.Kind == "" {
			kind = domain.KindMain
			if id.IsReminder() {
				kind = domain.KindReminder
			}
		}
		htmlFile := ef.HTMLFile
		if htmlFile == "" {
			htmlFile = defaultHTMLFile(id)
		}
		nodes = append(nodes, domain.EmailNode{
			ID:          id,
			Kind:        kind,
			Subject:     ef.Subject,
			Description: ef.Description,
			HTMLFile:    htmlFile,
		})
	}
	name := pf.Name
	if name == "" {
		name = pf.Key
	}
	return domain.NewProgram(pf.Key, name, pf.Description, nodes)
}

func defaultHTMLFile(id domain.EmailID) string {
	return "emails/template_" + id.String() + ".html"
}
