package application

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// DefaultTemplateTimeout bounds a single template fetch
const DefaultTemplateTimeout = 3 * time.Second

const loadConcurrency = 4

var placeholderTmpl = template.Must(template.New("placeholder").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body>
<div class="email-placeholder">
<h1>{{.Subject}}</h1>
<p>{{.Description}}</p>
<p><em>Email {{.ID}} preview is not available.</em></p>
</div>
</body>
</html>
`))

// Placeholder renders the fallback body for a node whose template could not be loaded
func Placeholder(node domain.EmailNode) string {
	var buf bytes.Buffer
	if err := placeholderTmpl.Execute(&buf, node); err != nil {
		return "<p>" + template.HTMLEscapeString(node.Subject) + "</p>"
	}
	return buf.String()
}

// TemplateLibrary caches template bodies per program and substitutes a
// placeholder for anything the source cannot deliver. It is safe for
// concurrent use.
type TemplateLibrary struct {
	source  ports.TemplateSource
	timeout time.Duration
	logger  *log.Logger

	mu    sync.RWMutex
	cache map[string]map[domain.EmailID]string
}

// TemplateOption configures a TemplateLibrary
type TemplateOption func(*TemplateLibrary)

// WithTemplateTimeout sets the per-email fetch timeout
func WithTemplateTimeout(d time.Duration) TemplateOption {
	return func(l *TemplateLibrary) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithTemplateLogger sets where fallbacks are reported
func WithTemplateLogger(logger *log.Logger) TemplateOption {
	return func(l *TemplateLibrary) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewTemplateLibrary creates a library over source. A nil source serves
// placeholders only.
func NewTemplateLibrary(source ports.TemplateSource, opts ...TemplateOption) *TemplateLibrary {
	l := &TemplateLibrary{
		source:  source,
		timeout: DefaultTemplateTimeout,
		logger:  log.New(io.Discard, "", 0),
		cache:   make(map[string]map[domain.EmailID]string),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches every template of p that is not cached yet and returns how
// many fell back to a placeholder. It never fails: a cancelled ctx only
// means more placeholders.
func (l *TemplateLibrary) Load(ctx context.Context, p *domain.Program) int {
	nodes := p.Emails()
	bodies := make([]string, len(nodes))
	fallback := make([]bool, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, node := range nodes {
		if html, ok := l.cached(p.Key, node.ID); ok {
			bodies[i] = html
			continue
		}
		g.Go(func() error {
			bodies[i], fallback[i] = l.fetch(gctx, p.Key, node)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := l.programCacheLocked(p.Key)
	for i, node := range nodes {
		if fallback[i] {
			failed++
			continue
		}
		entries[node.ID] = bodies[i]
	}
	if failed > 0 {
		l.logger.Printf("templates: %s: %d of %d emails use a placeholder", p.Key, failed, len(nodes))
	}
	return failed
}

// HTML returns the body for node, fetching on a cache miss
func (l *TemplateLibrary) HTML(ctx context.Context, programKey string, node domain.EmailNode) string {
	if html, ok := l.cached(programKey, node.ID); ok {
		return html
	}
	html, fallback := l.fetch(ctx, programKey, node)
	if !fallback {
		l.mu.Lock()
		l.programCacheLocked(programKey)[node.ID] = html
		l.mu.Unlock()
	}
	return html
}

// Invalidate drops the cached bodies of one program, or all of them when
// programKey is empty
func (l *TemplateLibrary) Invalidate(programKey string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if programKey == "" {
		l.cache = make(map[string]map[domain.EmailID]string)
		return
	}
	delete(l.cache, programKey)
}

// Cached reports how many bodies are cached for programKey
func (l *TemplateLibrary) Cached(programKey string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cache[programKey])
}

func (l *TemplateLibrary) cached(programKey string, id domain.EmailID) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	html, ok := l.cache[programKey][id]
	return html, ok
}

func (l *TemplateLibrary) programCacheLocked(programKey string) map[domain.EmailID]string {
	entries, ok := l.cache[programKey]
	if !ok {
		entries = make(map[domain.EmailID]string)
		l.cache[programKey] = entries
	}
	return entries
}

// fetch returns the body and whether it is a placeholder
func (l *TemplateLibrary) fetch(ctx context.Context, programKey string, node domain.EmailNode) (string, bool) {
	if l.source == nil {
		return Placeholder(node), true
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	html, err := l.source.FetchTemplate(ctx, programKey, node.ID)
	if err != nil {
		l.logger.Printf("templates: %s/%s: %v", programKey, node.ID, err)
		return Placeholder(node), true
	}
	if html == "" {
		return Placeholder(node), true
	}
	return html, false
}
