// Package bootstrap assembles the catalog, template sources and journey
// engine from a loaded configuration. Every binary starts here.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log"

	"dripsim/internal/adapters/filesystem"
	"dripsim/internal/adapters/httptemplates"
	"dripsim/internal/adapters/systemclock"
	"dripsim/internal/application"
	"dripsim/internal/application/journey"
	"dripsim/internal/config"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

// Runtime is a ready-to-use engine with the adapters behind it
type Runtime struct {
	Config  config.Config
	Catalog *domain.Catalog
	Library *application.TemplateLibrary
	Engine  *journey.Engine

	// Files is set when templates come from a local directory
	Files *filesystem.TemplateSource
}

type options struct {
	clock  ports.Clock
	logger *log.Logger
	extra  []journey.Option
}

// Option adjusts how the runtime is built
type Option func(*options)

// WithClock replaces the wall clock
func WithClock(c ports.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger shared by the engine and template library
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithEngineOptions passes extra options to the engine
func WithEngineOptions(opts ...journey.Option) Option {
	return func(o *options) { o.extra = append(o.extra, opts...) }
}

// Open builds the runtime for cfg
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*Runtime, error) {
	o := options{clock: systemclock.Real{}, logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(&o)
	}

	catalog, err := filesystem.NewCatalogLoader(cfg.Catalog).LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	rt := &Runtime{Config: cfg, Catalog: catalog}
	var source ports.TemplateSource
	switch {
	case cfg.TemplateURL != "":
		src, err := httptemplates.New(cfg.TemplateURL, httptemplates.WithCacheDir(cfg.CacheDir))
		if err != nil {
			return nil, err
		}
		source = src
	case cfg.Templates != "":
		rt.Files = filesystem.NewTemplateSource(cfg.Templates)
		source = rt.Files
	}

	rt.Library = application.NewTemplateLibrary(source,
		application.WithTemplateTimeout(cfg.TemplateTimeout),
		application.WithTemplateLogger(o.logger),
	)

	engineOpts := append([]journey.Option{
		journey.WithClock(o.clock),
		journey.WithLogger(o.logger),
		journey.WithConfig(cfg.Journey()),
	}, o.extra...)
	rt.Engine, err = journey.New(ctx, catalog, rt.Library, cfg.Program, engineOpts...)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// WatchTemplates drops cached templates when files under the template
// directory change. It is a no-op for other sources.
func (r *Runtime) WatchTemplates(ctx context.Context) error {
	if r.Files == nil {
		return nil
	}
	return filesystem.WatchTemplates(ctx, r.Files.Root(), r.Library.Invalidate)
}

// TemplatePath returns the editable source file of a sent message
func (r *Runtime) TemplatePath(instanceID string) (string, error) {
	if r.Files == nil {
		return "", fmt.Errorf("templates are not loaded from a local directory")
	}
	snap := r.Engine.Snapshot()
	m, ok := snap.Message(instanceID)
	if !ok {
		return "", &application.UnknownMessageError{InstanceID: instanceID}
	}
	return r.Files.TemplatePath(snap.Program, m.EmailID)
}
