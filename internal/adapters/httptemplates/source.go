// Package httptemplates fetches email templates from a web server and keeps
// an on-disk copy so later runs work offline.
package httptemplates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

const maxTemplateBytes = 2 << 20

var _ ports.TemplateSource = (*Source)(nil)

// Source fetches <base>/<program>/emails/template_<id>.html
type Source struct {
	base   *url.URL
	client *http.Client
	cache  *diskv.Diskv
}

// Option configures a Source
type Option func(*Source)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		if c != nil {
			s.client = c
		}
	}
}

// WithCacheDir keeps fetched bodies under dir
func WithCacheDir(dir string) Option {
	return func(s *Source) {
		if dir == "" {
			return
		}
		s.cache = diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      4 * 1024 * 1024,
		})
	}
}

// New creates a source for baseURL
func New(baseURL string, opts ...Option) (*Source, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid template url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid template url %q: want http or https", baseURL)
	}
	s := &Source{
		base:   base,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// FetchTemplate returns the cached body or downloads it
func (s *Source) FetchTemplate(ctx context.Context, programKey string, id domain.EmailID) (string, error) {
	key := cacheKey(programKey, id)
	if s.cache != nil && s.cache.Has(key) {
		data, err := s.cache.Read(key)
		if err == nil {
			return string(data), nil
		}
	}

	ref := &url.URL{Path: url.PathEscape(programKey) + "/emails/template_" + url.PathEscape(id.String()) + ".html"}
	target := s.base.ResolveReference(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", target, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTemplateBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", target, err)
	}

	if s.cache != nil {
		if err := s.cache.Write(key, data); err != nil {
			return "", fmt.Errorf("failed to cache %s: %w", key, err)
		}
	}
	return string(data), nil
}

// Purge drops every cached body of programKey
func (s *Source) Purge(programKey string) error {
	if s.cache == nil {
		return nil
	}
	var keys []string
	for key := range s.cache.KeysPrefix(programKey+"-", nil) {
		keys = append(keys, key)
	}
	for _, key := range keys {
		if err := s.cache.Erase(key); err != nil {
			return fmt.Errorf("failed to purge %s: %w", key, err)
		}
	}
	return nil
}

// cacheKey makes `program-id`
func cacheKey(programKey string, id domain.EmailID) string {
	return programKey + "-" + id.String()
}

func keyToPathTransform(s string) *diskv.PathKey {
	i := strings.LastIndex(s, "-")
	return &diskv.PathKey{
		Path:     []string{s[:i]},
		FileName: s[i+1:] + ".html",
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(pathKey.Path, "-") + "-" + strings.TrimSuffix(pathKey.FileName, ".html")
}
