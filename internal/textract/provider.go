package textract

import (
	"context"
	"fmt"
	"os"

	"github.com/maypok86/otter"

	"github.com/melodypapa/autosar-pdf/internal/config"
)

// PageMarker separates pages in extracted text. Pages that yield no
// text contribute no marker.
const PageMarker = "\f"

// Backend extracts raw text from one document format.
type Backend interface {
	// Name is the backend identifier used in configuration.
	Name() string

	// Available reports whether the backend can run on this system.
	Available() bool

	// ReadText extracts the full text of the document at path, with
	// PageMarker between pages that yielded text.
	ReadText(ctx context.Context, path string) (string, error)
}

// Provider selects among the registered backends and caches extracted
// text per path, so a merge run listing the same document twice only
// extracts it once.
type Provider struct {
	backends []Backend // priority order
	forced   string
	cache    otter.Cache[string, string]
}

// NewProvider creates a provider from the extraction configuration.
// Backends are tried in cfg.Priority order unless cfg.Backend forces one.
func NewProvider(cfg config.ExtractionConfig) (*Provider, error) {
	registry := map[string]Backend{
		"pdf":       &pdfBackend{},
		"pdftotext": &popplerBackend{},
		"plain":     &plainBackend{},
	}

	var backends []Backend
	for _, name := range cfg.Priority {
		b, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown text backend %q", name)
		}
		backends = append(backends, b)
	}

	cache, err := otter.MustBuilder[string, string](cfg.CacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build text cache: %w", err)
	}

	return &Provider{
		backends: backends,
		forced:   cfg.Backend,
		cache:    cache,
	}, nil
}

// ReadText extracts the text of the document at path.
// Returns ErrSourceNotFound if the path does not exist,
// ErrBackendUnavailable if no usable backend exists, and an
// *ExtractionError wrapping any underlying extraction failure.
func (p *Provider) ReadText(ctx context.Context, path string) (string, error) {
	if text, ok := p.cache.Get(path); ok {
		return text, nil
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	backend, err := p.selectBackend()
	if err != nil {
		return "", err
	}

	text, err := backend.ReadText(ctx, path)
	if err != nil {
		return "", &ExtractionError{Path: path, Backend: backend.Name(), Err: err}
	}

	p.cache.Set(path, text)
	return text, nil
}

// Invalidate drops the cached text for path, forcing re-extraction on
// the next read. Used by watch mode when an input document changes.
func (p *Provider) Invalidate(path string) {
	p.cache.Delete(path)
}

// Close releases the text cache.
func (p *Provider) Close() {
	p.cache.Close()
}

// selectBackend returns the forced backend if configured, otherwise the
// first available backend in priority order.
func (p *Provider) selectBackend() (Backend, error) {
	if p.forced != "" {
		for _, b := range p.backends {
			if b.Name() == p.forced {
				if !b.Available() {
					return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, p.forced)
				}
				return b, nil
			}
		}
		return nil, fmt.Errorf("%w: %s not in priority list", ErrBackendUnavailable, p.forced)
	}

	for _, b := range p.backends {
		if b.Available() {
			return b, nil
		}
	}
	return nil, ErrBackendUnavailable
}
