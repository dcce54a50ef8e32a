package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/melodypapa/autosar-pdf/internal/ancestry"
	"github.com/melodypapa/autosar-pdf/internal/config"
	"github.com/melodypapa/autosar-pdf/internal/hierarchy"
	"github.com/melodypapa/autosar-pdf/internal/model"
	"github.com/melodypapa/autosar-pdf/internal/patch"
	"github.com/melodypapa/autosar-pdf/internal/scanner"
	"github.com/melodypapa/autosar-pdf/internal/textract"
)

// ProgressReporter reports progress during an extraction run.
type ProgressReporter interface {
	OnExtractionStart(totalDocuments int)
	OnDocumentExtracted(processed, total int, name string, typeCount int)
	OnRunComplete(typeCount, rootCount, warningCount int, duration time.Duration)
}

// Pipeline runs the full text-to-model extraction: per-document
// scanning, package tree assembly, a single ancestry pass over the
// union of all documents, and optional patching.
type Pipeline struct {
	cfg      *config.Config
	provider *textract.Provider
	scanner  *scanner.DocumentScanner
	progress ProgressReporter

	// policy overrides the entry-point default when set
	policy    model.DuplicatePolicy
	policySet bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress configures progress reporting.
func WithProgress(progress ProgressReporter) Option {
	return func(p *Pipeline) {
		p.progress = progress
	}
}

// WithDuplicatePolicy overrides the entry-point default policy
// (strict for a single document, lenient for a multi-document merge).
func WithDuplicatePolicy(policy model.DuplicatePolicy) Option {
	return func(p *Pipeline) {
		p.policy = policy
		p.policySet = true
	}
}

// New creates a Pipeline from configuration.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	provider, err := textract.NewProvider(cfg.Extraction)
	if err != nil {
		return nil, err
	}

	docScanner, err := scanner.New(cfg.Scanner)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:      cfg,
		provider: provider,
		scanner:  docScanner,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Invalidate drops cached extracted text for path so the next run
// re-extracts it.
func (p *Pipeline) Invalidate(path string) {
	p.provider.Invalidate(path)
}

// Close releases pipeline resources.
func (p *Pipeline) Close() {
	p.provider.Close()
}

// Run extracts a model from the given document paths. All types from
// all documents are collected before the single ancestry pass, so
// parent links may cross document boundaries. patchPath is optional.
func (p *Pipeline) Run(ctx context.Context, paths []string, patchPath string) (*model.Document, *ancestry.Result, error) {
	startTime := time.Now()

	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no input documents")
	}

	if p.progress != nil {
		p.progress.OnExtractionStart(len(paths))
	}

	type scannedDoc struct {
		name  string
		types []model.Type
	}

	var scanned []scannedDoc
	for i, path := range paths {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		text, err := p.provider.ReadText(ctx, path)
		if err != nil {
			return nil, nil, err
		}

		name := filepath.Base(path)
		types, err := p.scanner.Scan(name, text)
		if err != nil {
			return nil, nil, err
		}

		scanned = append(scanned, scannedDoc{name: name, types: types})
		if p.progress != nil {
			p.progress.OnDocumentExtracted(i+1, len(paths), name, len(types))
		}
	}

	policy := p.policyFor(len(paths))
	builder := hierarchy.NewBuilder(p.cfg.Scanner.PathDelimiter, policy)

	doc := &model.Document{
		RunID:   uuid.NewString(),
		Sources: paths,
	}
	for _, sd := range scanned {
		if _, err := builder.InsertAll(doc, sd.types); err != nil {
			return nil, nil, fmt.Errorf("building package tree from %s: %w", sd.name, err)
		}
	}

	resolver := ancestry.NewResolver(p.cfg.Resolver.UniversalRoot)
	result, err := resolver.Resolve(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving ancestry: %w", err)
	}

	if patchPath != "" {
		patchFile, err := patch.Load(patchPath)
		if err != nil {
			return nil, nil, err
		}
		// Patch insertion always merges leniently
		patchBuilder := hierarchy.NewBuilder(p.cfg.Scanner.PathDelimiter, model.Lenient)
		if err := patch.Apply(doc, patchFile, patchBuilder); err != nil {
			return nil, nil, err
		}
	}

	if p.progress != nil {
		p.progress.OnRunComplete(len(doc.AllTypes()), len(doc.RootClasses), len(result.Warnings), time.Since(startTime))
	}

	return doc, result, nil
}

// RunFromTexts extracts a model from pre-extracted text, bypassing the
// text provider. Used by callers that already hold document text.
// Cancellation is honored between documents, like Run.
func (p *Pipeline) RunFromTexts(ctx context.Context, texts map[string]string, order []string) (*model.Document, *ancestry.Result, error) {
	type scannedDoc struct {
		name  string
		types []model.Type
	}

	var scanned []scannedDoc
	for _, name := range order {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		types, err := p.scanner.Scan(name, texts[name])
		if err != nil {
			return nil, nil, err
		}
		scanned = append(scanned, scannedDoc{name: name, types: types})
	}

	policy := p.policyFor(len(order))
	builder := hierarchy.NewBuilder(p.cfg.Scanner.PathDelimiter, policy)

	doc := &model.Document{
		RunID:   uuid.NewString(),
		Sources: order,
	}
	for _, sd := range scanned {
		if _, err := builder.InsertAll(doc, sd.types); err != nil {
			return nil, nil, fmt.Errorf("building package tree from %s: %w", sd.name, err)
		}
	}

	result, err := ancestry.NewResolver(p.cfg.Resolver.UniversalRoot).Resolve(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving ancestry: %w", err)
	}

	return doc, result, nil
}

// policyFor returns the duplicate policy for a run: the explicit
// override when set, otherwise strict for a single document and
// lenient for a merge.
func (p *Pipeline) policyFor(documents int) model.DuplicatePolicy {
	if p.policySet {
		return p.policy
	}
	if documents > 1 {
		return model.Lenient
	}
	return model.Strict
}
