package scanner

import (
	"fmt"

	"github.com/melodypapa/autosar-pdf/internal/config"
	"github.com/melodypapa/autosar-pdf/internal/model"
)

// DocumentScanner drives the per-kind definition scanners over the
// classified lines of one document.
type DocumentScanner struct {
	classifier Classifier
	vocab      *Vocabulary
	scanners   []DefinitionScanner
}

// New creates a DocumentScanner from the scanner configuration.
func New(cfg config.ScannerConfig) (*DocumentScanner, error) {
	vocab, err := NewVocabulary(cfg)
	if err != nil {
		return nil, fmt.Errorf("compiling scanner vocabulary: %w", err)
	}

	return &DocumentScanner{
		classifier: NewClassifier(),
		vocab:      vocab,
		scanners: []DefinitionScanner{
			newClassScanner(vocab, cfg.PackageLookahead),
			newEnumScanner(vocab, cfg.PackageLookahead),
			newPrimitiveScanner(vocab, cfg.PackageLookahead),
		},
	}, nil
}

// Vocabulary exposes the compiled vocabulary for collaborating packages.
func (d *DocumentScanner) Vocabulary() *Vocabulary { return d.vocab }

// Scan extracts every type definition from the text of one document.
// documentName is recorded in each extracted type's source records.
//
// Lines that start no definition are skipped one at a time; a
// ValidationError on a recognized definition aborts the scan.
func (d *DocumentScanner) Scan(documentName, text string) ([]model.Type, error) {
	lines := SplitLines(text, d.classifier)

	var types []model.Type
	index := 0
	for index < len(lines) {
		t, next, err := d.scanDefinition(documentName, lines, index)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", documentName, lines[index].Num, err)
		}
		if t == nil {
			index++
			continue
		}
		types = append(types, t)
		index = next
	}
	return types, nil
}

// scanDefinition tries every scanner at the given line. On a match it
// consumes the whole definition and returns the populated type plus the
// index of the first unconsumed line.
func (d *DocumentScanner) scanDefinition(documentName string, lines []Line, index int) (model.Type, int, error) {
	for _, s := range d.scanners {
		t, err := s.ParseDefinition(lines, index)
		if err != nil {
			return nil, 0, err
		}
		if t == nil {
			continue
		}

		t.Base().Sources = append(t.Base().Sources, sourceRef(documentName, lines[index]))

		next := index + 1
		state := ParseState{}
		for next < len(lines) {
			n, nextState, complete, err := s.ContinueParsing(t, lines, next, state)
			if err != nil {
				return nil, 0, err
			}
			if complete {
				next = n
				break
			}
			next, state = n, nextState
		}
		s.Finish(t)

		// Definitions that never resolved a package are dropped: the
		// package-lookahead accepted them, but a closer definition
		// consumed the declaration
		if t.Base().Package == "" {
			return nil, 0, nil
		}

		return t, next, nil
	}
	return nil, 0, nil
}
