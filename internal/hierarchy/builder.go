package hierarchy

import (
	"fmt"
	"log"
	"strings"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

// DuplicateDefinitionError reports a duplicate type name inserted under
// one package in strict mode.
type DuplicateDefinitionError struct {
	Name        string
	PackagePath string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("duplicate definition %q in package %s", e.Name, e.PackagePath)
}

// Builder registers extracted types into a document's package tree,
// creating one Package node per path segment on first encounter.
//
// The duplicate policy is explicit: strict mode (single document) fails
// on a duplicate type name, lenient mode (multi-document merge) keeps
// the first-seen definition and skips later ones.
type Builder struct {
	delimiter string
	policy    model.DuplicatePolicy
}

// NewBuilder creates a Builder splitting package paths on delimiter.
func NewBuilder(delimiter string, policy model.DuplicatePolicy) *Builder {
	return &Builder{delimiter: delimiter, policy: policy}
}

// Insert walks the type's declared package path from the document
// roots and registers the type under the final segment's package.
// Returns the insert outcome; in strict mode a duplicate also returns a
// *DuplicateDefinitionError.
func (b *Builder) Insert(doc *model.Document, t model.Type) (model.InsertOutcome, error) {
	path := t.Base().Package
	segments := strings.Split(path, b.delimiter)
	if len(segments) == 0 || segments[0] == "" {
		return model.DuplicateRejected, fmt.Errorf("type %q has an empty package path", t.Base().Name)
	}

	pkg := doc.FindRootPackage(segments[0])
	if pkg == nil {
		pkg = &model.Package{Name: segments[0]}
		doc.Packages = append(doc.Packages, pkg)
	}

	for _, segment := range segments[1:] {
		sub := pkg.FindSubpackage(segment)
		if sub == nil {
			sub = &model.Package{Name: segment}
			pkg.AddSubpackage(sub, b.policy)
		}
		pkg = sub
	}

	outcome := pkg.AddType(t, b.policy)
	switch outcome {
	case model.DuplicateRejected:
		return outcome, &DuplicateDefinitionError{Name: t.Base().Name, PackagePath: path}
	case model.DuplicateSkipped:
		log.Printf("[WARN] duplicate definition %q in package %s, keeping first-seen", t.Base().Name, path)
	}
	return outcome, nil
}

// InsertAll inserts every type, stopping at the first strict-mode
// duplicate. Returns how many types were actually inserted.
func (b *Builder) InsertAll(doc *model.Document, types []model.Type) (int, error) {
	inserted := 0
	for _, t := range types {
		outcome, err := b.Insert(doc, t)
		if err != nil {
			return inserted, err
		}
		if outcome == model.Inserted {
			inserted++
		}
	}
	return inserted, nil
}
