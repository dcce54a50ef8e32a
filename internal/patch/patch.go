package patch

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/melodypapa/autosar-pdf/internal/hierarchy"
	"github.com/melodypapa/autosar-pdf/internal/model"
)

// File is the declarative correction table for enumerations the
// heuristic scanner could not reliably reconstruct.
type File struct {
	// Enumerations are full definitions to inject when missing; for
	// existing enumerations only missing literals are merged in.
	Enumerations []EnumerationPatch `json:"enumerations"`

	// LiteralCorrections rename a mis-extracted literal by exact match.
	LiteralCorrections []LiteralCorrection `json:"literal_corrections"`
}

// EnumerationPatch is one enumeration definition with its literal set.
type EnumerationPatch struct {
	Name     string              `json:"name"`
	Package  string              `json:"package"`
	Literals []model.EnumLiteral `json:"literals"`
}

// LiteralCorrection renames one literal within one enumeration.
type LiteralCorrection struct {
	Enumeration string `json:"enumeration"`
	WrongName   string `json:"wrong_name"`
	CorrectName string `json:"correct_name"`
}

// Load reads a patch file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading patch file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing patch file %s: %w", path, err)
	}
	return &f, nil
}

// Apply applies the patch to an extracted model. Applying the same
// patch twice yields the identical model: missing-enumeration patches
// merge literals by name and literal renames are no-ops once the wrong
// name is gone.
func Apply(doc *model.Document, f *File, builder *hierarchy.Builder) error {
	for _, p := range f.Enumerations {
		if err := applyEnumeration(doc, p, builder); err != nil {
			return err
		}
	}

	for _, c := range f.LiteralCorrections {
		applyCorrection(doc, c)
	}

	return nil
}

func applyEnumeration(doc *model.Document, p EnumerationPatch, builder *hierarchy.Builder) error {
	existing := doc.FindEnumeration(p.Name)
	if existing == nil {
		e := &model.Enumeration{
			TypeBase: model.TypeBase{Name: p.Name, Package: p.Package},
			Literals: append([]model.EnumLiteral(nil), p.Literals...),
		}
		if _, err := builder.Insert(doc, e); err != nil {
			return fmt.Errorf("injecting enumeration %s: %w", p.Name, err)
		}
		return nil
	}

	// Merge only literals the scanner missed, matched by name
	for _, literal := range p.Literals {
		if existing.FindLiteral(literal.Name) != nil {
			continue
		}
		existing.Literals = append(existing.Literals, literal)
	}
	return nil
}

func applyCorrection(doc *model.Document, c LiteralCorrection) {
	e := doc.FindEnumeration(c.Enumeration)
	if e == nil {
		log.Printf("[WARN] literal correction targets unknown enumeration %q", c.Enumeration)
		return
	}

	wrong := e.FindLiteral(c.WrongName)
	if wrong == nil {
		// Already corrected on an earlier apply
		return
	}
	if e.FindLiteral(c.CorrectName) != nil {
		log.Printf("[WARN] literal correction %s.%s -> %s collides with an existing literal",
			c.Enumeration, c.WrongName, c.CorrectName)
		return
	}

	wrong.Name = c.CorrectName
}
