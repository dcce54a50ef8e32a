package export

import (
	"encoding/json"
	"io"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

// jsonDocument is the serialized form of an extracted model. Types are
// flattened into one list with an explicit kind tag so consumers do not
// need to know the Go variant types.
type jsonDocument struct {
	RunID       string        `json:"run_id,omitempty"`
	Sources     []string      `json:"sources,omitempty"`
	Packages    []jsonPackage `json:"packages"`
	RootClasses []string      `json:"root_classes,omitempty"`
}

type jsonPackage struct {
	Name        string        `json:"name"`
	Types       []jsonType    `json:"types,omitempty"`
	Subpackages []jsonPackage `json:"subpackages,omitempty"`
}

type jsonType struct {
	Kind model.TypeKind `json:"kind"`

	Name    string            `json:"name"`
	Package string            `json:"package"`
	Note    string            `json:"note,omitempty"`
	ATP     model.ATPType     `json:"atp_type,omitempty"`
	Sources []model.SourceRef `json:"sources,omitempty"`

	IsAbstract    bool                `json:"is_abstract,omitempty"`
	Bases         []string            `json:"bases,omitempty"`
	Subclasses    []string            `json:"subclasses,omitempty"`
	AggregatedBy  []string            `json:"aggregated_by,omitempty"`
	Implements    []string            `json:"implements,omitempty"`
	ImplementedBy []string            `json:"implemented_by,omitempty"`
	Parent        string              `json:"parent,omitempty"`
	Children      []string            `json:"children,omitempty"`
	Attributes    []model.Attribute   `json:"attributes,omitempty"`
	Literals      []model.EnumLiteral `json:"enumeration_literals,omitempty"`
}

// WriteJSON serializes the extracted model as indented JSON.
func WriteJSON(w io.Writer, doc *model.Document) error {
	out := jsonDocument{
		RunID:   doc.RunID,
		Sources: doc.Sources,
	}
	for _, pkg := range doc.Packages {
		out.Packages = append(out.Packages, convertPackage(pkg))
	}
	for _, root := range doc.RootClasses {
		out.RootClasses = append(out.RootClasses, root.Name)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func convertPackage(pkg *model.Package) jsonPackage {
	out := jsonPackage{Name: pkg.Name}
	for _, t := range pkg.Types {
		out.Types = append(out.Types, convertType(t))
	}
	for _, sub := range pkg.Subpackages {
		out.Subpackages = append(out.Subpackages, convertPackage(sub))
	}
	return out
}

func convertType(t model.Type) jsonType {
	base := t.Base()
	out := jsonType{
		Kind:    t.Kind(),
		Name:    base.Name,
		Package: base.Package,
		Note:    base.Note,
		ATP:     base.ATP,
		Sources: base.Sources,
	}

	switch v := t.(type) {
	case *model.Class:
		out.IsAbstract = v.IsAbstract
		out.Bases = v.Bases
		out.Subclasses = v.Subclasses
		out.AggregatedBy = v.AggregatedBy
		out.Implements = v.Implements
		out.ImplementedBy = v.ImplementedBy
		out.Parent = v.Parent
		out.Children = v.Children
		out.Attributes = v.Attributes
	case *model.Enumeration:
		out.Literals = v.Literals
	case *model.Primitive:
		out.Attributes = v.Attributes
	}

	return out
}
