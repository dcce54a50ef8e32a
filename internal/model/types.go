package model

// TypeKind identifies the variant of an extracted type definition.
type TypeKind string

const (
	KindClass       TypeKind = "class"
	KindEnumeration TypeKind = "enumeration"
	KindPrimitive   TypeKind = "primitive"
)

// ATPType is the structural variation category carried by a bracketed
// marker on a declared type name (e.g. "[atpVariation]").
type ATPType string

const (
	ATPNone        ATPType = ""
	ATPVariation   ATPType = "atpVariation"
	ATPMixedString ATPType = "atpMixedString"
	ATPMixed       ATPType = "atpMixed"
)

// AttributeKind is the declared kind column of an attribute table row.
type AttributeKind string

const (
	AttrKindAttr AttributeKind = "attr"
	AttrKindRef  AttributeKind = "ref"
	AttrKindAggr AttributeKind = "aggr"
)

// SourceRef records where a definition was extracted from.
type SourceRef struct {
	Document string `json:"document"`
	Page     int    `json:"page,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// Attribute is a single row of a type's attribute table.
// Type is a weak reference to another type's name, never a pointer;
// resolution happens by name lookup after all documents are scanned.
type Attribute struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	Multiplicity string        `json:"multiplicity,omitempty"`
	Kind         AttributeKind `json:"kind"`
	Note         string        `json:"note,omitempty"`
	IsRef        bool          `json:"is_ref,omitempty"`
}

// EnumLiteral is a single literal of an enumeration.
// Index is optional: nil means the document declared no index marker.
type EnumLiteral struct {
	Name        string   `json:"name"`
	Index       *int     `json:"index,omitempty"`
	Value       string   `json:"value,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// TypeBase holds the fields shared by all type variants.
type TypeBase struct {
	Name    string      `json:"name"`
	Package string      `json:"package"`
	Note    string      `json:"note,omitempty"`
	ATP     ATPType     `json:"atp_type,omitempty"`
	Sources []SourceRef `json:"sources,omitempty"`
}

// Type is the umbrella over Class, Enumeration and Primitive.
type Type interface {
	// Base returns the shared fields of the type.
	Base() *TypeBase

	// Kind returns the variant tag of the type.
	Kind() TypeKind
}

// Class is a class definition extracted from a document.
//
// Bases holds the declared base references in declaration order; Parent
// and Children are derived later by the ancestry resolver and must not
// be set by scanners.
type Class struct {
	TypeBase

	IsAbstract    bool        `json:"is_abstract,omitempty"`
	Bases         []string    `json:"bases,omitempty"`
	Subclasses    []string    `json:"subclasses,omitempty"`
	AggregatedBy  []string    `json:"aggregated_by,omitempty"`
	Implements    []string    `json:"implements,omitempty"`
	ImplementedBy []string    `json:"implemented_by,omitempty"`
	Parent        string      `json:"parent,omitempty"`
	Children      []string    `json:"children,omitempty"`
	Attributes    []Attribute `json:"attributes,omitempty"`
}

func (c *Class) Base() *TypeBase { return &c.TypeBase }
func (c *Class) Kind() TypeKind  { return KindClass }

// AddAttribute appends an attribute, keeping names unique per class.
// Returns false if an attribute with the same name already exists.
func (c *Class) AddAttribute(attr Attribute) bool {
	for _, existing := range c.Attributes {
		if existing.Name == attr.Name {
			return false
		}
	}
	c.Attributes = append(c.Attributes, attr)
	return true
}

// Enumeration is an enumeration definition with its ordered literals.
type Enumeration struct {
	TypeBase

	Literals []EnumLiteral `json:"enumeration_literals,omitempty"`
}

func (e *Enumeration) Base() *TypeBase { return &e.TypeBase }
func (e *Enumeration) Kind() TypeKind  { return KindEnumeration }

// FindLiteral returns the literal with the given name, or nil.
func (e *Enumeration) FindLiteral(name string) *EnumLiteral {
	for i := range e.Literals {
		if e.Literals[i].Name == name {
			return &e.Literals[i]
		}
	}
	return nil
}

// Primitive is a primitive type definition. Primitives may carry an
// attribute table (e.g. ARLiteral's variation points) but never bases.
type Primitive struct {
	TypeBase

	Attributes []Attribute `json:"attributes,omitempty"`
}

func (p *Primitive) Base() *TypeBase { return &p.TypeBase }
func (p *Primitive) Kind() TypeKind  { return KindPrimitive }

// AddAttribute appends an attribute, keeping names unique per primitive.
func (p *Primitive) AddAttribute(attr Attribute) bool {
	for _, existing := range p.Attributes {
		if existing.Name == attr.Name {
			return false
		}
	}
	p.Attributes = append(p.Attributes, attr)
	return true
}
