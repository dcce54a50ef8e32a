package model

// InsertOutcome reports what happened on an insert attempt into a
// package. Callers choose the duplicate policy from the outcome instead
// of catching errors as control flow.
type InsertOutcome int

const (
	// Inserted means the name was new and the entry was added.
	Inserted InsertOutcome = iota

	// DuplicateSkipped means a sibling with the same name already
	// existed and the first-seen entry was kept (lenient mode).
	DuplicateSkipped

	// DuplicateRejected means a sibling with the same name already
	// existed and the caller runs in strict mode.
	DuplicateRejected
)

func (o InsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case DuplicateSkipped:
		return "duplicate-skipped"
	case DuplicateRejected:
		return "duplicate-rejected"
	}
	return "unknown"
}

// DuplicatePolicy selects how sibling name collisions are handled.
type DuplicatePolicy int

const (
	// Strict rejects duplicate type/subpackage names.
	Strict DuplicatePolicy = iota

	// Lenient keeps the first-seen definition and skips later ones.
	Lenient
)

// Package is a node of the extracted package tree. It owns its types
// and subpackages; both lists preserve insertion order and keep names
// unique among siblings.
type Package struct {
	Name        string     `json:"name"`
	Types       []Type     `json:"types,omitempty"`
	Subpackages []*Package `json:"subpackages,omitempty"`
}

// FindType returns the directly owned type with the given name, or nil.
func (p *Package) FindType(name string) Type {
	for _, t := range p.Types {
		if t.Base().Name == name {
			return t
		}
	}
	return nil
}

// FindSubpackage returns the direct child package with the given name,
// or nil.
func (p *Package) FindSubpackage(name string) *Package {
	for _, sub := range p.Subpackages {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// AddType inserts a type under this package. Sibling names stay unique:
// on collision the first-seen type is always kept and the outcome tells
// the caller whether its policy treats that as a skip or a rejection.
func (p *Package) AddType(t Type, policy DuplicatePolicy) InsertOutcome {
	if p.FindType(t.Base().Name) != nil {
		if policy == Lenient {
			return DuplicateSkipped
		}
		return DuplicateRejected
	}
	p.Types = append(p.Types, t)
	return Inserted
}

// AddSubpackage inserts a child package, unique by name among siblings.
func (p *Package) AddSubpackage(sub *Package, policy DuplicatePolicy) InsertOutcome {
	if p.FindSubpackage(sub.Name) != nil {
		if policy == Lenient {
			return DuplicateSkipped
		}
		return DuplicateRejected
	}
	p.Subpackages = append(p.Subpackages, sub)
	return Inserted
}

// Walk visits this package and all subpackages depth-first in insertion
// order. The visitor receives the dotted path of each visited package.
func (p *Package) Walk(prefix string, visit func(path string, pkg *Package)) {
	path := p.Name
	if prefix != "" {
		path = prefix + "." + p.Name
	}
	visit(path, p)
	for _, sub := range p.Subpackages {
		sub.Walk(path, visit)
	}
}
