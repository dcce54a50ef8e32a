package model

// Document is the root of an extracted model: the owned package tree
// plus the derived root-class cache filled in by the ancestry resolver.
type Document struct {
	// RunID identifies the extraction run that produced this model.
	RunID string `json:"run_id,omitempty"`

	// Sources lists the input documents in processing order.
	Sources []string `json:"sources,omitempty"`

	Packages []*Package `json:"packages,omitempty"`

	// RootClasses caches classes with no resolvable parent. Names are
	// unique; membership is derived, never declared.
	RootClasses []*Class `json:"-"`
}

// FindRootPackage returns the top-level package with the given name.
func (d *Document) FindRootPackage(name string) *Package {
	for _, pkg := range d.Packages {
		if pkg.Name == name {
			return pkg
		}
	}
	return nil
}

// Walk visits every package in the document depth-first.
func (d *Document) Walk(visit func(path string, pkg *Package)) {
	for _, pkg := range d.Packages {
		pkg.Walk("", visit)
	}
}

// AllTypes returns every type in the document in package walk order.
func (d *Document) AllTypes() []Type {
	var types []Type
	d.Walk(func(_ string, pkg *Package) {
		types = append(types, pkg.Types...)
	})
	return types
}

// AllClasses returns every class in the document in package walk order.
func (d *Document) AllClasses() []*Class {
	var classes []*Class
	d.Walk(func(_ string, pkg *Package) {
		for _, t := range pkg.Types {
			if c, ok := t.(*Class); ok {
				classes = append(classes, c)
			}
		}
	})
	return classes
}

// FindEnumeration returns the enumeration with the given name anywhere
// in the package tree, or nil.
func (d *Document) FindEnumeration(name string) *Enumeration {
	var found *Enumeration
	d.Walk(func(_ string, pkg *Package) {
		if found != nil {
			return
		}
		if t := pkg.FindType(name); t != nil {
			if e, ok := t.(*Enumeration); ok {
				found = e
			}
		}
	})
	return found
}

// AddRootClass registers a class with no resolvable parent. Returns
// false if a root class with the same name is already present.
func (d *Document) AddRootClass(c *Class) bool {
	for _, existing := range d.RootClasses {
		if existing.Name == c.Name {
			return false
		}
	}
	d.RootClasses = append(d.RootClasses, c)
	return true
}
