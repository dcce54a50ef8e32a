package ancestry

import (
	"fmt"
	"log"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

// MissingReference is a non-fatal warning for a declared base that
// could not be resolved to a class. Each missing name is reported once
// per run, no matter how many classes reference it.
type MissingReference struct {
	Name         string // the unresolvable base name
	ReferencedBy string // the first class that referenced it
}

func (w MissingReference) String() string {
	return fmt.Sprintf("missing reference %q (first referenced by %s)", w.Name, w.ReferencedBy)
}

// Result carries the diagnostics of one resolution pass.
type Result struct {
	Warnings []MissingReference
}

// Resolver computes the single most-specific direct parent for every
// class and the inverse children links.
//
// Resolve must run exactly once per extraction run, after the types of
// every input document have been collected: running it per document
// would miss cross-document parent links.
type Resolver struct {
	universalRoot string
}

// NewResolver creates a resolver. universalRoot is excluded from parent
// selection unless it is the only candidate left.
func NewResolver(universalRoot string) *Resolver {
	return &Resolver{universalRoot: universalRoot}
}

// Resolve walks the full package tree once, builds the class registry
// and ancestor cache, and sets Parent/Children on every class. Classes
// with no resolvable parent become the document's root classes.
func (r *Resolver) Resolve(doc *model.Document) (*Result, error) {
	run := &resolution{
		registry: make(map[string]*model.Class),
		kinds:    make(map[string]model.TypeKind),
		cache:    make(map[string]map[string]bool),
		warned:   make(map[string]bool),
	}

	// Registry pass: first-seen definition wins on (cross-package)
	// name collisions, keeping resolution deterministic
	classes := doc.AllClasses()
	for _, t := range doc.AllTypes() {
		name := t.Base().Name
		if _, seen := run.kinds[name]; seen {
			continue
		}
		run.kinds[name] = t.Kind()
		if c, ok := t.(*model.Class); ok {
			run.registry[name] = c
		}
	}

	result := &Result{}
	for _, c := range classes {
		parent := run.resolveParent(c, r.universalRoot, result)
		if parent == "" {
			if !doc.AddRootClass(c) {
				return nil, fmt.Errorf("duplicate root class %q", c.Name)
			}
			continue
		}
		c.Parent = parent
		target := run.registry[parent]
		target.Children = append(target.Children, c.Name)
	}

	// Inverse links for interface-marker bases
	for _, c := range classes {
		for _, iface := range c.Implements {
			if target, ok := run.registry[iface]; ok {
				target.ImplementedBy = append(target.ImplementedBy, c.Name)
			}
		}
	}

	return result, nil
}

// resolution is the per-run working state: registry, ancestor cache and
// the deduplication set for missing-reference warnings.
type resolution struct {
	registry map[string]*model.Class
	kinds    map[string]model.TypeKind
	cache    map[string]map[string]bool
	warned   map[string]bool
}

// resolveParent picks the single most-specific parent for c, or ""
// when no base survives filtering.
func (run *resolution) resolveParent(c *model.Class, universalRoot string, result *Result) string {
	if len(c.Bases) == 0 {
		return ""
	}

	// a. Keep bases that resolve to a class; warn once per missing or
	// non-class name
	var valid []string
	for _, base := range c.Bases {
		if _, ok := run.registry[base]; !ok {
			if !run.warned[base] {
				run.warned[base] = true
				result.Warnings = append(result.Warnings, MissingReference{Name: base, ReferencedBy: c.Name})
				log.Printf("[WARN] class %s references unresolvable base %q", c.Name, base)
			}
			continue
		}
		valid = append(valid, base)
	}
	if len(valid) == 0 {
		return ""
	}

	// b. Drop candidates that are ancestors of another candidate,
	// leaving only the locally most specific ones
	var survivors []string
	for i, candidate := range valid {
		ancestorOfOther := false
		for j, other := range valid {
			if i == j {
				continue
			}
			if run.ancestors(other, map[string]bool{other: true})[candidate] {
				ancestorOfOther = true
				break
			}
		}
		if !ancestorOfOther {
			survivors = append(survivors, candidate)
		}
	}

	// In a declaration cycle every candidate is an ancestor of the
	// others and nothing survives; fall back to the resolvable set
	if len(survivors) == 0 {
		survivors = valid
	}

	// c. The universal root never wins against a more specific
	// candidate
	if len(survivors) > 1 {
		var specific []string
		for _, candidate := range survivors {
			if candidate != universalRoot {
				specific = append(specific, candidate)
			}
		}
		if len(specific) > 0 {
			survivors = specific
		}
	}

	// d. Deterministic tie-break: last remaining survivor in original
	// declaration order
	return survivors[len(survivors)-1]
}

// ancestors returns every name transitively reachable from name via
// chained bases links. Results are memoized; a name already on the
// current traversal path is not re-descended, which makes the walk
// safe against declaration cycles.
func (run *resolution) ancestors(name string, path map[string]bool) map[string]bool {
	if cached, ok := run.cache[name]; ok {
		return cached
	}

	c, ok := run.registry[name]
	if !ok {
		return nil
	}

	out := make(map[string]bool)
	for _, base := range c.Bases {
		out[base] = true
		if path[base] {
			continue
		}
		path[base] = true
		for ancestor := range run.ancestors(base, path) {
			out[ancestor] = true
		}
		delete(path, base)
	}

	run.cache[name] = out
	return out
}
