package ancestry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

// Test Plan for the ancestry resolver:
// - Diamond bases resolve to the most specific candidate (scenario A)
// - A linear chain resolves to the deepest base (scenario B)
// - Mutually unrelated bases tie-break to the last declared (scenario C)
// - A missing base warns exactly once per run, regardless of how many
//   classes reference it (scenario D)
// - Bases targeting enumerations/primitives are filtered like missing ones
// - The universal root loses against any more specific candidate but
//   wins when it is the only survivor
// - Classes without a resolvable parent land in root_classes once
// - Duplicate root class names are rejected
// - children/parent links are a bijection
// - Declaration cycles do not hang the ancestor walk

func buildDoc(classes ...*model.Class) *model.Document {
	pkg := &model.Package{Name: "M2"}
	for _, c := range classes {
		c.Package = "M2"
		pkg.AddType(c, model.Strict)
	}
	return &model.Document{Packages: []*model.Package{pkg}}
}

func cls(name string, bases ...string) *model.Class {
	return &model.Class{TypeBase: model.TypeBase{Name: name}, Bases: bases}
}

func TestResolver_MostSpecificWins(t *testing.T) {
	t.Parallel()

	// Scenario A: ARObject is an ancestor of both other candidates
	doc := buildDoc(
		cls("ARObject"),
		cls("ARElement", "ARObject"),
		cls("FibexElement", "ARObject"),
		cls("CommunicationCluster", "ARElement", "ARObject", "FibexElement"),
	)

	result, err := NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	byName := classIndex(doc)
	assert.Equal(t, "FibexElement", byName["CommunicationCluster"].Parent)

	require.Len(t, doc.RootClasses, 1)
	assert.Equal(t, "ARObject", doc.RootClasses[0].Name)
}

func TestResolver_LinearChain(t *testing.T) {
	t.Parallel()

	// Scenario B: the deepest link of a linear chain wins
	doc := buildDoc(
		cls("Level1"),
		cls("Level2", "Level1"),
		cls("Level3", "Level2"),
		cls("Level4", "Level3"),
		cls("Derived", "Level1", "Level2", "Level3", "Level4"),
	)

	_, err := NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, "Level4", classIndex(doc)["Derived"].Parent)
}

func TestResolver_LastDeclaredTieBreak(t *testing.T) {
	t.Parallel()

	// Scenario C: three mutually unrelated candidates
	doc := buildDoc(
		cls("Base1"),
		cls("Base2"),
		cls("Base3"),
		cls("Derived", "Base1", "Base2", "Base3"),
	)

	_, err := NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, "Base3", classIndex(doc)["Derived"].Parent)
}

func TestResolver_MissingReferenceWarnsOnce(t *testing.T) {
	t.Parallel()

	// Scenario D: many classes referencing the same missing base
	classes := []*model.Class{
		cls("Existing"),
		cls("Derived", "Existing", "Missing"),
	}
	for _, name := range []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9", "C10"} {
		classes = append(classes, cls(name, "Missing"))
	}
	doc := buildDoc(classes...)

	result, err := NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, "Existing", classIndex(doc)["Derived"].Parent)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Missing", result.Warnings[0].Name)
	assert.Equal(t, "Derived", result.Warnings[0].ReferencedBy)
}

func TestResolver_NonClassBasesFiltered(t *testing.T) {
	t.Parallel()

	pkg := &model.Package{Name: "M2"}
	pkg.AddType(&model.Enumeration{TypeBase: model.TypeBase{Name: "Kind", Package: "M2"}}, model.Strict)
	base := cls("Base")
	base.Package = "M2"
	pkg.AddType(base, model.Strict)
	derived := cls("Derived", "Kind", "Base")
	derived.Package = "M2"
	pkg.AddType(derived, model.Strict)
	doc := &model.Document{Packages: []*model.Package{pkg}}

	result, err := NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, "Base", derived.Parent)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Kind", result.Warnings[0].Name)
}

func TestResolver_UniversalRootExcludedUnlessSole(t *testing.T) {
	t.Parallel()

	doc := buildDoc(
		cls("ARObject"),
		cls("Identifiable"),
		cls("Derived", "Identifiable", "ARObject"),
		cls("Simple", "ARObject"),
	)

	_, err := NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)

	byName := classIndex(doc)
	// ARObject never wins against a more specific candidate...
	assert.Equal(t, "Identifiable", byName["Derived"].Parent)
	// ...but wins when it is the only survivor
	assert.Equal(t, "ARObject", byName["Simple"].Parent)
}

func TestResolver_RootClassesAndChildren(t *testing.T) {
	t.Parallel()

	doc := buildDoc(
		cls("ARObject"),
		cls("A", "ARObject"),
		cls("B", "ARObject"),
		cls("Orphan", "NotThere"),
	)

	_, err := NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)

	byName := classIndex(doc)

	// Classes with every base filtered out are roots too
	rootNames := make([]string, 0, len(doc.RootClasses))
	for _, root := range doc.RootClasses {
		rootNames = append(rootNames, root.Name)
	}
	assert.Equal(t, []string{"ARObject", "Orphan"}, rootNames)

	// children/parent bijection
	assert.Equal(t, []string{"A", "B"}, byName["ARObject"].Children)
	for _, c := range doc.AllClasses() {
		for _, childName := range c.Children {
			assert.Equal(t, c.Name, byName[childName].Parent)
		}
		if c.Parent != "" {
			assert.Contains(t, byName[c.Parent].Children, c.Name)
		}
	}
}

func TestResolver_DuplicateRootRejected(t *testing.T) {
	t.Parallel()

	pkgA := &model.Package{Name: "A"}
	pkgA.AddType(&model.Class{TypeBase: model.TypeBase{Name: "Dup", Package: "A"}}, model.Strict)
	pkgB := &model.Package{Name: "B"}
	pkgB.AddType(&model.Class{TypeBase: model.TypeBase{Name: "Dup", Package: "B"}}, model.Strict)
	doc := &model.Document{Packages: []*model.Package{pkgA, pkgB}}

	_, err := NewResolver("ARObject").Resolve(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate root class")
}

func TestResolver_CycleSafe(t *testing.T) {
	t.Parallel()

	doc := buildDoc(
		cls("A", "B"),
		cls("B", "A"),
		cls("C", "A", "B"),
	)

	_, err := NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)

	// The walk terminates and still yields a deterministic parent
	assert.NotEmpty(t, classIndex(doc)["C"].Parent)
}

func TestResolver_ImplementedByLinks(t *testing.T) {
	t.Parallel()

	iface := cls("AtpDefinition")
	impl := cls("EcucModuleDef", "AtpDefinition")
	impl.Implements = []string{"AtpDefinition"}
	impl.Bases = nil
	doc := buildDoc(iface, impl)

	_, err := NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"EcucModuleDef"}, iface.ImplementedBy)
}

func classIndex(doc *model.Document) map[string]*model.Class {
	byName := make(map[string]*model.Class)
	for _, c := range doc.AllClasses() {
		byName[c.Name] = c
	}
	return byName
}
