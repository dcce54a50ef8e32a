package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

// Test Plan for the hierarchy builder:
// - A dotted path creates one package node per segment, reused on
//   later insertions
// - The type lands in the final segment's package
// - Strict mode fails on a duplicate type name in the same package
// - Lenient mode keeps the first-seen definition and skips the second
// - Same name in different packages is never a duplicate

func newClass(name, pkg string) *model.Class {
	return &model.Class{TypeBase: model.TypeBase{Name: name, Package: pkg}}
}

func TestBuilder_CreatesAndReusesPackages(t *testing.T) {
	t.Parallel()

	doc := &model.Document{}
	b := NewBuilder(".", model.Strict)

	outcome, err := b.Insert(doc, newClass("CanCluster", "M2.System.Fibex"))
	require.NoError(t, err)
	assert.Equal(t, model.Inserted, outcome)

	outcome, err = b.Insert(doc, newClass("CanFrame", "M2.System.Fibex"))
	require.NoError(t, err)
	assert.Equal(t, model.Inserted, outcome)

	require.Len(t, doc.Packages, 1)
	m2 := doc.FindRootPackage("M2")
	require.NotNil(t, m2)
	system := m2.FindSubpackage("System")
	require.NotNil(t, system)
	fibex := system.FindSubpackage("Fibex")
	require.NotNil(t, fibex)

	assert.Len(t, fibex.Types, 2)
	assert.NotNil(t, fibex.FindType("CanCluster"))
	assert.NotNil(t, fibex.FindType("CanFrame"))

	// No stray duplicate package nodes
	assert.Len(t, m2.Subpackages, 1)
	assert.Len(t, system.Subpackages, 1)
}

func TestBuilder_StrictRejectsDuplicate(t *testing.T) {
	t.Parallel()

	doc := &model.Document{}
	b := NewBuilder(".", model.Strict)

	_, err := b.Insert(doc, newClass("CanCluster", "M2.System"))
	require.NoError(t, err)

	outcome, err := b.Insert(doc, newClass("CanCluster", "M2.System"))
	assert.Equal(t, model.DuplicateRejected, outcome)
	require.Error(t, err)

	var derr *DuplicateDefinitionError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "CanCluster", derr.Name)
}

func TestBuilder_LenientKeepsFirstSeen(t *testing.T) {
	t.Parallel()

	doc := &model.Document{}
	b := NewBuilder(".", model.Lenient)

	first := newClass("CanCluster", "M2.System")
	first.Note = "first"
	second := newClass("CanCluster", "M2.System")
	second.Note = "second"

	_, err := b.Insert(doc, first)
	require.NoError(t, err)

	outcome, err := b.Insert(doc, second)
	require.NoError(t, err)
	assert.Equal(t, model.DuplicateSkipped, outcome)

	pkg := doc.FindRootPackage("M2").FindSubpackage("System")
	require.Len(t, pkg.Types, 1)
	assert.Equal(t, "first", pkg.Types[0].Base().Note)
}

func TestBuilder_SameNameDifferentPackages(t *testing.T) {
	t.Parallel()

	doc := &model.Document{}
	b := NewBuilder(".", model.Strict)

	_, err := b.Insert(doc, newClass("Cluster", "M2.Can"))
	require.NoError(t, err)
	outcome, err := b.Insert(doc, newClass("Cluster", "M2.Flexray"))
	require.NoError(t, err)
	assert.Equal(t, model.Inserted, outcome)
}
