package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodypapa/autosar-pdf/internal/hierarchy"
	"github.com/melodypapa/autosar-pdf/internal/model"
)

// Test Plan for enumeration patching:
// - A missing enumeration is injected with its full literal set
// - An existing enumeration only gains literals it does not have
// - A literal correction renames by exact match
// - Corrections against a gone wrong name or an unknown enumeration
//   are no-ops
// - A correction colliding with an existing literal is skipped
// - Applying the same patch twice leaves the model unchanged
// - Load rejects malformed JSON

func patchedDoc(t *testing.T) *model.Document {
	t.Helper()
	doc := &model.Document{}
	b := hierarchy.NewBuilder(".", model.Lenient)
	e := &model.Enumeration{
		TypeBase: model.TypeBase{Name: "CanFrameKind", Package: "M2.Fibex4Can"},
		Literals: []model.EnumLiteral{
			{Name: "standrad", Description: "Standard frame"},
			{Name: "extended", Description: "Extended frame"},
		},
	}
	_, err := b.Insert(doc, e)
	require.NoError(t, err)
	return doc
}

func samplePatch() *File {
	return &File{
		Enumerations: []EnumerationPatch{
			{
				Name:    "CanFrameKind",
				Package: "M2.Fibex4Can",
				Literals: []model.EnumLiteral{
					{Name: "extended", Description: "duplicate, must not merge"},
					{Name: "remote", Description: "Remote frame"},
				},
			},
			{
				Name:    "BusOffRecovery",
				Package: "M2.Fibex4Can",
				Literals: []model.EnumLiteral{
					{Name: "busOff", Description: "Monitoring active"},
				},
			},
		},
		LiteralCorrections: []LiteralCorrection{
			{Enumeration: "CanFrameKind", WrongName: "standrad", CorrectName: "standard"},
		},
	}
}

func TestApply_InjectsAndMerges(t *testing.T) {
	t.Parallel()

	doc := patchedDoc(t)
	b := hierarchy.NewBuilder(".", model.Lenient)

	require.NoError(t, Apply(doc, samplePatch(), b))

	existing := doc.FindEnumeration("CanFrameKind")
	require.NotNil(t, existing)
	require.Len(t, existing.Literals, 3)

	// The pre-existing literal keeps its scanned description
	lit := existing.FindLiteral("extended")
	require.NotNil(t, lit)
	assert.Equal(t, "Extended frame", lit.Description)
	assert.NotNil(t, existing.FindLiteral("remote"))

	// The rename happened
	assert.Nil(t, existing.FindLiteral("standrad"))
	assert.NotNil(t, existing.FindLiteral("standard"))

	// The missing enumeration was injected into the tree
	injected := doc.FindEnumeration("BusOffRecovery")
	require.NotNil(t, injected)
	assert.Equal(t, "M2.Fibex4Can", injected.Package)
	require.Len(t, injected.Literals, 1)
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	doc := patchedDoc(t)
	b := hierarchy.NewBuilder(".", model.Lenient)

	require.NoError(t, Apply(doc, samplePatch(), b))
	require.NoError(t, Apply(doc, samplePatch(), b))

	existing := doc.FindEnumeration("CanFrameKind")
	assert.Len(t, existing.Literals, 3)
	assert.NotNil(t, existing.FindLiteral("standard"))

	injected := doc.FindEnumeration("BusOffRecovery")
	assert.Len(t, injected.Literals, 1)
}

func TestApply_CorrectionEdgeCases(t *testing.T) {
	t.Parallel()

	doc := patchedDoc(t)
	b := hierarchy.NewBuilder(".", model.Lenient)

	f := &File{LiteralCorrections: []LiteralCorrection{
		{Enumeration: "NoSuchEnum", WrongName: "a", CorrectName: "b"},
		{Enumeration: "CanFrameKind", WrongName: "gone", CorrectName: "new"},
		{Enumeration: "CanFrameKind", WrongName: "standrad", CorrectName: "extended"},
	}}
	require.NoError(t, Apply(doc, f, b))

	e := doc.FindEnumeration("CanFrameKind")
	require.Len(t, e.Literals, 2)
	// The colliding rename was skipped, the wrong name stays
	assert.NotNil(t, e.FindLiteral("standrad"))
	assert.Nil(t, e.FindLiteral("new"))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "patch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"enumerations": [
			{"name": "E", "package": "M2", "literals": [{"name": "a", "description": "A"}]}
		],
		"literal_corrections": [
			{"enumeration": "E", "wrong_name": "x", "correct_name": "y"}
		]
	}`), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Enumerations, 1)
	assert.Equal(t, "E", f.Enumerations[0].Name)
	require.Len(t, f.LiteralCorrections, 1)
	assert.Equal(t, "y", f.LiteralCorrections[0].CorrectName)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
}
