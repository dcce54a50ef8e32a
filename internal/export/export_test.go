package export

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodypapa/autosar-pdf/internal/ancestry"
	"github.com/melodypapa/autosar-pdf/internal/hierarchy"
	"github.com/melodypapa/autosar-pdf/internal/model"
)

// Test Plan for the exporters:
// - JSON round-trips the flattened type list with kind tags intact
// - Markdown renders package sections, class links and literal tables
// - DOT contains one vertex per class and one edge per parent link
// - DOT renders same-named classes from different packages (lenient
//   merge output) instead of failing on the duplicate vertex
// - SQLite writes a queryable database with types, attributes, literals

func exportDoc(t *testing.T) *model.Document {
	t.Helper()

	doc := &model.Document{RunID: "run-1", Sources: []string{"spec.pdf"}}
	b := hierarchy.NewBuilder(".", model.Strict)

	root := &model.Class{
		TypeBase:   model.TypeBase{Name: "ARObject", Package: "M2.GenericStructure"},
		IsAbstract: true,
	}
	cluster := &model.Class{
		TypeBase: model.TypeBase{Name: "CanCluster", Package: "M2.Fibex4Can", Note: "A CAN cluster."},
		Bases:    []string{"ARObject"},
		Attributes: []model.Attribute{
			{Name: "speed", Type: "PositiveInteger", Multiplicity: "0..1", Kind: model.AttrKindAttr, Note: "Bus speed"},
			{Name: "frame", Type: "CanFrameRef", Multiplicity: "1", Kind: model.AttrKindRef, IsRef: true},
		},
	}
	idx := 0
	enum := &model.Enumeration{
		TypeBase: model.TypeBase{Name: "BusOffRecovery", Package: "M2.Fibex4Can"},
		Literals: []model.EnumLiteral{
			{Name: "busOff", Index: &idx, Description: "Monitoring active"},
		},
	}

	for _, typ := range []model.Type{root, cluster, enum} {
		_, err := b.Insert(doc, typ)
		require.NoError(t, err)
	}

	_, err := ancestry.NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)
	return doc
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, exportDoc(t)))

	var out struct {
		RunID       string   `json:"run_id"`
		RootClasses []string `json:"root_classes"`
		Packages    []struct {
			Name        string `json:"name"`
			Subpackages []struct {
				Name  string `json:"name"`
				Types []struct {
					Kind   string `json:"kind"`
					Name   string `json:"name"`
					Parent string `json:"parent"`
				} `json:"types"`
			} `json:"subpackages"`
		} `json:"packages"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, []string{"ARObject"}, out.RootClasses)

	require.Len(t, out.Packages, 1)
	assert.Equal(t, "M2", out.Packages[0].Name)
	require.Len(t, out.Packages[0].Subpackages, 2)

	fibex := out.Packages[0].Subpackages[1]
	assert.Equal(t, "Fibex4Can", fibex.Name)
	require.Len(t, fibex.Types, 2)
	assert.Equal(t, "class", fibex.Types[0].Kind)
	assert.Equal(t, "ARObject", fibex.Types[0].Parent)
	assert.Equal(t, "enumeration", fibex.Types[1].Kind)
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, exportDoc(t)))
	out := buf.String()

	assert.Contains(t, out, "## Root Classes")
	assert.Contains(t, out, "## Package M2.GenericStructure")
	assert.Contains(t, out, "### Class ARObject *(abstract)*")
	assert.Contains(t, out, "### Class CanCluster")
	assert.Contains(t, out, "- Parent: ARObject")
	assert.Contains(t, out, "| speed | PositiveInteger | 0..1 | attr | Bus speed |")
	assert.Contains(t, out, "### Enumeration BusOffRecovery")
	assert.Contains(t, out, "| busOff | Monitoring active |")
}

func TestWriteDOT(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, exportDoc(t)))
	out := buf.String()

	assert.Contains(t, out, "strict digraph")
	assert.Contains(t, out, `"ARObject"`)
	assert.Contains(t, out, `"CanCluster"`)
	assert.Contains(t, out, `"ARObject" -> "CanCluster"`)
	assert.Contains(t, out, "dashed")
}

func TestWriteDOT_DuplicateNamesAcrossPackages(t *testing.T) {
	t.Parallel()

	doc := &model.Document{}
	b := hierarchy.NewBuilder(".", model.Lenient)
	types := []model.Type{
		&model.Class{TypeBase: model.TypeBase{Name: "ARObject", Package: "M2.A"}},
		&model.Class{TypeBase: model.TypeBase{Name: "Cluster", Package: "M2.A"}, Bases: []string{"ARObject"}},
		&model.Class{TypeBase: model.TypeBase{Name: "Cluster", Package: "M2.B"}, Bases: []string{"ARObject"}},
	}
	for _, typ := range types {
		_, err := b.Insert(doc, typ)
		require.NoError(t, err)
	}
	_, err := ancestry.NewResolver("ARObject").Resolve(doc)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, doc))
	out := buf.String()

	assert.Contains(t, out, `"Cluster"`)
	assert.Contains(t, out, `"ARObject" -> "Cluster"`)
}

func TestWriteSQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.db")
	require.NoError(t, WriteSQLite(path, exportDoc(t)))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM types").Scan(&count))
	assert.Equal(t, 3, count)

	var kind, parent string
	var isAbstract int
	require.NoError(t, db.QueryRow(
		"SELECT kind, parent, is_abstract FROM types WHERE name = ?", "CanCluster",
	).Scan(&kind, &parent, &isAbstract))
	assert.Equal(t, "class", kind)
	assert.Equal(t, "ARObject", parent)
	assert.Equal(t, 0, isAbstract)

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM attributes").Scan(&count))
	assert.Equal(t, 2, count)

	var isRef int
	require.NoError(t, db.QueryRow(
		"SELECT is_ref FROM attributes WHERE name = ?", "frame",
	).Scan(&isRef))
	assert.Equal(t, 1, isRef)

	var idx sql.NullInt64
	require.NoError(t, db.QueryRow(
		"SELECT idx FROM literals WHERE name = ?", "busOff",
	).Scan(&idx))
	require.True(t, idx.Valid)
	assert.EqualValues(t, 0, idx.Int64)

	// Re-export into the same file is idempotent for types
	require.NoError(t, WriteSQLite(path, exportDoc(t)))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM types").Scan(&count))
	assert.Equal(t, 3, count)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM attributes").Scan(&count))
	assert.Equal(t, 2, count)
}
