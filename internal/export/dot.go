package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

// WriteDOT renders the resolved inheritance hierarchy as a Graphviz
// DOT digraph, one edge per resolved parent link. Same-named classes
// from different packages (legal under lenient merging) collapse into
// one vertex; duplicate vertices and edges are skipped, not errors.
func WriteDOT(w io.Writer, doc *model.Document) error {
	g := graph.New(graph.StringHash, graph.Directed())

	classes := doc.AllClasses()
	for _, c := range classes {
		attrs := []func(*graph.VertexProperties){
			graph.VertexAttribute("shape", "box"),
		}
		if c.IsAbstract {
			attrs = append(attrs, graph.VertexAttribute("style", "dashed"))
		}
		if err := g.AddVertex(c.Name, attrs...); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return fmt.Errorf("adding vertex %s: %w", c.Name, err)
		}
	}

	for _, c := range classes {
		if c.Parent == "" {
			continue
		}
		if err := g.AddEdge(c.Parent, c.Name); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return fmt.Errorf("adding edge %s -> %s: %w", c.Parent, c.Name, err)
		}
	}

	return draw.DOT(g, w)
}
