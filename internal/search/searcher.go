package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/melodypapa/autosar-pdf/internal/model"
)

// Result is one search hit over the extracted model.
type Result struct {
	Name    string  `json:"name"`
	Package string  `json:"package"`
	Kind    string  `json:"kind"`
	Score   float64 `json:"score"`
}

// Searcher answers full-text queries over an extracted model: type
// names, package paths and notes.
type Searcher interface {
	// Search runs a query-string search and returns up to limit hits.
	Search(queryStr string, limit int) ([]Result, error)

	// Close releases the index.
	Close() error
}

// typeDoc is the indexed representation of one extracted type.
type typeDoc struct {
	Name    string `json:"name"`
	Package string `json:"package"`
	Kind    string `json:"kind"`
	Note    string `json:"note"`
}

type searcher struct {
	index bleve.Index
}

// NewSearcher builds an in-memory bleve index over every type in the
// extracted model.
func NewSearcher(doc *model.Document) (Searcher, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	batch := index.NewBatch()
	for _, t := range doc.AllTypes() {
		base := t.Base()
		id := base.Package + "/" + base.Name
		err := batch.Index(id, typeDoc{
			Name:    base.Name,
			Package: base.Package,
			Kind:    string(t.Kind()),
			Note:    base.Note,
		})
		if err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to index type %s: %w", base.Name, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to commit index batch: %w", err)
	}

	return &searcher{index: index}, nil
}

// buildMapping creates the index mapping for type documents. Names and
// packages use the keyword analyzer for exact-ish matching; notes use
// the standard analyzer for prose search.
func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	nameMapping := bleve.NewTextFieldMapping()
	nameMapping.Analyzer = "standard"
	nameMapping.Store = true

	packageMapping := bleve.NewTextFieldMapping()
	packageMapping.Analyzer = "keyword"
	packageMapping.Store = true

	kindMapping := bleve.NewTextFieldMapping()
	kindMapping.Analyzer = "keyword"
	kindMapping.Store = true

	noteMapping := bleve.NewTextFieldMapping()
	noteMapping.Analyzer = "standard"
	noteMapping.Store = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", nameMapping)
	docMapping.AddFieldMappingsAt("package", packageMapping)
	docMapping.AddFieldMappingsAt("kind", kindMapping)
	docMapping.AddFieldMappingsAt("note", noteMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func (s *searcher) Search(queryStr string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	query := bleve.NewQueryStringQuery(queryStr)
	request := bleve.NewSearchRequestOptions(query, limit, 0, false)
	request.Fields = []string{"name", "package", "kind"}

	searchResult, err := s.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var results []Result
	for _, hit := range searchResult.Hits {
		r := Result{Score: hit.Score}
		if v, ok := hit.Fields["name"].(string); ok {
			r.Name = v
		}
		if v, ok := hit.Fields["package"].(string); ok {
			r.Package = v
		}
		if v, ok := hit.Fields["kind"].(string); ok {
			r.Kind = v
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *searcher) Close() error {
	return s.index.Close()
}
