package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melodypapa/autosar-pdf/internal/search"
)

var limitFlag int

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query> <document>...",
	Short: "Search type names, packages and notes in extracted models",
	Long: `Search parses the given documents and runs a full-text query over the
extracted types.

The query supports the bleve query-string syntax, including field
scoping (name:CanCluster), wildcards and boolean operators.

Examples:
  autosar-pdf search CanCluster spec.pdf
  autosar-pdf search 'kind:enumeration frame' spec.pdf --limit 20
`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum number of hits")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	query, docs := args[0], args[1:]

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	doc, _, err := p.Run(ctx, docs, "")
	if err != nil {
		return err
	}

	s, err := search.NewSearcher(doc)
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.Search(query, limitFlag)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%-14s %-40s %s\n", r.Kind, r.Name, r.Package)
	}
	return nil
}
