package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/melodypapa/autosar-pdf/internal/export"
	"github.com/melodypapa/autosar-pdf/internal/model"
)

var (
	formatFlag string
	outFlag    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <document>...",
	Short: "Extract a model and write it in a chosen format",
	Long: `Export parses the given documents and writes the extracted model.

Formats:
  json      full model serialization (default)
  markdown  navigable per-package markdown
  dot       Graphviz digraph of the resolved inheritance hierarchy
  sqlite    relational dump (requires --out)

Examples:
  autosar-pdf export spec.pdf --format markdown --out model.md
  autosar-pdf export spec.pdf --format dot | dot -Tsvg -o hierarchy.svg
  autosar-pdf export a.pdf b.pdf --format sqlite --out model.db
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json, markdown, dot, sqlite")
	exportCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output file (default stdout; required for sqlite)")
	exportCmd.Flags().StringVar(&patchFlag, "patch", "", "Path to an enumeration patch file")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	doc, _, err := p.Run(ctx, args, patchFlag)
	if err != nil {
		return err
	}

	if formatFlag == "sqlite" {
		if outFlag == "" {
			return fmt.Errorf("--out is required for sqlite export")
		}
		return export.WriteSQLite(outFlag, doc)
	}

	var w io.Writer = os.Stdout
	if outFlag != "" {
		f, err := os.Create(outFlag)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return writeFormat(w, doc, formatFlag)
}

func writeFormat(w io.Writer, doc *model.Document, format string) error {
	switch format {
	case "json":
		return export.WriteJSON(w, doc)
	case "markdown":
		return export.WriteMarkdown(w, doc)
	case "dot":
		return export.WriteDOT(w, doc)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
