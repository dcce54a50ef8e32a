package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var quietFlag bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "autosar-pdf",
	Short: "Extract a package/type model from AUTOSAR specification documents",
	Long: `autosar-pdf recovers a structured package and type hierarchy
(packages, classes, enumerations, primitives, attributes, inheritance)
from the text of AUTOSAR specification PDFs.

The extracted model can be exported as markdown, JSON, Graphviz DOT or
a SQLite database, and searched from the command line.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
}
