package cli

import (
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements pipeline progress reporting with a
// progress bar over the input documents.
type CLIProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnExtractionStart(totalDocuments int) {
	if c.quiet {
		return
	}
	c.bar = progressbar.NewOptions(totalDocuments,
		progressbar.OptionSetDescription("Extracting documents"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)
}

func (c *CLIProgressReporter) OnDocumentExtracted(processed, total int, name string, typeCount int) {
	if c.quiet {
		return
	}
	if c.bar != nil {
		c.bar.Add(1)
	}
	log.Printf("%s: %d definitions", name, typeCount)
}

func (c *CLIProgressReporter) OnRunComplete(typeCount, rootCount, warningCount int, duration time.Duration) {
	if c.quiet {
		return
	}
	log.Printf("Extracted %d types (%d root classes, %d warnings) in %s",
		typeCount, rootCount, warningCount, duration.Round(time.Millisecond))
}
