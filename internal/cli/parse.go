package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/melodypapa/autosar-pdf/internal/config"
	"github.com/melodypapa/autosar-pdf/internal/model"
	"github.com/melodypapa/autosar-pdf/internal/pipeline"
)

var (
	patchFlag   string
	watchFlag   bool
	lenientFlag bool
	strictFlag  bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <document>...",
	Short: "Extract the type model from one or more documents",
	Long: `Parse extracts every class, enumeration and primitive definition from
the given specification documents and resolves the inheritance
hierarchy over the union of all inputs.

A single document is parsed in strict mode (duplicate definitions
fail); multiple documents merge leniently (first-seen definition wins).
Use --strict or --lenient to override.

Examples:
  # Parse one document
  autosar-pdf parse AUTOSAR_TPS_SystemTemplate.pdf

  # Merge several documents into one model
  autosar-pdf parse TPS_SystemTemplate.pdf TPS_ECUConfiguration.pdf

  # Apply an enumeration patch file
  autosar-pdf parse spec.pdf --patch corrections.json

  # Re-parse whenever the document changes
  autosar-pdf parse spec.pdf --watch
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&patchFlag, "patch", "", "Path to an enumeration patch file")
	parseCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-parse when an input document changes")
	parseCmd.Flags().BoolVar(&lenientFlag, "lenient", false, "Skip duplicate definitions instead of failing")
	parseCmd.Flags().BoolVar(&strictFlag, "strict", false, "Fail on duplicate definitions even when merging")
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	run := func() error {
		doc, result, err := p.Run(ctx, args, patchFlag)
		if err != nil {
			return err
		}
		printSummary(doc, len(result.Warnings))
		return nil
	}

	if err := run(); err != nil {
		return err
	}
	if !watchFlag {
		return nil
	}

	// Drop every cached text on a change: the cache is keyed by the
	// paths as given, the watcher reports absolute ones
	return watchAndRerun(ctx, args, func(string) error {
		for _, path := range args {
			p.Invalidate(path)
		}
		return run()
	})
}

// newPipeline loads configuration and assembles a pipeline with the
// flags shared by the parse/export/search commands.
func newPipeline() (*pipeline.Pipeline, error) {
	rootDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithProgress(NewCLIProgressReporter(quietFlag)),
	}
	// Flags win over the configured default policy
	switch {
	case lenientFlag:
		opts = append(opts, pipeline.WithDuplicatePolicy(model.Lenient))
	case strictFlag:
		opts = append(opts, pipeline.WithDuplicatePolicy(model.Strict))
	case cfg.Pipeline.DuplicatePolicy == "lenient":
		opts = append(opts, pipeline.WithDuplicatePolicy(model.Lenient))
	case cfg.Pipeline.DuplicatePolicy == "strict":
		opts = append(opts, pipeline.WithDuplicatePolicy(model.Strict))
	}

	return pipeline.New(cfg, opts...)
}

// signalContext returns a context cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

func printSummary(doc *model.Document, warnings int) {
	types := doc.AllTypes()
	classes := doc.AllClasses()
	fmt.Printf("Extracted %d types (%d classes, %d root classes), %d warnings\n",
		len(types), len(classes), len(doc.RootClasses), warnings)
}

// watchAndRerun re-runs the extraction whenever one of the input
// documents is written. run receives the absolute path of the changed
// document.
func watchAndRerun(ctx context.Context, paths []string, run func(changed string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the containing directories: editors often replace files
	// instead of writing them in place
	dirs := make(map[string]bool)
	watched := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	log.Println("Watching for changes (Ctrl+C to stop)...")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Printf("%s changed, re-parsing", filepath.Base(abs))
			if err := run(abs); err != nil {
				log.Printf("[WARN] re-parse failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[WARN] watcher error: %v", err)
		}
	}
}
