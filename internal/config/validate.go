package config

import "fmt"

var knownBackends = map[string]bool{
	"pdf":       true,
	"pdftotext": true,
	"plain":     true,
}

// Validate checks a configuration for values the pipeline cannot run
// with. It returns the first problem found.
func Validate(cfg *Config) error {
	if cfg.Extraction.Backend != "" && !knownBackends[cfg.Extraction.Backend] {
		return fmt.Errorf("unknown extraction backend %q", cfg.Extraction.Backend)
	}
	if len(cfg.Extraction.Priority) == 0 {
		return fmt.Errorf("extraction.priority must name at least one backend")
	}
	for _, name := range cfg.Extraction.Priority {
		if !knownBackends[name] {
			return fmt.Errorf("unknown backend %q in extraction.priority", name)
		}
	}
	if cfg.Extraction.CacheSize < 1 {
		return fmt.Errorf("extraction.cache_size must be positive, got %d", cfg.Extraction.CacheSize)
	}
	if cfg.Scanner.PackageLookahead < 1 {
		return fmt.Errorf("scanner.package_lookahead must be positive, got %d", cfg.Scanner.PackageLookahead)
	}
	if cfg.Scanner.PathDelimiter == "" {
		return fmt.Errorf("scanner.path_delimiter must not be empty")
	}
	if cfg.Resolver.UniversalRoot == "" {
		return fmt.Errorf("resolver.universal_root must not be empty")
	}
	switch cfg.Pipeline.DuplicatePolicy {
	case "", "strict", "lenient":
	default:
		return fmt.Errorf("pipeline.duplicate_policy must be \"strict\", \"lenient\" or empty, got %q", cfg.Pipeline.DuplicatePolicy)
	}
	return nil
}
