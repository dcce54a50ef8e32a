package config

// Config is the complete autosar-pdf configuration.
// It can be loaded from .autosar-pdf/config.yml with environment
// variable overrides (AUTOSAR_PDF_*).
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Scanner    ScannerConfig    `yaml:"scanner" mapstructure:"scanner"`
	Resolver   ResolverConfig   `yaml:"resolver" mapstructure:"resolver"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
}

// PipelineConfig configures run orchestration.
type PipelineConfig struct {
	// DuplicatePolicy overrides the entry-point default policy
	// ("strict", "lenient"). Empty keeps the default: strict for a
	// single document, lenient for a multi-document merge.
	DuplicatePolicy string `yaml:"duplicate_policy" mapstructure:"duplicate_policy"`
}

// ExtractionConfig configures the document text provider.
type ExtractionConfig struct {
	// Backend forces a specific text backend ("pdf", "pdftotext",
	// "plain"). Empty selects by Priority order.
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Priority is the backend order tried when Backend is empty.
	Priority []string `yaml:"priority" mapstructure:"priority"`

	// CacheSize is the number of extracted documents kept in memory so
	// merge runs listing the same file twice extract it once.
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"`
}

// ScannerConfig carries the heuristic vocabularies used by the line
// classifier and the definition scanners. The matching algorithms are
// fixed; only the vocabularies evolve with new document generations.
type ScannerConfig struct {
	// PackageLookahead is how many lines after a definition header a
	// Package declaration must appear for the header to be accepted.
	PackageLookahead int `yaml:"package_lookahead" mapstructure:"package_lookahead"`

	// PathDelimiter separates segments of a declared package path.
	PathDelimiter string `yaml:"path_delimiter" mapstructure:"path_delimiter"`

	// ContinuationWords are lowercase words that mark a table row as a
	// wrapped-note spillover rather than a real attribute row.
	ContinuationWords []string `yaml:"continuation_words" mapstructure:"continuation_words"`

	// FragmentNames are tokens that only ever occur as fragments of a
	// wrapped cell, never as attribute names or types.
	FragmentNames []string `yaml:"fragment_names" mapstructure:"fragment_names"`

	// ReferencePatterns are glob patterns matched against an attribute
	// type token to derive is_ref (e.g. "*Ref", "*Prototype").
	ReferencePatterns []string `yaml:"reference_patterns" mapstructure:"reference_patterns"`

	// InterfacePatterns are glob patterns that route a declared base
	// into the implements list instead of the bases list.
	InterfacePatterns []string `yaml:"interface_patterns" mapstructure:"interface_patterns"`

	// ExclusionPhrases reject a candidate package path that reads like
	// running prose (substring match).
	ExclusionPhrases []string `yaml:"exclusion_phrases" mapstructure:"exclusion_phrases"`

	// ExclusionWords reject a candidate package path on a word-boundary
	// match (e.g. "package", "template").
	ExclusionWords []string `yaml:"exclusion_words" mapstructure:"exclusion_words"`

	// LeadingExclusions reject a candidate package path by prefix.
	LeadingExclusions []string `yaml:"leading_exclusions" mapstructure:"leading_exclusions"`
}

// ResolverConfig configures the ancestry resolver.
type ResolverConfig struct {
	// UniversalRoot is the type every class ultimately derives from.
	// It is excluded from parent selection unless it is the only
	// remaining candidate.
	UniversalRoot string `yaml:"universal_root" mapstructure:"universal_root"`
}

// Default returns a configuration matching the behavior of the original
// extractor on AUTOSAR classic platform documents.
func Default() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			Backend:   "",
			Priority:  []string{"pdf", "pdftotext", "plain"},
			CacheSize: 16,
		},
		Scanner: ScannerConfig{
			PackageLookahead: 5,
			PathDelimiter:    ".",
			ContinuationWords: []string{
				"the", "a", "an", "of", "to", "in", "for", "and", "or",
				"is", "are", "be", "by", "with", "that", "this", "on",
				"as", "at", "from", "it", "its",
			},
			FragmentNames: []string{
				"Tags:", "Stereotypes:", "atp", "Variation", "Points",
				"splitable", "vh.latestBindingTime",
			},
			ReferencePatterns: []string{
				"*Prototype", "*Ref", "*Group", "*Set", "*List",
				"*Collection", "*Trigger", "*Mapping", "*Dependency",
			},
			InterfacePatterns: []string{
				"Atp*", "*Interface",
			},
			ExclusionPhrases: []string{
				" is ", " of ", " for ", " are ", " can ", " shall ",
				" will ", " to ",
			},
			ExclusionWords: []string{
				"package", "template",
			},
			LeadingExclusions: []string{
				"The ", "A ", "An ", "This ",
			},
		},
		Resolver: ResolverConfig{
			UniversalRoot: "ARObject",
		},
		Pipeline: PipelineConfig{
			DuplicatePolicy: "",
		},
	}
}
