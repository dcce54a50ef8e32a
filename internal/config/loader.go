package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (AUTOSAR_PDF_*)
// 2. Config file (.autosar-pdf/config.yml or .autosar-pdf/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".autosar-pdf")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("AUTOSAR_PDF")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("extraction.backend")
	v.BindEnv("extraction.cache_size")
	v.BindEnv("scanner.package_lookahead")
	v.BindEnv("scanner.path_delimiter")
	v.BindEnv("resolver.universal_root")
	v.BindEnv("pipeline.duplicate_policy")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - defaults + env vars apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("extraction.backend", defaults.Extraction.Backend)
	v.SetDefault("extraction.priority", defaults.Extraction.Priority)
	v.SetDefault("extraction.cache_size", defaults.Extraction.CacheSize)

	v.SetDefault("scanner.package_lookahead", defaults.Scanner.PackageLookahead)
	v.SetDefault("scanner.path_delimiter", defaults.Scanner.PathDelimiter)
	v.SetDefault("scanner.continuation_words", defaults.Scanner.ContinuationWords)
	v.SetDefault("scanner.fragment_names", defaults.Scanner.FragmentNames)
	v.SetDefault("scanner.reference_patterns", defaults.Scanner.ReferencePatterns)
	v.SetDefault("scanner.interface_patterns", defaults.Scanner.InterfacePatterns)
	v.SetDefault("scanner.exclusion_phrases", defaults.Scanner.ExclusionPhrases)
	v.SetDefault("scanner.exclusion_words", defaults.Scanner.ExclusionWords)
	v.SetDefault("scanner.leading_exclusions", defaults.Scanner.LeadingExclusions)

	v.SetDefault("resolver.universal_root", defaults.Resolver.UniversalRoot)

	v.SetDefault("pipeline.duplicate_policy", defaults.Pipeline.DuplicatePolicy)
}

// LoadConfig is a convenience function that creates a loader and loads
// config from the current working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
